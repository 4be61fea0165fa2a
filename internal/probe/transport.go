package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// newTransport returns a transport that honours ffuf's -x proxy value.
// ffuf accepts HTTP and SOCKS5 proxies, so the probe does too.
func newTransport(proxyURL string) (*http.Transport, error) {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("unexpected default transport type %T", http.DefaultTransport)
	}
	transport = transport.Clone()

	if proxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		dial, err := dialContext(dialer)
		if err != nil {
			return nil, err
		}
		transport.Proxy = nil
		transport.DialContext = dial
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProxy, u.Scheme)
	}

	return transport, nil
}

// dialContext adapts a proxy.Dialer to http.Transport.DialContext.
// Dialers that cannot be cancelled are rejected.
func dialContext(d proxy.Dialer) (func(ctx context.Context, network, addr string) (net.Conn, error), error) {
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedProxy, d)
	}
	return cd.DialContext, nil
}
