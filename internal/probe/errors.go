package probe

import "errors"

var (
	// ErrUnexpectedStatus is returned internally for non-2xx probe responses.
	ErrUnexpectedStatus = errors.New("unexpected probe response status")

	// ErrUnsupportedProxy is returned by New for proxy schemes other than
	// http, https, socks5 and socks5h.
	ErrUnsupportedProxy = errors.New("unsupported proxy scheme")
)
