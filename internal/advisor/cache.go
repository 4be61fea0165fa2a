package advisor

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/ffufai/internal/model"
)

// Store persists suggestions. *database.SuggestionDB implements it.
type Store interface {
	LookupSuggestion(ctx context.Context, key string, ttl time.Duration) (*model.Suggestion, error)
	SaveSuggestion(ctx context.Context, s *model.Suggestion) (int64, error)
}

// CacheKey identifies a suggestion by everything that shapes the answer
// except the probe result.
func CacheKey(provider, modelName, url string, limit int) string {
	data := strings.Join([]string{provider, modelName, url, strconv.Itoa(limit)}, "\x00")
	sum := sha3.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
