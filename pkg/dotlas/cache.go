package dotlas

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/url"
)

// Cache is an optional read-through cache for GET responses. Implementations
// must be safe for concurrent use. A Get miss is (nil, false); Put errors are
// logged by the client and never fail a call.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, body []byte) error
}

// fingerprint returns the SHA-256 hex of method, path and encoded query.
// Callers must compute it before the api_key parameter is attached so the
// key never reaches the cache.
func fingerprint(method, path string, params url.Values) string {
	h := sha256.Sum256([]byte(method + "|" + path + "|" + params.Encode()))
	return fmt.Sprintf("%x", h)
}
