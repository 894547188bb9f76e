// Package cache provides the response cache used by the HTTP layer, with
// Redis and in-memory backends behind a common interface.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cache is a TTL key-value store for serialized responses.
type Cache interface {
	// Get returns the cached payload for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores a payload under key for the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key derives a cache key from the request path, its query parameters and
// an optional body. Query parameters are sorted so equivalent requests with
// reordered parameters share an entry.
func Key(path string, query map[string]string, body []byte) string {
	parts := []string{path}

	if len(query) > 0 {
		names := make([]string, 0, len(query))
		for name := range query {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "%s=%s&", name, query[name])
		}
		parts = append(parts, hashHex([]byte(sb.String())))
	}

	if len(body) > 0 {
		parts = append(parts, hashHex(body))
	}

	return strings.Join(parts, ":")
}

func hashHex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
