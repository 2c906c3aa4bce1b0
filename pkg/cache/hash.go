package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key namespaces. Bump the version suffix when the cached value layout changes.
const (
	pageNamespace = "page:v1:"
	feedNamespace = "feed:v1:"
)

// PageKey returns the cache key for the page evidence of url.
func PageKey(url string) string {
	return pageNamespace + Hash([]byte(url))
}

// FeedKey returns the cache key for the activity timestamp of repo ("owner/name").
func FeedKey(repo string) string {
	return feedNamespace + repo
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
