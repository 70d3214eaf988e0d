package cachekit

import "strings"

// composeKey builds the canonical "{prefix}:{idText}" cache key. Ids
// containing ':' are permitted; only the first colon delimits the prefix.
func composeKey(prefix, idText string) string {
	return prefix + ":" + idText
}

// extractID returns the id-text portion of key, i.e. everything after the
// first colon. The absence of a colon is a programming error and is
// reported as ErrInvalidCacheEntry.
func extractID(key string) (string, error) {
	i := strings.IndexByte(key, ':')
	if i < 0 {
		return "", ErrInvalidCacheEntry
	}
	return key[i+1:], nil
}
