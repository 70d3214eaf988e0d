// Package cachekit is a read-through cache coordination library. It sits
// between an application's domain-entity repositories and a pluggable
// storage backend, offering four explicit read/write strategies, a
// versioned binary envelope that makes corrupted or schema-incompatible
// cache entries self-rejecting, and a per-prefix TTL policy.
//
// The package defines the coordination contract only: entities, keys, the
// envelope codec, TTL resolution, and the strategy engine. Concrete storage
// backends live under backend/, and are consumed through the Backend
// interface.
package cachekit
