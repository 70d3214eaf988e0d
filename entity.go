package cachekit

// Entity is the self-describing codec contract a domain type T must
// satisfy to be cacheable. Prefix is a constant, process-wide-unique
// namespace tag; KeyOf, Serialize and Deserialize must be pure and
// deterministic so that Deserialize(Serialize(v)) reproduces v's
// identifying state byte-for-byte.
type Entity[T any] interface {
	// Prefix returns the static namespace tag for this entity type. It
	// must match "[a-z][a-z0-9_]*" and be colon-free.
	Prefix() string

	// KeyOf returns the id-text for v. It must depend only on v's
	// identifying fields.
	KeyOf(v T) string

	// Serialize returns the payload bytes for v. Implementations should
	// return ErrSerializationError (wrapped) for representations the
	// codec cannot express.
	Serialize(v T) ([]byte, error)

	// Deserialize is the inverse of Serialize. Implementations should
	// return ErrDeserializationError (wrapped) on malformed payloads.
	Deserialize(b []byte) (T, error)
}

// Key is the fully composed cache key for an entity value: its namespace
// prefix and id-text.
type Key struct {
	Prefix string
	ID     string
}

// String returns the canonical "{prefix}:{id}" textual form.
func (k Key) String() string {
	return composeKey(k.Prefix, k.ID)
}

// KeyFor composes the Key for value v under entity e.
func KeyFor[T any](e Entity[T], v T) Key {
	return Key{Prefix: e.Prefix(), ID: e.KeyOf(v)}
}
