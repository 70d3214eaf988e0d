package cachekit

import "encoding/binary"

// Magic is the four-byte tag every cached value is prefixed with.
var Magic = [4]byte{'C', 'K', 'I', 'T'}

// CurrentVersion is the compiled-in schema version. Bumping it implicitly
// invalidates every entry in every shared backend; no migration is
// attempted, entries silently refill from the repository.
const CurrentVersion uint32 = 1

const envelopeHeaderLen = 8 // 4 bytes magic + 4 bytes version

// wrapEnvelope prepends the magic tag and CurrentVersion to payload.
func wrapEnvelope(payload []byte) []byte {
	out := make([]byte, envelopeHeaderLen+len(payload))
	copy(out[0:4], Magic[:])
	binary.LittleEndian.PutUint32(out[4:8], CurrentVersion)
	copy(out[8:], payload)
	return out
}

// unwrapEnvelope validates the envelope and returns the payload bytes.
// It returns ErrInvalidCacheEntry if b does not begin with Magic, and a
// *VersionMismatchError if the version differs from CurrentVersion.
func unwrapEnvelope(b []byte) ([]byte, error) {
	if len(b) < envelopeHeaderLen {
		return nil, ErrInvalidCacheEntry
	}
	if b[0] != Magic[0] || b[1] != Magic[1] || b[2] != Magic[2] || b[3] != Magic[3] {
		return nil, ErrInvalidCacheEntry
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != CurrentVersion {
		return nil, &VersionMismatchError{Expected: CurrentVersion, Found: version}
	}
	return b[8:], nil
}
