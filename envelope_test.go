package cachekit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("hello"),
		make([]byte, 1024),
	}
	for _, p := range payloads {
		wrapped := wrapEnvelope(p)
		got, err := unwrapEnvelope(wrapped)
		require.NoError(t, err)
		// The envelope carries bytes only, so a nil and an empty payload
		// both come back as an empty slice: compare contents.
		assert.True(t, bytes.Equal(p, got), "payload %q did not round-trip, got %q", p, got)
	}
}

func TestEnvelopeRejectsForeignData(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{1, 2, 3},
		[]byte("NOPE0000payload"),
		[]byte("CKI"), // too short, also wrong magic
	}
	for _, b := range cases {
		_, err := unwrapEnvelope(b)
		assert.ErrorIs(t, err, ErrInvalidCacheEntry)
	}
}

func TestEnvelopeRejectsStaleSchema(t *testing.T) {
	staleVersion := CurrentVersion + 1
	b := make([]byte, 8)
	copy(b[0:4], Magic[:])
	binary.LittleEndian.PutUint32(b[4:8], staleVersion)

	_, err := unwrapEnvelope(b)
	var vme *VersionMismatchError
	require.True(t, errors.As(err, &vme))
	assert.Equal(t, CurrentVersion, vme.Expected)
	assert.Equal(t, staleVersion, vme.Found)
}
