// Package example provides a minimal cacheable entity used by
// cmd/cachekit-demo.
package example

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// User is a minimal domain entity.
type User struct {
	ID   uuid.UUID
	Name string
}

// UserEntity implements cachekit.Entity[User] with a JSON payload codec.
type UserEntity struct{}

// Prefix implements cachekit.Entity.
func (UserEntity) Prefix() string { return "user" }

// KeyOf implements cachekit.Entity.
func (UserEntity) KeyOf(u User) string { return u.ID.String() }

// Serialize implements cachekit.Entity.
func (UserEntity) Serialize(u User) ([]byte, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("cachekit/example: serialize user: %w", err)
	}
	return b, nil
}

// Deserialize implements cachekit.Entity.
func (UserEntity) Deserialize(b []byte) (User, error) {
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return User{}, fmt.Errorf("cachekit/example: deserialize user: %w", err)
	}
	return u, nil
}
