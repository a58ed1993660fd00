package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDKey is the key the session identifier is stored under.
const IDKey = "sessionId"

// Header is the request header carrying the session identifier.
const Header = "sessId"

// Identity hands out the session identifier, creating and storing it on first use.
type Identity struct {
	store Store
	newID func() string

	mu sync.Mutex
	id string
}

// NewIdentity returns an Identity backed by store.
func NewIdentity(store Store) *Identity {
	return &Identity{store: store, newID: uuid.NewString}
}

// ID returns the session identifier. The same value is returned for the life of the store.
func (i *Identity) ID(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.id != "" {
		return i.id, nil
	}

	id, ok, err := i.store.Get(ctx, IDKey)
	if err != nil {
		return "", fmt.Errorf("reading session id: %w", err)
	}
	if !ok || id == "" {
		id = i.newID()
		if err := i.store.Set(ctx, IDKey, id); err != nil {
			return "", fmt.Errorf("storing session id: %w", err)
		}
	}
	i.id = id
	return id, nil
}
