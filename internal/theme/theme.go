package theme

import (
	"context"
	"errors"
	"log"

	"github.com/globaloptima/storefront/internal/store"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Manager persists the theme preference under its storage key. Missing or
// malformed values silently fall back to the light theme.
type Manager struct {
	store store.Store
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Load(ctx context.Context) Theme {
	data, err := m.store.Get(ctx, store.ThemeKey)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			log.Printf("failed to load theme: %v", err)
		}
		return Light
	}
	if t := Theme(data); t.Valid() {
		return t
	}
	log.Printf("discarding unknown theme value %q", data)
	return Light
}

func (m *Manager) Save(ctx context.Context, t Theme) {
	if !t.Valid() {
		return
	}
	if err := m.store.Set(ctx, store.ThemeKey, []byte(t)); err != nil {
		log.Printf("failed to persist theme: %v", err)
	}
}

// Toggle flips between light and dark and persists the result.
func (m *Manager) Toggle(ctx context.Context) Theme {
	next := Light
	if m.Load(ctx) == Light {
		next = Dark
	}
	m.Save(ctx, next)
	return next
}
