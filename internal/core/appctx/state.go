// Package appctx holds the application state shared by commands: the current
// user and UI preferences. State is an explicit value passed to whoever needs
// it; persistence happens only through Store.Load and Store.Save.
package appctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/storage"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// Theme is the preferred colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts light or dark.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("theme must be light or dark, got %q", s))
	}
}

// State is the application context.
type State struct {
	User        *domain.User
	Theme       Theme
	SidebarOpen bool
}

// DefaultState is a logged-out state with default preferences.
func DefaultState() *State {
	return &State{Theme: ThemeLight, SidebarOpen: true}
}

// IsAuthenticated reports whether a user is present.
func (s *State) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

// SetUser replaces the current user; nil logs out.
func (s *State) SetUser(u *domain.User) {
	s.User = u
}

// Logout drops the user and keeps preferences.
func (s *State) Logout() {
	s.User = nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *State) ToggleTheme() Theme {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
	return s.Theme
}

// ToggleSidebar flips the sidebar preference and returns the new value.
func (s *State) ToggleSidebar() bool {
	s.SidebarOpen = !s.SidebarOpen
	return s.SidebarOpen
}

// Store loads and saves State through a KV.
type Store struct {
	kv  storage.KV
	log logger.Logger
}

// NewStore creates a Store.
func NewStore(kv storage.KV, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kv, log: log}
}

// Load reads the persisted state. Missing or corrupt entries fall back to
// defaults; only storage failures are returned.
func (s *Store) Load(ctx context.Context) (*State, error) {
	st := DefaultState()

	raw, err := s.kv.Get(ctx, storage.KeyUser)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
	case err != nil:
		return nil, domain.ErrStorage.WithDetails("load user").WithCause(err)
	default:
		var u domain.User
		if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
			s.log.Warn("discarding unreadable stored user", "error", err)
		} else {
			st.User = &u
		}
	}

	theme, ok, err := storage.GetString(ctx, s.kv, storage.KeyTheme)
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("load theme").WithCause(err)
	}
	if ok {
		if t, err := ParseTheme(theme); err == nil {
			st.Theme = t
		}
	}

	sidebar, ok, err := storage.GetString(ctx, s.kv, storage.KeySidebarOpen)
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("load sidebar").WithCause(err)
	}
	if ok {
		if b, err := strconv.ParseBool(sidebar); err == nil {
			st.SidebarOpen = b
		}
	}
	return st, nil
}

// Save persists st. A nil user removes the stored user.
func (s *Store) Save(ctx context.Context, st *State) error {
	if st.User == nil {
		if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
			return domain.ErrStorage.WithDetails("save user").WithCause(err)
		}
	} else {
		raw, err := json.Marshal(st.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		if err := s.kv.Set(ctx, storage.KeyUser, raw); err != nil {
			return domain.ErrStorage.WithDetails("save user").WithCause(err)
		}
	}

	if err := s.kv.Set(ctx, storage.KeyTheme, []byte(st.Theme)); err != nil {
		return domain.ErrStorage.WithDetails("save theme").WithCause(err)
	}
	if err := s.kv.Set(ctx, storage.KeySidebarOpen, []byte(strconv.FormatBool(st.SidebarOpen))); err != nil {
		return domain.ErrStorage.WithDetails("save sidebar").WithCause(err)
	}
	return nil
}
