// Package prefs keeps per-machine session state for taskctl: the dark mode
// switch and the currently selected user. It is independent of the task
// store and lives in a local SQLite file.
package prefs

import (
	"context"
	"io"
	"strconv"
)

const (
	KeyDarkMode    = "dark_mode"
	KeyCurrentUser = "current_user"
)

type Preferences struct {
	repo   Repository
	closer io.Closer
}

func New(repo Repository) *Preferences {
	return &Preferences{repo: repo}
}

// DarkMode is false until set.
func (p *Preferences) DarkMode(ctx context.Context) (bool, error) {
	v, err := p.repo.Get(ctx, KeyDarkMode)
	if err != nil || v == nil {
		return false, err
	}
	return strconv.ParseBool(string(v))
}

func (p *Preferences) SetDarkMode(ctx context.Context, on bool) error {
	return p.repo.Set(ctx, KeyDarkMode, []byte(strconv.FormatBool(on)))
}

// CurrentUser returns the selected user id, or "" when none is selected.
func (p *Preferences) CurrentUser(ctx context.Context) (string, error) {
	v, err := p.repo.Get(ctx, KeyCurrentUser)
	return string(v), err
}

// SetCurrentUser selects id. An empty id clears the selection.
func (p *Preferences) SetCurrentUser(ctx context.Context, id string) error {
	if id == "" {
		return p.repo.Delete(ctx, KeyCurrentUser)
	}
	return p.repo.Set(ctx, KeyCurrentUser, []byte(id))
}

// All returns every stored preference as text.
func (p *Preferences) All(ctx context.Context) (map[string]string, error) {
	raw, err := p.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	return out, nil
}

func (p *Preferences) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
