// Package device unifies the platform-owned primitives the rest of the
// application needs: durable key-value storage and crypto. Two storage
// backends exist — a file under the user config dir and an in-process
// map — and the choice is made exactly once, at construction, from the
// config kind. Callers never branch on the platform again.
package device

import (
	"errors"
	"log/slog"
)

// ErrNoValue is returned (wrapped) by Storage.Get when no value is set
// for the key.
var ErrNoValue = errors.New("device: no value")

// IsNoValue reports whether err means "key absent" as opposed to a
// storage failure.
func IsNoValue(err error) bool {
	return errors.Is(err, ErrNoValue)
}

// Storage is durable string key-value storage scoped to one device
// profile. Implementations must make Set idempotent and Remove of a
// missing key a no-op.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Config selects and parameterizes a storage backend.
type Config struct {
	Kind    string // "file" | "memory"
	Path    string // file backend; empty means under the user config dir
	AppName string // names the config subdir when Path is empty
}

// New creates a Storage according to the configuration. Unknown kinds
// fall back to memory.
func New(cfg Config) (Storage, error) {
	switch cfg.Kind {
	case "file":
		return NewFileStorage(cfg.Path, cfg.AppName)
	case "memory", "":
		return NewMemoryStorage(), nil
	default:
		return NewMemoryStorage(), nil
	}
}

// Adapter wraps a Storage with the propagation policy the screens rely
// on: storage failures never reach the caller. Reads degrade to
// "absent", writes and removes are fire-and-forget, and every suppressed
// error is logged. A storage outage is therefore indistinguishable from
// "never logged in" — accepted trade-off, availability over signaling.
type Adapter struct {
	storage Storage
	logger  *slog.Logger
}

func NewAdapter(s Storage) *Adapter {
	return &Adapter{storage: s, logger: slog.Default()}
}

// WithLogger replaces the adapter's logger.
func (a *Adapter) WithLogger(l *slog.Logger) *Adapter {
	a.logger = l
	return a
}

// Get returns the stored value and whether one was present. Failures
// map to absent.
func (a *Adapter) Get(key string) (string, bool) {
	v, err := a.storage.Get(key)
	if err != nil {
		if !IsNoValue(err) {
			a.logger.Warn("device storage read failed", "key", key, "err", err)
		}
		return "", false
	}
	return v, true
}

// Set persists a value, overwriting any previous one.
func (a *Adapter) Set(key, value string) {
	if err := a.storage.Set(key, value); err != nil {
		a.logger.Warn("device storage write failed", "key", key, "err", err)
	}
}

// Remove deletes a value; removing a missing key is a no-op.
func (a *Adapter) Remove(key string) {
	if err := a.storage.Remove(key); err != nil {
		a.logger.Warn("device storage remove failed", "key", key, "err", err)
	}
}
