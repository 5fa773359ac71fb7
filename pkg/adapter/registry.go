package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Factory builds an adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

// ErrNoType is returned by NewAdapter when the config names no adapter.
var ErrNoType = errors.New("adapter type not specified")

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	aliasOf    = make(map[string]string)
)

// Register adds an adapter factory under name and any aliases. Names are
// case-insensitive. Called by adapter packages from init().
func Register(name string, factory Factory, aliases ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name = strings.ToLower(name)
	factories[name] = factory
	for _, a := range aliases {
		aliasOf[strings.ToLower(a)] = name
	}
}

// Canonical resolves an alias to the name its adapter was registered under.
// Unknown names are returned lowercased.
func Canonical(name string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return canonical(name)
}

func canonical(name string) string {
	key := strings.ToLower(name)
	if c, ok := aliasOf[key]; ok {
		return c
	}
	return key
}

// Get retrieves an adapter factory by name or alias.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[canonical(name)]
	return f, ok
}

// NewAdapter creates an unconnected adapter for cfg.Type.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, ErrNoType
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered adapter names, sorted. Aliases are not
// listed.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name or alias resolves to an adapter.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q (available: %s); check database.type in config.yaml",
		e.Type, strings.Join(e.Available, ", "))
}
