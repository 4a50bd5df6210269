package calendar

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/newthinker/finquant/internal/core"
)

// Registry maps calendar names to calendars.
type Registry struct {
	mu        sync.RWMutex
	calendars map[string]Calendar
}

// NewRegistry creates an empty calendar registry
func NewRegistry() *Registry {
	return &Registry{
		calendars: make(map[string]Calendar),
	}
}

// DefaultRegistry returns a registry holding the built-in calendars.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("weekends", WeekendsOnly{})
	tw := Taiwan()
	r.Register(tw.Name(), tw)
	return r
}

// Normalize folds a calendar name to the form it is registered under.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a calendar under name, replacing any previous entry.
func (r *Registry) Register(name string, c Calendar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calendars[Normalize(name)] = c
}

// Get retrieves a calendar by name
func (r *Registry) Get(name string) (Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calendars[Normalize(name)]
	if !ok {
		return nil, core.WrapError(core.ErrUnknownCalendar, fmt.Errorf("%q", name))
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.calendars))
	for name := range r.calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compose registers name as the join of the named calendars.
func (r *Registry) Compose(name string, parts ...string) (Calendar, error) {
	if len(parts) < 2 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("composite %q needs at least two calendars, got %d", name, len(parts)))
	}

	var joined Calendar
	for _, part := range parts {
		c, err := r.Get(part)
		if err != nil {
			return nil, fmt.Errorf("composing %q: %w", name, err)
		}
		if joined == nil {
			joined = c
			continue
		}
		joined = NewJoin(joined, c)
	}

	r.Register(name, joined)
	return joined, nil
}
