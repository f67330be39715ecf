package scene

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a scene. arg carries scene-specific parameters such as a
// level id or a result.
type Factory func(m *Manager, arg any) (Scene, error)

// Registry maps scene names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default is the registry scenes add themselves to from init.
var Default = NewRegistry()

// Register adds a factory to the default registry.
func Register(name string, f Factory) {
	Default.Register(name, f)
}

// Register panics on duplicate names.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		panic(fmt.Sprintf("scene: %s registered twice", name))
	}
	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
