package tool

import (
	"fmt"
	"sync"
)

// Registry maps tool names to tools, keeping registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// DefaultRegistry returns a registry holding the draw tool.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NameDraw, Draw())
	return r
}

// BuiltinRegistry returns a registry holding every built-in tool.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, name := range BuiltinNames() {
		t, _ := Builtin(name)
		_ = r.Register(name, t)
	}
	return r
}

// Register adds a tool under name.
func (r *Registry) Register(name string, t Tool) error {
	if name == "" || t == nil {
		return fmt.Errorf("%w: name %q", ErrInvalidTool, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Has returns true if name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
