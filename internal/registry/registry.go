package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/doccore/internal/definition"
)

// Module is the interface that all catalogue modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the component definitions of one catalogue.
type Registry struct {
	components map[string]*definition.Component
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		components: make(map[string]*definition.Component),
	}
}

// NewWithModules creates a registry and registers every module in order.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterComponent registers the definition of a component type.
func (r *Registry) RegisterComponent(def *definition.Component) {
	if def == nil || def.Type == "" {
		panic("component definition must have a type")
	}
	if _, exists := r.components[def.Type]; exists {
		panic(fmt.Sprintf("component type '%s' already registered", def.Type))
	}
	slog.Debug("Registering component type.", "type", def.Type, "variables", len(def.Variables))
	r.components[def.Type] = def
}

// Lookup returns the definition of a component type.
func (r *Registry) Lookup(componentType string) (*definition.Component, bool) {
	def, ok := r.components[componentType]
	return def, ok
}

// Types returns every registered type name, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.components))
	for t := range r.components {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
