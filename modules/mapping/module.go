// Package mapping holds the components that repeat content: a sources
// collection, a template and the map that instantiates the template once per
// source.
package mapping

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func group(typ string, g definition.Group) *definition.Component {
	return &definition.Component{
		Type: typ,
		Variables: map[string]definition.Variable{
			"hidden": definition.Hidden(),
		},
		Attributes:   []string{"hide"},
		RendererType: typ,
		Group:        g,
	}
}

// Sources returns the collection a map iterates over.
func Sources() *definition.Component {
	return group("sources", definition.Group{Kind: definition.GroupCollection, ReplacesChildren: true})
}

// Template returns the map body.
func Template() *definition.Component {
	return group("template", definition.Group{Kind: definition.GroupTemplate})
}

// Map returns the map component. As a child it stands for every instance of
// its template's children.
func Map() *definition.Component {
	return group("map", definition.Group{Kind: definition.GroupMap, ReplacesChildren: true})
}

// Register registers the mapping components.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Sources())
	r.RegisterComponent(Template())
	r.RegisterComponent(Map())
}
