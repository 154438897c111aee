// Package catalog assembles the component types compiled into doccore.
package catalog

import (
	"sync"

	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/modules/boolean"
	"github.com/specialistvlad/doccore/modules/conditional"
	"github.com/specialistvlad/doccore/modules/inputs"
	"github.com/specialistvlad/doccore/modules/layout"
	"github.com/specialistvlad/doccore/modules/mapping"
	"github.com/specialistvlad/doccore/modules/number"
	"github.com/specialistvlad/doccore/modules/point"
	"github.com/specialistvlad/doccore/modules/sequence"
	"github.com/specialistvlad/doccore/modules/text"
)

// Modules is the definitive list of all modules compiled into the binary.
// Order matters only for readability; batch member types are checked after
// everything is registered.
var Modules = []registry.Module{
	&layout.Module{},
	&text.Module{},
	&number.Module{},
	&boolean.Module{},
	&point.Module{},
	&inputs.Module{},
	&sequence.Module{},
	&mapping.Module{},
	&conditional.Module{},
}

var (
	once     sync.Once
	instance *registry.Registry
	err      error
)

// Default returns the shared catalogue, building and validating it on first
// use.
func Default() (*registry.Registry, error) {
	once.Do(func() {
		instance = registry.NewWithModules(Modules...)
		err = instance.Validate()
	})
	return instance, err
}
