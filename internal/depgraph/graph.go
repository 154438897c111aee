package depgraph

import (
	"sort"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
)

// DescriptorKind classifies one entry of a flattened collection.
type DescriptorKind uint8

const (
	// DescComponent contributes exactly one member.
	DescComponent DescriptorKind = iota
	// DescBatch contributes the resolved size of the batch.
	DescBatch
	// DescConditional contributes one member when its guard is true.
	DescConditional
	// DescMap contributes the members of every iteration of the map.
	DescMap
)

// Descriptor is one entry of a flattened collection.
type Descriptor struct {
	Kind      DescriptorKind
	Component string
}

// MapInfo is the static shape of a map.
type MapInfo struct {
	// Template is the map's template child.
	Template string
	// Sources is the collection the map iterates over.
	Sources string
	// Members are the flattened descriptors of the template's children,
	// repeated once per iteration.
	Members []Descriptor
}

// ReadKind says which part of a target variable a read covers.
type ReadKind uint8

const (
	ReadBasic ReadKind = iota
	ReadSize
	// ReadElement covers one fixed element.
	ReadElement
	// ReadAny covers the size and every element, as whole-array and
	// dynamically indexed reads do.
	ReadAny
	// ReadCorresponding covers the element with the reader's own index.
	ReadCorresponding
)

// Read is one entry of the reverse index: From reads Name on Target.
type Read struct {
	From   VarKey
	Target string
	Name   string
	Kind   ReadKind
	Index  int
	Rel    instance.Relative
	// Via is set when the read stands for a read of a copy of Target.
	Via VarKey
}

// EssentialRead is one reader of an essential datum.
type EssentialRead struct {
	From VarKey
	Mode EssentialMode
	Rel  instance.Relative
}

// Graph is the compiled dependency graph. It is populated by the builder and
// read-only afterwards.
type Graph struct {
	edges        map[Key][]Edge
	instructions map[VarKey][]string
	shadows      map[VarKey]bool
	specialized  map[string]map[string][]int

	// Scopes maps each component to the maps it is repeated by, outermost
	// first.
	Scopes map[string][]string
	// Collections maps each group to its flattened member descriptors.
	Collections map[string][]Descriptor
	Maps        map[string]MapInfo
	// Aliases maps the alias of an inherited child to the child's name.
	Aliases map[string]string

	reads          map[string][]Read
	essentialReads map[essential.Key][]EssentialRead
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		edges:          make(map[Key][]Edge),
		instructions:   make(map[VarKey][]string),
		shadows:        make(map[VarKey]bool),
		specialized:    make(map[string]map[string][]int),
		Scopes:         make(map[string][]string),
		Collections:    make(map[string][]Descriptor),
		Maps:           make(map[string]MapInfo),
		Aliases:        make(map[string]string),
		reads:          make(map[string][]Read),
		essentialReads: make(map[essential.Key][]EssentialRead),
	}
}

// Declare registers a compiled key with its instruction names in the order
// their values are handed to the definition.
func (g *Graph) Declare(vk VarKey, instructions []string) {
	g.instructions[vk] = append([]string(nil), instructions...)
	if vk.Ref.Kind == definition.RefElement && vk.Ref.Index > 0 {
		byVar, ok := g.specialized[vk.Component]
		if !ok {
			byVar = make(map[string][]int)
			g.specialized[vk.Component] = byVar
		}
		byVar[vk.Ref.Name] = append(byVar[vk.Ref.Name], vk.Ref.Index)
		sort.Ints(byVar[vk.Ref.Name])
	}
}

// MarkShadow records that vk reads its value straight from a copy source.
func (g *Graph) MarkShadow(vk VarKey) { g.shadows[vk] = true }

// IsShadow reports whether vk reads its value straight from a copy source.
func (g *Graph) IsShadow(vk VarKey) bool { return g.shadows[vk] }

// Instructions returns the instruction names of a compiled key.
func (g *Graph) Instructions(vk VarKey) ([]string, bool) {
	names, ok := g.instructions[vk]
	return names, ok
}

// Compiled maps a concrete ref to the key its edges were compiled under.
// Elements without a specialized key share the generic one.
func (g *Graph) Compiled(component string, ref definition.StateRef) (VarKey, bool) {
	vk := VarKey{Component: component, Ref: ref}
	if ref.Kind == definition.RefElement && ref.Index > 0 && !g.IsSpecialized(component, ref.Name, ref.Index) {
		vk.Ref = definition.Element(ref.Name, 0)
	}
	_, ok := g.instructions[vk]
	return vk, ok
}

// IsSpecialized reports whether element index of the array has its own key.
func (g *Graph) IsSpecialized(component, name string, index int) bool {
	for _, i := range g.specialized[component][name] {
		if i == index {
			return true
		}
	}
	return false
}

// Specialized returns the element indices of the array with their own key.
func (g *Graph) Specialized(component, name string) []int {
	return g.specialized[component][name]
}

// AddEdges appends compiled edges for an instruction.
func (g *Graph) AddEdges(key Key, edges ...Edge) {
	g.edges[key] = append(g.edges[key], edges...)
}

// Edges returns the compiled edges of an instruction.
func (g *Graph) Edges(vk VarKey, instruction string) []Edge {
	return g.edges[Key{Var: vk, Instruction: instruction}]
}

// AddRead records a reverse read.
func (g *Graph) AddRead(r Read) {
	g.reads[r.Target] = append(g.reads[r.Target], r)
}

// ReadsOf returns every read of a target component's variables.
func (g *Graph) ReadsOf(target string) []Read { return g.reads[target] }

// AddEssentialRead records a reader of an essential datum.
func (g *Graph) AddEssentialRead(key essential.Key, r EssentialRead) {
	g.essentialReads[key] = append(g.essentialReads[key], r)
}

// EssentialReadsOf returns the readers of an essential datum.
func (g *Graph) EssentialReadsOf(key essential.Key) []EssentialRead {
	return g.essentialReads[key]
}

// Depth is the number of maps the component is repeated by.
func (g *Graph) Depth(component string) int { return len(g.Scopes[component]) }

// VarKeys returns every compiled key in a stable order.
func (g *Graph) VarKeys() []VarKey {
	out := make([]VarKey, 0, len(g.instructions))
	for vk := range g.instructions {
		out = append(out, vk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// ReadTargets returns the compiled keys a read depends on, used to walk the
// graph forward.
func (g *Graph) ReadTargets(r Read) []VarKey {
	var out []VarKey
	add := func(ref definition.StateRef) {
		if vk, ok := g.Compiled(r.Target, ref); ok {
			out = append(out, vk)
		}
	}
	switch r.Kind {
	case ReadBasic:
		add(definition.Basic(r.Name))
	case ReadSize:
		add(definition.SizeOf(r.Name))
	case ReadElement:
		add(definition.Element(r.Name, r.Index))
	case ReadCorresponding:
		add(definition.Element(r.Name, r.From.Ref.Index))
	case ReadAny:
		add(definition.SizeOf(r.Name))
		add(definition.Element(r.Name, 0))
		for _, i := range g.Specialized(r.Target, r.Name) {
			add(definition.Element(r.Name, i))
		}
	}
	return out
}

// AllReads returns every read in a stable order.
func (g *Graph) AllReads() []Read {
	targets := make([]string, 0, len(g.reads))
	for t := range g.reads {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	var out []Read
	for _, t := range targets {
		out = append(out, g.reads[t]...)
	}
	return out
}
