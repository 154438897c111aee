package depgraph

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
)

// VarKey identifies a compiled slice of a state variable. Element refs with
// index 0 are the generic element key.
type VarKey struct {
	Component string
	Ref       definition.StateRef
}

func (k VarKey) String() string { return k.Component + ":" + k.Ref.String() }

// Key identifies the edges of one instruction.
type Key struct {
	Var         VarKey
	Instruction string
}

// ShadowInstruction is the instruction name the builder uses for the edge a
// shadowing variable reads its source through.
const ShadowInstruction = "__shadow"

// Edge is one compiled dependency.
type Edge interface {
	edge()
	String() string
}

// EssentialMode says which part of an essential datum an edge reads.
type EssentialMode uint8

const (
	EssentialValue EssentialMode = iota
	EssentialSize
	// EssentialElement reads the element with the dependent's own index.
	EssentialElement
)

// EssentialEdge reads an essential datum at the single instance Rel selects.
type EssentialEdge struct {
	Key  essential.Key
	Mode EssentialMode
	Rel  instance.Relative
	// Text marks data backing literal markup text.
	Text bool
}

// StateVarEdge reads a slice of another component at the instances given by
// Rel.
type StateVarEdge struct {
	Component string
	Slice     definition.Slice
	Rel       instance.Relative
	// Via is the copy whose source the edge reads directly, if any.
	Via VarKey
}

// CorrespondingEdge reads the element of Array with the dependent's own
// element index.
type CorrespondingEdge struct {
	Component string
	Array     string
	Rel       instance.Relative
}

// DynamicElementEdge reads the element of Array whose index is the current
// value of IndexRef on IndexComponent.
type DynamicElementEdge struct {
	Component      string
	Array          string
	Rel            instance.Relative
	IndexComponent string
	IndexRef       definition.StateRef
	IndexRel       instance.Relative
	Via            VarKey
}

// UndeterminedChildrenEdge stands for the members of a child-replacing group;
// membership is only known at resolution time.
type UndeterminedChildrenEdge struct {
	Group    string
	Profiles []definition.Profile
	Rel      instance.Relative
}

// MapSourcesEdge reads StateVar of the sources member belonging to the
// dependent's current iteration of Map. Level is the position of that
// iteration index in the dependent's instance.
type MapSourcesEdge struct {
	Map      string
	StateVar string
	Level    int
}

// ExpressionEdge is a statically shaped child list compiled into a single
// expression. Parts are EssentialEdges for literal text and
// StateVarEdges or DynamicElementEdges for component children.
type ExpressionEdge struct {
	Parts []Edge
}

func (EssentialEdge) edge()            {}
func (StateVarEdge) edge()             {}
func (CorrespondingEdge) edge()        {}
func (DynamicElementEdge) edge()       {}
func (UndeterminedChildrenEdge) edge() {}
func (MapSourcesEdge) edge()           {}
func (ExpressionEdge) edge()           {}

func (e EssentialEdge) String() string {
	return fmt.Sprintf("essential(%s mode=%d)", e.Key, e.Mode)
}

func (e StateVarEdge) String() string {
	return fmt.Sprintf("statevar(%s.%s %s)", e.Component, e.Slice, e.Rel)
}

func (e CorrespondingEdge) String() string {
	return fmt.Sprintf("corresponding(%s.%s %s)", e.Component, e.Array, e.Rel)
}

func (e DynamicElementEdge) String() string {
	return fmt.Sprintf("dynamic(%s.%s[%s.%s])", e.Component, e.Array, e.IndexComponent, e.IndexRef)
}

func (e UndeterminedChildrenEdge) String() string {
	return fmt.Sprintf("undetermined(%s %v)", e.Group, e.Profiles)
}

func (e MapSourcesEdge) String() string {
	return fmt.Sprintf("mapsources(%s.%s level=%d)", e.Map, e.StateVar, e.Level)
}

func (e ExpressionEdge) String() string {
	return fmt.Sprintf("expression(%d parts)", len(e.Parts))
}
