package definition

// Instruction is a declarative request a variable makes for its inputs. The
// graph builder compiles each instruction into one or more dependency edges.
type Instruction interface {
	instruction()
}

// Essential asks for user-editable data backing the variable itself. The
// datum is created once and seeded from the Prefill attribute when the
// component (or its copy source) sets it, else from the variable's default.
// Array variables get an array datum with DefaultSize elements when nothing
// prefills it.
type Essential struct {
	Prefill     string
	DefaultSize int
}

// TargetKind selects whose variable a StateVar instruction reads.
type TargetKind uint8

const (
	TargetSelf TargetKind = iota
	TargetParent
	TargetNamed
)

// Target identifies a component relative to the one declaring the
// instruction.
type Target struct {
	Kind TargetKind
	Name string
}

// Self targets the declaring component.
func Self() Target { return Target{Kind: TargetSelf} }

// Parent targets the declaring component's parent.
func Parent() Target { return Target{Kind: TargetParent} }

// Named targets a component by name.
func Named(name string) Target { return Target{Kind: TargetNamed, Name: name} }

// StateVar asks for another variable. Optional instructions compile to no
// edges, rather than failing, when the target does not exist (a root has no
// parent) or does not declare the variable.
type StateVar struct {
	Target   Target
	Slice    Slice
	Optional bool
}

// Corresponding asks for the element of Array on Target that has the same
// index as the element being computed. Only valid in element instructions.
type Corresponding struct {
	Target Target
	Array  string
}

// Children asks for the children that provide one of Profiles, in order.
// Literal text children match the textual profiles. With Expression set and a
// statically shaped child list, the children are compiled into a single
// symbolic expression value whose free variables are the component
// children's values.
type Children struct {
	Profiles   []Profile
	Expression bool
}

// Attribute asks for the content of an attribute: literal pieces and the
// primary values of referenced components. A positive Index selects one entry
// of a literal tuple such as "(3,4)".
type Attribute struct {
	Name  string
	Index int
}

func (Essential) instruction()     {}
func (StateVar) instruction()      {}
func (Corresponding) instruction() {}
func (Children) instruction()      {}
func (Attribute) instruction()     {}

// Profile is a role a child can play for its parent.
type Profile string

const (
	ProfileText    Profile = "text"
	ProfileNumber  Profile = "number"
	ProfileBoolean Profile = "boolean"
	ProfileMath    Profile = "math"
)

// TextMatches reports whether literal text satisfies the profile.
func (p Profile) TextMatches() bool {
	switch p {
	case ProfileText, ProfileNumber, ProfileMath, ProfileBoolean:
		return true
	}
	return false
}

// ProfilesMatchText reports whether literal text satisfies any of profiles.
func ProfilesMatchText(profiles []Profile) bool {
	for _, p := range profiles {
		if p.TextMatches() {
			return true
		}
	}
	return false
}
