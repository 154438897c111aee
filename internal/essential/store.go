// Package essential implements the store of essential data: the only truly
// mutable leaves of the dependency graph.
//
// A datum is created exactly once per Key, the first time the graph builder
// compiles an instruction that needs it, and seeded then. Inside repeated
// templates every instance gets its own copy of the datum, created lazily from
// the seed on first write, so writing to one repetition never affects another.
// Array data grow only by appending; nothing is ever deallocated. The whole
// store can be snapshotted and handed to a fresh core to keep user edits
// across a document reload.
//
// The store is not safe for concurrent use. The core that owns it is driven
// by a single caller at a time.
package essential

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/value"
)

// OriginKind says what a datum backs.
type OriginKind uint8

const (
	// OriginStateVar backs a state variable of the owner.
	OriginStateVar OriginKind = iota
	// OriginChildText backs the literal text child at Index of the owner.
	OriginChildText
	// OriginAttribute backs literal piece Index of the owner's attribute
	// Name.
	OriginAttribute
	// OriginAttributeEntry backs tuple entry Index of the owner's attribute
	// Name.
	OriginAttributeEntry
)

// Origin tags which variable or literal a datum belongs to.
type Origin struct {
	Kind  OriginKind
	Name  string
	Index int
}

// StateVarOrigin returns the origin for a state variable.
func StateVarOrigin(name string) Origin { return Origin{Kind: OriginStateVar, Name: name} }

// ChildTextOrigin returns the origin for a literal text child.
func ChildTextOrigin(position int) Origin { return Origin{Kind: OriginChildText, Index: position} }

// AttributeOrigin returns the origin for a literal attribute piece.
func AttributeOrigin(attr string, piece int) Origin {
	return Origin{Kind: OriginAttribute, Name: attr, Index: piece}
}

// AttributeEntryOrigin returns the origin for one tuple entry of an attribute.
func AttributeEntryOrigin(attr string, entry int) Origin {
	return Origin{Kind: OriginAttributeEntry, Name: attr, Index: entry}
}

func (o Origin) String() string {
	switch o.Kind {
	case OriginChildText:
		return fmt.Sprintf("child[%d]", o.Index)
	case OriginAttribute:
		return fmt.Sprintf("attr:%s[%d]", o.Name, o.Index)
	case OriginAttributeEntry:
		return fmt.Sprintf("attr:%s(%d)", o.Name, o.Index)
	default:
		return "var:" + o.Name
	}
}

// Key identifies a datum independently of instances.
type Key struct {
	Component string
	Origin    Origin
}

func (k Key) String() string { return k.Component + "/" + k.Origin.String() }

// Datum is one value, or an array with a sparse element table.
type Datum struct {
	array bool
	value value.Value
	elems map[int]value.Value
	size  int
	fill  value.Value
}

// Single returns a single-valued datum.
func Single(v value.Value) Datum { return Datum{value: v} }

// Array returns an array datum holding elems and filling unset elements with
// fill.
func Array(elems []value.Value, fill value.Value) Datum {
	d := Datum{array: true, elems: make(map[int]value.Value, len(elems)), size: len(elems), fill: fill}
	for i, v := range elems {
		d.elems[i+1] = v
	}
	return d
}

// IsArray reports whether the datum is an array.
func (d Datum) IsArray() bool { return d.array }

func (d Datum) clone() Datum {
	out := d
	if d.elems != nil {
		out.elems = make(map[int]value.Value, len(d.elems))
		for k, v := range d.elems {
			out.elems[k] = v
		}
	}
	return out
}

type entry struct {
	seed      Datum
	instances map[string]*Datum
}

// Store holds every datum of a core.
type Store struct {
	entries map[Key]*entry
	prior   *Store
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[Key]*entry)}
}

// Import makes data created later start from the state found in prior for the
// same key, preserving edits made before a reload.
func (s *Store) Import(prior *Store) {
	s.prior = prior
}

// Create allocates a datum. It reports false, and changes nothing, when the
// key already exists.
func (s *Store) Create(key Key, seed Datum) bool {
	if _, exists := s.entries[key]; exists {
		return false
	}
	if s.prior != nil {
		if old, ok := s.prior.entries[key]; ok && old.seed.array == seed.array {
			s.entries[key] = old.clone()
			return true
		}
	}
	s.entries[key] = &entry{seed: seed, instances: make(map[string]*Datum)}
	return true
}

func (e *entry) clone() *entry {
	out := &entry{seed: e.seed.clone(), instances: make(map[string]*Datum, len(e.instances))}
	for k, d := range e.instances {
		c := d.clone()
		out.instances[k] = &c
	}
	return out
}

// Has reports whether the key exists.
func (s *Store) Has(key Key) bool {
	_, ok := s.entries[key]
	return ok
}

// IsArray reports whether the key holds an array datum.
func (s *Store) IsArray(key Key) (bool, error) {
	e, err := s.entry(key)
	if err != nil {
		return false, err
	}
	return e.seed.array, nil
}

func (s *Store) entry(key Key) (*entry, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, fmt.Errorf("essential data %s does not exist", key)
	}
	return e, nil
}

func (s *Store) read(key Key, inst instance.Instance) (Datum, error) {
	e, err := s.entry(key)
	if err != nil {
		return Datum{}, err
	}
	if d, ok := e.instances[inst.Key()]; ok {
		return *d, nil
	}
	return e.seed, nil
}

func (s *Store) writable(key Key, inst instance.Instance) (*Datum, error) {
	e, err := s.entry(key)
	if err != nil {
		return nil, err
	}
	k := inst.Key()
	if d, ok := e.instances[k]; ok {
		return d, nil
	}
	d := e.seed.clone()
	e.instances[k] = &d
	return &d, nil
}

// Value reads a single datum.
func (s *Store) Value(key Key, inst instance.Instance) (value.Value, error) {
	d, err := s.read(key, inst)
	if err != nil {
		return value.Value{}, err
	}
	if d.array {
		return value.Value{}, fmt.Errorf("essential data %s is an array", key)
	}
	return d.value, nil
}

// Size reads the size of an array datum.
func (s *Store) Size(key Key, inst instance.Instance) (int, error) {
	d, err := s.read(key, inst)
	if err != nil {
		return 0, err
	}
	if !d.array {
		return 0, fmt.Errorf("essential data %s is not an array", key)
	}
	return d.size, nil
}

// Element reads element i (1-based) of an array datum. Elements past the
// size do not exist; elements inside it that were never set read as the fill
// value.
func (s *Store) Element(key Key, inst instance.Instance, i int) (value.Value, bool, error) {
	d, err := s.read(key, inst)
	if err != nil {
		return value.Value{}, false, err
	}
	if !d.array {
		return value.Value{}, false, fmt.Errorf("essential data %s is not an array", key)
	}
	if i < 1 || i > d.size {
		return value.Value{}, false, nil
	}
	if v, ok := d.elems[i]; ok {
		return v, true, nil
	}
	return d.fill, true, nil
}

// Set writes a single datum.
func (s *Store) Set(key Key, inst instance.Instance, v value.Value) error {
	d, err := s.writable(key, inst)
	if err != nil {
		return err
	}
	if d.array {
		return fmt.Errorf("essential data %s is an array", key)
	}
	d.value = v
	return nil
}

// SetElement writes element i of an array datum, growing the array when i
// is past its size. grew reports whether the size changed.
func (s *Store) SetElement(key Key, inst instance.Instance, i int, v value.Value) (grew bool, err error) {
	if i < 1 {
		return false, fmt.Errorf("essential array index %d out of range", i)
	}
	d, err := s.writable(key, inst)
	if err != nil {
		return false, err
	}
	if !d.array {
		return false, fmt.Errorf("essential data %s is not an array", key)
	}
	d.elems[i] = v
	if i > d.size {
		d.size = i
		return true, nil
	}
	return false, nil
}

// Keys returns every key in a stable order.
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Instances returns the instance keys that have their own copy of the datum.
func (s *Store) Instances(key Key) []instance.Instance {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(e.instances))
	for k := range e.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]instance.Instance, len(keys))
	for i, k := range keys {
		out[i] = instance.FromKey(k)
	}
	return out
}

// Snapshot returns a deep copy of the store, suitable for Import.
func (s *Store) Snapshot() *Store {
	out := New()
	for k, e := range s.entries {
		out.entries[k] = e.clone()
	}
	return out
}
