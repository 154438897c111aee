// Package dump writes a human-readable YAML snapshot of a compiled
// dependency graph and the essential data behind it. It is a debugging aid;
// nothing reads the output back.
package dump

import (
	"fmt"
	"io"

	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"gopkg.in/yaml.v3"
)

// Document is the dumped snapshot.
type Document struct {
	Variables []Variable `yaml:"variables"`
	Reads     []Read     `yaml:"reads,omitempty"`
	Essential []Datum    `yaml:"essential,omitempty"`
}

// Variable is one compiled variable slice and its edges per instruction.
type Variable struct {
	Key          string              `yaml:"key"`
	Shadow       bool                `yaml:"shadow,omitempty"`
	Instructions map[string][]string `yaml:"instructions,omitempty"`
}

// Read is one entry of the reverse index.
type Read struct {
	From   string `yaml:"from"`
	Target string `yaml:"target"`
	Kind   string `yaml:"kind"`
	Rel    string `yaml:"relative,omitempty"`
}

// Datum is one essential datum with every instance that has its own copy.
type Datum struct {
	Key       string     `yaml:"key"`
	Instances []Instance `yaml:"instances"`
}

// Instance is the value of a datum at one instance.
type Instance struct {
	Instance string   `yaml:"instance"`
	Value    string   `yaml:"value,omitempty"`
	Elements []string `yaml:"elements,omitempty"`
}

var readKinds = map[depgraph.ReadKind]string{
	depgraph.ReadBasic:         "basic",
	depgraph.ReadSize:          "size",
	depgraph.ReadElement:       "element",
	depgraph.ReadAny:           "any",
	depgraph.ReadCorresponding: "corresponding",
}

// Build collects the snapshot.
func Build(g *depgraph.Graph, store *essential.Store) (Document, error) {
	var doc Document
	for _, vk := range g.VarKeys() {
		v := Variable{Key: vk.String(), Shadow: g.IsShadow(vk)}
		names, _ := g.Instructions(vk)
		if len(names) > 0 {
			v.Instructions = make(map[string][]string, len(names))
		}
		for _, n := range names {
			edges := []string{}
			for _, e := range g.Edges(vk, n) {
				edges = append(edges, e.String())
			}
			v.Instructions[n] = edges
		}
		doc.Variables = append(doc.Variables, v)
	}

	for _, r := range g.AllReads() {
		target := r.Target + ":" + r.Name
		if r.Kind == depgraph.ReadElement {
			target = fmt.Sprintf("%s[%d]", target, r.Index)
		}
		doc.Reads = append(doc.Reads, Read{From: r.From.String(), Target: target, Kind: readKinds[r.Kind], Rel: r.Rel.String()})
	}

	for _, key := range store.Keys() {
		d := Datum{Key: key.String()}
		insts := store.Instances(key)
		if len(insts) == 0 {
			insts = []instance.Instance{nil}
		}
		for _, inst := range insts {
			got, err := datumAt(store, key, inst)
			if err != nil {
				return Document{}, err
			}
			d.Instances = append(d.Instances, got)
		}
		doc.Essential = append(doc.Essential, d)
	}
	return doc, nil
}

func datumAt(store *essential.Store, key essential.Key, inst instance.Instance) (Instance, error) {
	out := Instance{Instance: inst.String()}
	isArray, err := store.IsArray(key)
	if err != nil {
		return Instance{}, err
	}
	if !isArray {
		v, err := store.Value(key, inst)
		if err != nil {
			return Instance{}, err
		}
		out.Value = v.Text()
		return out, nil
	}
	n, err := store.Size(key, inst)
	if err != nil {
		return Instance{}, err
	}
	out.Elements = []string{}
	for i := 1; i <= n; i++ {
		v, _, err := store.Element(key, inst, i)
		if err != nil {
			return Instance{}, err
		}
		out.Elements = append(out.Elements, v.Text())
	}
	return out, nil
}

// Write encodes the snapshot as YAML.
func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return enc.Close()
}
