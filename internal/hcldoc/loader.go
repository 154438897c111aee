package hcldoc

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/doccore/internal/compid"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/fsutil"
	"github.com/specialistvlad/doccore/internal/model"
)

const (
	attrChildren     = "children"
	attrCopy         = "copy"
	attrCopyInstance = "copy_instance"
)

// Load parses every .hcl file found under paths into one document. Exactly
// one top-level block must exist across all files; it is the root.
func Load(ctx context.Context, paths ...string) (*model.Tree, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var bodies []*hclsyntax.Body
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		bodies = append(bodies, f.Body.(*hclsyntax.Body))
	}
	return load(ctx, bodies)
}

// LoadSource parses a document held in memory. filename only labels
// diagnostics.
func LoadSource(ctx context.Context, filename string, src []byte) (*model.Tree, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return load(ctx, []*hclsyntax.Body{f.Body.(*hclsyntax.Body)})
}

type loader struct {
	tree     *model.Tree
	counters map[string]int
}

func load(ctx context.Context, bodies []*hclsyntax.Body) (*model.Tree, error) {
	logger := ctxlog.FromContext(ctx)

	var diags hcl.Diagnostics
	var roots []*hclsyntax.Block
	for _, body := range bodies {
		for _, attr := range sortedAttributes(body) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected top-level attribute",
				Detail:   fmt.Sprintf("Attribute %q must be set inside a component block.", attr.Name),
				Subject:  attr.SrcRange.Ptr(),
			})
		}
		roots = append(roots, body.Blocks...)
	}
	if len(roots) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid document root",
			Detail:   fmt.Sprintf("A document needs exactly one top-level block, found %d.", len(roots)),
		})
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load document: %w", diags)
	}

	l := &loader{counters: make(map[string]int)}
	l.tree = model.NewTree(l.name(roots[0]))
	if _, diags := l.block(roots[0], l.tree.Root, ""); diags.HasErrors() {
		return nil, fmt.Errorf("failed to load document: %w", diags)
	}
	logger.Debug("HCL document loaded.", "root", l.tree.Root, "components", len(l.tree.Components))
	return l.tree, nil
}

// name returns the block's label, or a generated name for unlabeled blocks.
func (l *loader) name(b *hclsyntax.Block) string {
	if len(b.Labels) > 0 {
		return b.Labels[0]
	}
	l.counters[b.Type]++
	return "_" + b.Type + strconv.Itoa(l.counters[b.Type])
}

// block adds the component b describes, then its nested blocks.
func (l *loader) block(b *hclsyntax.Block, name, parent string) (string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if len(b.Labels) > 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Too many labels",
			Detail:   fmt.Sprintf("A %s block takes at most one label, its name.", b.Type),
			Subject:  b.LabelRanges[1].Ptr(),
		})
	}
	if !compid.ValidName(name) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid component name",
			Detail:   fmt.Sprintf("%q may only contain letters, digits, '_', '.' and '-'.", name),
			Subject:  b.DefRange().Ptr(),
		})
	}

	comp := &model.Component{
		Name:       name,
		Type:       b.Type,
		Parent:     parent,
		Attributes: make(map[string]model.Attribute),
	}
	if err := l.tree.Add(comp); err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Duplicate component",
			Detail:   err.Error(),
			Subject:  b.DefRange().Ptr(),
		})
		return name, diags
	}

	var nested []string
	for _, child := range b.Body.Blocks {
		childName, childDiags := l.block(child, l.name(child), name)
		diags = append(diags, childDiags...)
		nested = append(nested, childName)
	}

	var listed []model.Child
	var copyInstance *hclsyntax.Attribute
	for _, attr := range sortedAttributes(b.Body) {
		switch attr.Name {
		case attrChildren:
			var d hcl.Diagnostics
			listed, d = childPieces(attr.Expr)
			diags = append(diags, d...)
		case attrCopy:
			src, d := parseCopy(attr.Expr)
			diags = append(diags, d...)
			comp.CopySource = src
		case attrCopyInstance:
			copyInstance = attr
		default:
			pieces, d := attributePieces(attr.Expr)
			diags = append(diags, d...)
			comp.Attributes[attr.Name] = pieces
		}
	}
	if copyInstance != nil {
		diags = append(diags, applyCopyInstance(comp, copyInstance)...)
	}

	children, d := orderChildren(listed, nested, b)
	diags = append(diags, d...)
	comp.Children = children
	return name, diags
}

// orderChildren places the listed children first and appends the nested
// blocks the list does not mention.
func orderChildren(listed []model.Child, nested []string, b *hclsyntax.Block) ([]model.Child, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	isNested := make(map[string]bool, len(nested))
	for _, n := range nested {
		isNested[n] = true
	}

	used := make(map[string]bool)
	out := make([]model.Child, 0, len(listed)+len(nested))
	for _, ch := range listed {
		if ch.IsText() {
			out = append(out, ch)
			continue
		}
		if !isNested[ch.Component] || used[ch.Component] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid child reference",
				Detail:   fmt.Sprintf("children may only list each block nested in %s once; %q is not available.", b.Type, ch.Component),
				Subject:  b.Body.Attributes[attrChildren].SrcRange.Ptr(),
			})
			continue
		}
		used[ch.Component] = true
		out = append(out, ch)
	}
	for _, n := range nested {
		if !used[n] {
			out = append(out, model.ComponentChild(n))
		}
	}
	return out, diags
}

func applyCopyInstance(comp *model.Component, attr *hclsyntax.Attribute) hcl.Diagnostics {
	cc, ok := comp.CopySource.(model.CopyOfComponent)
	if !ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unexpected copy_instance",
			Detail:   "copy_instance only applies to a copy of a whole component.",
			Subject:  attr.SrcRange.Ptr(),
		}}
	}
	inst, diags := intList(attr.Expr)
	if diags.HasErrors() {
		return diags
	}
	cc.Instance = inst
	comp.CopySource = cc
	return nil
}

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
