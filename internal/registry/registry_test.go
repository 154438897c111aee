package registry

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moduleFunc func(r *Registry)

func (f moduleFunc) Register(r *Registry) { f(r) }

func TestRegisterComponent(t *testing.T) {
	text := &definition.Component{
		Type:         "text",
		PrimaryInput: "value",
		Variables:    map[string]definition.Variable{"value": definition.TextFromChildren(true)},
		Provides:     map[definition.Profile]string{definition.ProfileText: "value"},
	}

	r := NewWithModules(moduleFunc(func(r *Registry) { r.RegisterComponent(text) }))

	got, ok := r.Lookup("text")
	require.True(t, ok)
	assert.Same(t, text, got)
	assert.Equal(t, []string{"text"}, r.Types())

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	assert.PanicsWithValue(t, "component type 'text' already registered", func() {
		r.RegisterComponent(text)
	})
	assert.NoError(t, r.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		def     *definition.Component
		wantErr string
	}{
		{
			name:    "missing primary input",
			def:     &definition.Component{Type: "a", PrimaryInput: "value"},
			wantErr: `primary input "value" is not a declared variable`,
		},
		{
			name: "array primary input",
			def: &definition.Component{Type: "a", PrimaryInput: "xs", Variables: map[string]definition.Variable{
				"xs": definition.ArrayFromAttribute("xs", value.KindNumber, value.Number(0), 2, false),
			}},
			wantErr: "must not be an array",
		},
		{
			name:    "actions without handler",
			def:     &definition.Component{Type: "a", Actions: []string{"go"}},
			wantErr: "no action handler",
		},
		{
			name: "guard is not boolean",
			def: &definition.Component{Type: "a", Guard: "g", Variables: map[string]definition.Variable{
				"g": definition.Constant(value.String("x"), false),
			}},
			wantErr: `guard "g" must be a declared single boolean variable`,
		},
		{
			name: "batch member var not an array",
			def: &definition.Component{
				Type: "seq",
				Variables: map[string]definition.Variable{
					"count": definition.Constant(value.Integer(1), false),
					"value": definition.Constant(value.Number(1), false),
				},
				Group: definition.Group{Kind: definition.GroupBatch, Batch: &definition.Batch{
					SizeVar: "count", MemberType: "seq", MemberVars: map[string]string{"value": "value"},
				}},
			},
			wantErr: `must map to an array, got "value"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			r.RegisterComponent(tc.def)
			assert.ErrorContains(t, r.Validate(), tc.wantErr)
		})
	}
}
