package docerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("building core: %w", &Error{Kind: CyclicalCopySource, Chain: []string{"a", "b"}})

	assert.True(t, errors.Is(err, ErrCyclicalCopySource))
	assert.False(t, errors.Is(err, ErrCyclicalDependency))

	var docErr *Error
	assert.True(t, errors.As(err, &docErr))
	assert.Equal(t, []string{"a", "b"}, docErr.Chain)
}

func TestError_Messages(t *testing.T) {
	testCases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: ComponentNotFound, Component: "p1", Target: "x"}, `component not found: "x" referenced by "p1"`},
		{&Error{Kind: StateVarNotFound, Component: "P", Target: "nope"}, `state variable not found: "nope" on component "P"`},
		{&Error{Kind: CyclicalDependency, Chain: []string{"a", "b", "c"}}, "cyclical data dependency: a -> b -> c"},
		{&Error{Kind: ComponentCopiesAncestor, Component: "t", Target: "p"}, `component copies its own ancestor: "t" copies "p"`},
	}
	for _, tc := range testCases {
		t.Run(tc.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Kind: NonPositiveIndex, Component: "c", Detail: "0"}
	assert.Equal(t, `index is not a positive integer: "0" on component "c"`, w.String())
}
