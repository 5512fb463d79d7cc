package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

func TestConserved(t *testing.T) {
	t.Parallel()

	a := ast.NewLineComment(" a")
	b := ast.NewBlockComment(" b ")

	require.NoError(t, conserved("x.ts", []*ast.Comment{a, b}, []*ast.Comment{b, a}))

	err := conserved("x.ts", []*ast.Comment{a, b}, []*ast.Comment{a, a})

	var roundTrip *reprint.RoundTripError
	require.True(t, errors.As(err, &roundTrip))
	assert.Equal(t, reprint.StageComments, roundTrip.Stage)
	assert.Contains(t, roundTrip.Reason, `lost ["/* b */"]`)
	assert.Contains(t, roundTrip.Reason, `duplicated ["// a"]`)
}

func TestEquivalent(t *testing.T) {
	t.Parallel()

	require.NoError(t, equivalent("x.ts", ast.NewIdentifier("a"), ast.NewIdentifier("a")))

	err := equivalent("x.ts", ast.NewIdentifier("a"), ast.NewIdentifier("b"))

	var roundTrip *reprint.RoundTripError
	require.True(t, errors.As(err, &roundTrip))
	assert.Equal(t, reprint.StageEquivalence, roundTrip.Stage)
	assert.NotEmpty(t, roundTrip.Reason)
}

func TestSame(t *testing.T) {
	t.Parallel()

	require.NoError(t, same("x.ts", reprint.StageIdentity, "a\r\n", "a\n", true))

	err := same("x.ts", reprint.StageIdentity, "a;\nb;\n", "a;\nc;\n", false)

	var roundTrip *reprint.RoundTripError
	require.True(t, errors.As(err, &roundTrip))
	assert.Equal(t, reprint.StageIdentity, roundTrip.Stage)
	assert.Contains(t, roundTrip.Diff, "-b;")
	assert.Contains(t, roundTrip.Diff, "+c;")
}
