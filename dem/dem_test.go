package dem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeError struct {
	p           float64
	detectors   []int
	observables []int
}

type fakeBuilder struct {
	nodes  map[int]bool
	errors []fakeError
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{nodes: make(map[int]bool)}
}

func (b *fakeBuilder) EnsureNode(idx int) { b.nodes[idx] = true }

func (b *fakeBuilder) HandleError(p float64, detectors, observables []int) {
	b.errors = append(b.errors, fakeError{p: p, detectors: append([]int(nil), detectors...), observables: append([]int(nil), observables...)})
}

func TestParse_SimpleErrorLines(t *testing.T) {
	text := "error(0.1) D0 D1 L0\nerror(0.2) D1 D2\n"
	b := newFakeBuilder()
	require.NoError(t, Parse(text, b))

	require.Len(t, b.errors, 2)
	assert.InDelta(t, 0.1, b.errors[0].p, 1e-9)
	assert.Equal(t, []int{0, 1}, b.errors[0].detectors)
	assert.Equal(t, []int{0}, b.errors[0].observables)
	assert.Equal(t, []int{1, 2}, b.errors[1].detectors)
}

func TestParse_BoundaryError(t *testing.T) {
	b := newFakeBuilder()
	require.NoError(t, Parse("error(0.05) D3\n", b))

	require.Len(t, b.errors, 1)
	assert.Equal(t, []int{3}, b.errors[0].detectors)
}

func TestParse_CommentsAndBlankLinesSkipped(t *testing.T) {
	text := "# a comment\n\nerror(0.1) D0 D1\n\n# trailing\n"
	b := newFakeBuilder()
	require.NoError(t, Parse(text, b))
	assert.Len(t, b.errors, 1)
}

func TestParse_CorrelatedErrorTruncatedAtCaret(t *testing.T) {
	b := newFakeBuilder()
	require.NoError(t, Parse("error(0.1) D0 D1 ^ D2 D3\n", b))

	require.Len(t, b.errors, 1)
	assert.Equal(t, []int{0, 1}, b.errors[0].detectors)
}

func TestParse_DetectorLineEnsuresNode(t *testing.T) {
	b := newFakeBuilder()
	require.NoError(t, Parse("detector D5 1 2 3\n", b))
	assert.True(t, b.nodes[5])
}

func TestParse_UnknownInstructionSkipped(t *testing.T) {
	b := newFakeBuilder()
	require.NoError(t, Parse("shift_detectors 2\nqubit_coords(0,0) 0\nerror(0.1) D0 D1\n", b))
	assert.Len(t, b.errors, 1)
}

func TestParse_RepeatBlockShiftsDetectorIndices(t *testing.T) {
	text := "repeat 2 {\nerror(0.1) D0 D1\n}\n"
	b := newFakeBuilder()
	require.NoError(t, Parse(text, b))

	require.Len(t, b.errors, 2)
	assert.Equal(t, []int{0, 1}, b.errors[0].detectors)
	assert.Equal(t, []int{2, 3}, b.errors[1].detectors)
}

func TestParse_RepeatBlockExplicitShift(t *testing.T) {
	text := "repeat 3 {\nshift_detectors 10\nerror(0.1) D0 D1\n}\n"
	b := newFakeBuilder()
	require.NoError(t, Parse(text, b))

	require.Len(t, b.errors, 3)
	assert.Equal(t, []int{0, 1}, b.errors[0].detectors)
	assert.Equal(t, []int{10, 11}, b.errors[1].detectors)
	assert.Equal(t, []int{20, 21}, b.errors[2].detectors)
}

func TestParse_BadProbabilityReturnsLineNumberedError(t *testing.T) {
	b := newFakeBuilder()
	err := Parse("error(0.1) D0 D1\nerror(oops) D1 D2\n", b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_MissingParenReturnsError(t *testing.T) {
	b := newFakeBuilder()
	err := Parse("error 0.1 D0 D1\n", b)
	require.Error(t, err)
}
