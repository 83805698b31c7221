package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/vmath"
)

func newEquation(c Completer) *OrderChecker {
	return NewOrderChecker(parameter.ChallengeEquation, c, EquationLayout(), WithOrderLogger(quiet))
}

func TestOrderChecker_StartsUnsolved(t *testing.T) {
	rc := &recordingCompleter{}
	o := newEquation(rc)

	assert.False(t, o.InOrder())
	assert.False(t, o.Solved())
	assert.Empty(t, rc.calls)
	assert.Equal(t, []string{"equation1", "equation2", "equation4", "equation3", "equation5"}, o.IDs())
}

func TestOrderChecker_SolvesOnce(t *testing.T) {
	rc := &recordingCompleter{}
	o := newEquation(rc)

	o.Update("equation3", 0.15)
	assert.True(t, o.InOrder())
	require.Equal(t, []string{parameter.ChallengeEquation}, rc.calls)

	o.Update("equation3", 0.18)
	o.Update("equation3", 0.9)
	assert.False(t, o.InOrder())
	o.Update("equation3", 0.15)
	assert.True(t, o.InOrder())
	assert.True(t, o.Solved())
	assert.Len(t, rc.calls, 1)
}

func TestOrderChecker_EqualXIsNotAscending(t *testing.T) {
	rc := &recordingCompleter{}
	o := newEquation(rc)
	o.Update("equation3", 0.2)
	assert.False(t, o.InOrder())
	assert.Empty(t, rc.calls)
}

func TestOrderChecker_IgnoresUnknown(t *testing.T) {
	rc := &recordingCompleter{}
	o := newEquation(rc)
	o.Update("chalk", -1)
	o.Update("", 0)
	assert.Len(t, o.Glyphs(), 5)
	assert.False(t, o.Drag("chalk", vmath.Ray{Origin: vmath.Vec3{0, 2, 2}, Dir: vmath.Vec3{0, 0, -1}}))
	assert.Empty(t, rc.calls)
}

func TestOrderChecker_PartialSetNeverSolves(t *testing.T) {
	rc := &recordingCompleter{}
	o := NewOrderChecker("partial", rc, nil, WithOrderLogger(quiet))
	o.Update("a", 1)
	assert.False(t, o.InOrder())

	o = NewOrderChecker("pair", rc, []Glyph{{ID: "b", X: 0}, {ID: "a", X: 1}}, WithOrderLogger(quiet))
	assert.False(t, o.InOrder())
	o.Update("a", -1)
	assert.True(t, o.InOrder())
	assert.Equal(t, []string{"pair"}, rc.calls)
}

func TestOrderChecker_Drag(t *testing.T) {
	o := newEquation(nil)

	ok := o.Drag("equation5", vmath.Ray{Origin: vmath.Vec3{0.7, 2.3, 2}, Dir: vmath.Vec3{0, 0, -1}})
	require.True(t, ok)
	g := o.Glyphs()[4]
	assert.Equal(t, "equation5", g.ID)
	assert.InDelta(t, 0.7, g.X, 1e-12)
	assert.InDelta(t, 0.3, g.Y, 1e-12)

	ok = o.Drag("equation5", vmath.Ray{Origin: vmath.Vec3{5, 4, 2}, Dir: vmath.Vec3{0, 0, -1}})
	require.True(t, ok)
	g = o.Glyphs()[4]
	assert.Equal(t, 1.4, g.X)
	assert.Equal(t, 0.8, g.Y)

	// pointing away from the board
	assert.False(t, o.Drag("equation5", vmath.Ray{Origin: vmath.Vec3{0, 2, 2}, Dir: vmath.Vec3{0, 0, 1}}))
}

func TestOrderChecker_Reset(t *testing.T) {
	rc := &recordingCompleter{}
	o := newEquation(rc)
	o.Update("equation3", 0.15)
	require.Len(t, rc.calls, 1)

	o.Reset()
	assert.False(t, o.Solved())
	assert.False(t, o.InOrder())
	assert.Equal(t, EquationLayout(), o.Glyphs())

	o.Nudge("equation3", -0.15)
	assert.True(t, o.InOrder())
	assert.Len(t, rc.calls, 2)
}
