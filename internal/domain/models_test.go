package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepCircularWraps(t *testing.T) {
	assert.Equal(t, 0, Step(3, 1, 4, true))
	assert.Equal(t, 3, Step(0, -1, 4, true))
	assert.Equal(t, 2, Step(1, 1, 4, true))
}

func TestStepClampedStopsAtBounds(t *testing.T) {
	assert.Equal(t, 2, Step(2, 1, 3, false))
	assert.Equal(t, 0, Step(0, -1, 3, false))
	assert.Equal(t, 1, Step(0, 1, 3, false))
}

func TestRelationOf(t *testing.T) {
	assert.Equal(t, RelationPast, RelationOf(0, 2))
	assert.Equal(t, RelationActive, RelationOf(2, 2))
	assert.Equal(t, RelationFuture, RelationOf(3, 2))
}

func TestParseEffect(t *testing.T) {
	e, err := ParseEffect(" Zoom ")
	require.NoError(t, err)
	assert.Equal(t, EffectZoom, e)

	_, err = ParseEffect("spin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEffect))
}

func TestStepLabelPads(t *testing.T) {
	assert.Equal(t, "01 / 04", StepLabel(0, 4))
	assert.Equal(t, "012 / 120", StepLabel(11, 120))
}

func TestAccentFallsBackToLight(t *testing.T) {
	p := Payload{ColorLight: "#166534"}
	assert.Equal(t, "#166534", p.Accent(true))

	p.ColorDark = "#4ade80"
	assert.Equal(t, "#4ade80", p.Accent(true))
	assert.Equal(t, "#166534", p.Accent(false))
}

func TestCursorOverall(t *testing.T) {
	c := Cursor{ActiveIndex: 1, SubProgress: 0.5}
	assert.InDelta(t, 0.375, c.Overall(4), 1e-9)
	assert.Zero(t, c.Overall(0))
}

func TestAutoplayArmed(t *testing.T) {
	assert.True(t, AutoplayState{Enabled: true}.Armed())
	assert.False(t, AutoplayState{Enabled: true, Suspended: true}.Armed())
	assert.False(t, AutoplayState{}.Armed())
}
