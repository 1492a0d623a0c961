package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galaxyclient/galaxy/ai"
)

func TestQuadrantOf(t *testing.T) {
	assert.Equal(t, 1, ai.QuadrantOf(ai.XY{X: 5, Y: 0}))
	assert.Equal(t, 2, ai.QuadrantOf(ai.XY{X: 0, Y: 5}))
	assert.Equal(t, 3, ai.QuadrantOf(ai.XY{X: -5, Y: 0}))
	assert.Equal(t, 4, ai.QuadrantOf(ai.XY{X: 0, Y: -5}))
	assert.Equal(t, 1, ai.QuadrantOf(ai.XY{X: 0, Y: 0}))
}

func TestAccelerationAtPullsAlongLargerCoordinate(t *testing.T) {
	assert.Equal(t, ai.XY{X: -1, Y: 0}, ai.AccelerationAt(ai.XY{X: 10, Y: 2}))
	assert.Equal(t, ai.XY{X: 0, Y: -1}, ai.AccelerationAt(ai.XY{X: 2, Y: 10}))
	assert.Equal(t, ai.XY{X: -1, Y: -1}, ai.AccelerationAt(ai.XY{X: 5, Y: 5}))
	assert.Equal(t, ai.XY{X: 1, Y: 0}, ai.AccelerationAt(ai.XY{X: -10, Y: 2}))
}

func TestOrbitTerminatesWithinMaxSteps(t *testing.T) {
	sv := ai.SV{S: ai.XY{X: 48, Y: 0}, V: ai.XY{X: 0, Y: 4}}
	o := ai.NewOrbit(sv, 1000)

	var steps int
	for {
		_, ok := o.Next()
		if !ok {
			break
		}
		steps++
		if steps > 1000 {
			t.Fatal("orbit did not terminate within its step budget")
		}
	}
	assert.Greater(t, steps, 0)
}
