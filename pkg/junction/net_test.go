package junction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetVoltageVoteAverages(t *testing.T) {
	n := NewNet()
	n.CastVote(1.0)
	n.CastVote(3.0)
	converged := n.ApplyAccumulatedVoltage()
	assert.False(t, converged) // moved from 0 to 2, well outside voltageEpsilon
	assert.Equal(t, 2.0, n.Voltage())
}

func TestNetVoltageUnvotedHoldsSteady(t *testing.T) {
	n := NewNet()
	n.CastVote(5.0)
	n.ApplyAccumulatedVoltage()

	converged := n.ApplyAccumulatedVoltage() // no votes cast this pass
	assert.True(t, converged)
	assert.Equal(t, 5.0, n.Voltage())
}

func TestNetCurrentNormalizesByContributorCount(t *testing.T) {
	n := NewNet()
	n.ZeroCurrent()
	n.AddCurrentContribution(0, 1.0)
	n.AddCurrentContribution(0, 3.0)
	n.NormalizeCurrent()
	assert.Equal(t, 2.0, n.Current(0))
}

func TestNetCurrentConvergedIsAlwaysTrue(t *testing.T) {
	n := NewNet()
	n.ZeroCurrent()
	n.AddCurrentContribution(0, 1e9)
	assert.True(t, n.CurrentConverged())
}
