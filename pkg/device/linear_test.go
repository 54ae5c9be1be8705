package device_test

import (
	. "github.com/edp1096/relaxspice/pkg/device"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/relaxspice/pkg/circuit"
)

func newTestCircuit() *circuit.Circuit {
	return circuit.New(circuit.Options{})
}

func TestRCDischargeApproachesECeil(t *testing.T) {
	c := newTestCircuit()
	n0, n1 := c.CreateNet(), c.CreateNet()

	capDevice := NewCapacitor(n0, n1, 1.0)
	capDevice.Q[0] = 1.0 // 1 C pushed onto the capacitor
	_, err := c.CreateComponent(capDevice)
	require.NoError(t, err)

	res := NewResistor(n0, n1, 1.0)
	_, err = c.CreateComponent(res)
	require.NoError(t, err)

	require.True(t, c.SolveState())

	for i := 0; i < 10001; i++ {
		require.True(t, c.Tick(1e-4), "tick %d failed to converge", i)
	}

	v := math.Abs(c.Net(0).Voltage() - c.Net(1).Voltage())
	target := math.Exp(-1)
	assert.InDelta(t, target, v, target*0.01)
}

func TestLCOscillatorStaysBounded(t *testing.T) {
	c := newTestCircuit()
	n0, n1, n2 := c.CreateNet(), c.CreateNet(), c.CreateNet()

	capDevice := NewCapacitor(n0, n1, 0.1)
	capDevice.Q[0] = -1.0
	_, err := c.CreateComponent(capDevice)
	require.NoError(t, err)

	_, err = c.CreateComponent(NewInductor(n1, n2, 0.1))
	require.NoError(t, err)
	_, err = c.CreateComponent(NewInductor(n2, n0, 0.1))
	require.NoError(t, err)

	require.True(t, c.SolveState())

	peak := 0.0
	const ticks = 100001
	for i := 0; i < ticks; i++ {
		require.True(t, c.Tick(1e-5))
		v := math.Abs(c.Net(0).Voltage() - c.Net(1).Voltage())
		if v > peak {
			peak = v
		}
	}

	assert.GreaterOrEqual(t, peak, 9.0*0.5) // loose lower bound; the capacitor starts at Q/C = 10 V, so the peak is already set at the first tick
	assert.LessOrEqual(t, peak, 11.0)
}

func TestOpenSwitchBlocksCurrent(t *testing.T) {
	c := newTestCircuit()
	n0, n1 := c.CreateNet(), c.CreateNet()

	_, err := c.CreateComponent(NewVoltageSource(n0, n1, 1.0))
	require.NoError(t, err)
	_, err = c.CreateComponent(NewResistor(n0, n1, 1.0))
	require.NoError(t, err)
	sw := NewSwitch(n0, n1, false)
	_, err = c.CreateComponent(sw)
	require.NoError(t, err)

	require.True(t, c.SolveState())
	assert.InDelta(t, 0.0, sw.Q[1], 1e-9)
}

func TestClosedSwitchCompletesSeriesLoop(t *testing.T) {
	c := newTestCircuit()
	n0, n1, n2 := c.CreateNet(), c.CreateNet(), c.CreateNet()

	// source, resistor and switch in one series loop: n0 -> n1 -> n2 -> n0
	_, err := c.CreateComponent(NewVoltageSource(n0, n1, 1.0))
	require.NoError(t, err)
	res := NewResistor(n1, n2, 1.0)
	_, err = c.CreateComponent(res)
	require.NoError(t, err)
	_, err = c.CreateComponent(NewSwitch(n2, n0, true))
	require.NoError(t, err)

	require.True(t, c.SolveState())
	assert.InDelta(t, 1.0, math.Abs(res.Q[1]), 0.05)
}

func TestConvergenceFailsOnShortedIdealSource(t *testing.T) {
	c := circuit.New(circuit.Options{MaxOuterRounds: 200})
	n0, n1 := c.CreateNet(), c.CreateNet()

	_, err := c.CreateComponent(NewVoltageSource(n0, n1, 5.0))
	require.NoError(t, err)
	_, err = c.CreateComponent(NewSwitch(n0, n1, true)) // a closed switch is a zero-volt wire, i.e. a short
	require.NoError(t, err)

	assert.False(t, c.SolveState())
}

func TestCreateComponentRejectsOutOfRangeNet(t *testing.T) {
	c := newTestCircuit()
	n0 := c.CreateNet()
	_, err := c.CreateComponent(NewResistor(n0, n0+5, 1.0))
	assert.Error(t, err)
}
