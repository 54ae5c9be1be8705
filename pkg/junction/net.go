// Package junction holds the equipotential-junction state that components
// vote on and read from. It sits below both pkg/device and pkg/circuit:
// a shared leaf type two higher-level packages both need without needing
// each other.
package junction

import "math"

// voltageEpsilon and currentEpsilon bound the per-pass settle checks the
// solver uses to decide an outer round (or voltage micro-pass) has
// converged.
const (
	voltageEpsilon = 1e-12
	currentEpsilon = 0.0
)

// VoltageEpsilon exposes voltageEpsilon, the tolerance ApplyAccumulatedVoltage
// checks each net's voltage change against.
func VoltageEpsilon() float64 { return voltageEpsilon }

// Incidence names one terminal of one component attached to a Net, for
// introspection only; the solver never walks this list itself (components
// are driven directly from the circuit's own component slice).
type Incidence struct {
	ComponentIndex int
	Terminal       int
}

// Net is one equipotential junction. Components impart a voltage onto it
// by casting a weighted vote every voltage micro-pass, and impart current
// onto it by adding signed contributions to a two-slot imbalance vector
// (current itself, and its time derivative) that should sum to zero at a
// converged solution.
type Net struct {
	incidence []Incidence

	voltage    float64
	voltageAcc float64
	voteCount  int

	current        [2]float64
	currentSources int
}

// NewNet returns a Net with no incident components and zero voltage.
func NewNet() *Net {
	return &Net{}
}

// Voltage returns the junction's present settled voltage.
func (n *Net) Voltage() float64 { return n.voltage }

// Current returns the index-th slot of the junction's present current
// imbalance (0: current, 1: current's time derivative), for diagnostics
// and for PerturbFromNets to read back.
func (n *Net) Current(index int) float64 { return n.current[index] }

// Incidences returns the terminals attached to this net.
func (n *Net) Incidences() []Incidence { return n.incidence }

// BindIncidence records that a component terminal sits on this net.
// Called once per terminal at circuit-construction time.
func (n *Net) BindIncidence(componentIndex, terminal int) {
	n.incidence = append(n.incidence, Incidence{ComponentIndex: componentIndex, Terminal: terminal})
}

// CastVote adds one component's voltage opinion to the running average.
// Components that do not presently constrain voltage (an open switch, a
// MOSFET in cutoff or saturation) simply don't call this.
func (n *Net) CastVote(value float64) {
	n.voltageAcc += value
	n.voteCount++
}

// ApplyAccumulatedVoltage settles the net's voltage to the average of this
// pass's votes and resets the accumulator for the next pass. A net with no
// voting component this pass keeps its previous voltage and reports
// converged. The returned bool is whether the new voltage is within
// voltageEpsilon of the old one.
func (n *Net) ApplyAccumulatedVoltage() bool {
	if n.voteCount == 0 {
		return true
	}
	next := n.voltageAcc / float64(n.voteCount)
	converged := math.Abs(n.voltage-next) <= voltageEpsilon
	n.voltage = next
	n.voltageAcc = 0
	n.voteCount = 0
	return converged
}

// ZeroCurrent clears the current-imbalance accumulator ahead of one
// charge-correction pass.
func (n *Net) ZeroCurrent() {
	n.current = [2]float64{}
}

// AddCurrentContribution adds delta onto imbalance slot index (0: current,
// 1: its time derivative) and counts one contributor. A component calls
// this once per slot on each of its nets, with opposite signs on its two
// current-carrying terminals, so each component counts twice on a net
// (once per slot).
func (n *Net) AddCurrentContribution(index int, delta float64) {
	n.current[index] += delta
	n.currentSources++
}

// NormalizeCurrent scales the accumulated imbalance by the number of
// contributions and resets the counter, so PerturbFromNets sees a residual
// comparably scaled regardless of how many components share a net.
func (n *Net) NormalizeCurrent() {
	if n.currentSources == 0 {
		return
	}
	n.current[0] /= float64(n.currentSources)
	n.current[1] /= float64(n.currentSources)
	n.currentSources = 0
}

// currentWithinTolerance reports whether both imbalance slots are within
// currentEpsilon of zero. Computed for diagnostic purposes only; see
// CurrentConverged.
func (n *Net) currentWithinTolerance() bool {
	return math.Abs(n.current[0]) <= currentEpsilon && math.Abs(n.current[1]) <= currentEpsilon
}

// CurrentConverged always reports true; currentWithinTolerance is computed
// and then short-circuited past (`true || within_tolerance`). Outer-round
// termination has always run on the voltage check and the per-component
// charge-state check alone, and changing that now would change which
// circuits are reported as converged out from under existing callers.
// Its result is discarded; callers outside this package read the residual
// itself through Current.
func (n *Net) CurrentConverged() bool {
	_ = n.currentWithinTolerance()
	return true
}
