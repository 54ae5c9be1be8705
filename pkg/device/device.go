// Package device implements the constitutive models: the closed set of
// two-terminal linear components (pkg/device.LinearComponent) and the
// three-terminal MOSFET (pkg/device.Mosfet). Both satisfy Component, the
// four-operation contract pkg/circuit drives every outer round.
package device

import "github.com/edp1096/relaxspice/pkg/junction"

// Component is the constitutive contract every device family implements.
// Rather than contributing conductance/RHS terms to a global matrix, a
// Component votes on and reads from the Nets it's attached to directly,
// across four calls the solver makes once per voltage micro-pass
// (ImpartVoltage), once per outer round (ImpartCurrent/PerturbFromNets)
// and once per tick (Tick).
type Component interface {
	// Terminals returns the net indices this component is attached to, in
	// terminal order (terminal 0 first, ...).
	Terminals() []int

	// ImpartVoltage casts this component's voltage vote onto its nets for
	// one micro-pass. step is the current outer round's damping scalar in
	// [0, 1]: the component computes its ideal target voltage from its own
	// constitutive relation, then moves the net only a step-sized fraction
	// of the way there, so one outlying vote in an early, undamped pass
	// can't fling the net's whole neighborhood past its settling point. A
	// component that does not presently constrain voltage (an open switch,
	// a MOSFET outside its body-diode/triode region) must impart nothing.
	ImpartVoltage(nets []*junction.Net, step float64)

	// ImpartCurrent adds this component's signed current onto each of its
	// nets' running imbalance, once the net voltages have settled.
	ImpartCurrent(nets []*junction.Net)

	// PerturbFromNets re-derives this component's internal charge/current
	// state from the now-settled net voltages and reports whether that
	// state held steady (moved by no more than the device's own
	// convergence tolerance). The solver treats every component reporting
	// true, together with every net's own voltage check, as outer-round
	// convergence.
	PerturbFromNets(nets []*junction.Net) bool

	// Tick advances the component's internal state by one timestep dt,
	// independent of any net. Called once per simulation tick, before the
	// outer-round solve for that tick begins.
	Tick(dt float64)
}

// convergenceEpsilon bounds how much a device's internal state may move
// between two successive charge-correction passes before that pass counts
// as having changed anything. Shared across device families so a tightened
// or loosened tolerance in one doesn't quietly drift from the others.
const convergenceEpsilon = 1e-12

// settled reports whether prev and next are close enough that a device can
// report this field as unchanged for one PerturbFromNets call.
func settled(prev, next float64) bool {
	d := prev - next
	if d < 0 {
		d = -d
	}
	return d <= convergenceEpsilon
}

// lerp blends a and b by weight w, where w=0 yields a and w=1 yields b.
func lerp(w, a, b float64) float64 {
	return a*(1-w) + b*w
}
