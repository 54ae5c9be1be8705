package device

import "github.com/edp1096/relaxspice/pkg/junction"

// LinearKind selects which two-terminal element a LinearComponent behaves
// as. It's a closed set: five constitutive relations cover every linear
// element the circuit core models, so this is a plain enum dispatched on
// in LinearComponent's methods rather than five separate types behind the
// Component interface.
type LinearKind int

const (
	Capacitive LinearKind = iota
	Resistive
	Inductive
	Source
	Switch
)

// factorR and factorL are the lerp weights LinearComponent.PerturbFromNets
// blends the resistor's and inductor's charge-state update by: weight 0
// trusts the component's own voltage-derived target completely, weight 1
// trusts the net's current-imbalance target completely. Both are 0, so a
// resistor sets its current from Ohm's law and an inductor sets its dI/dt
// from V = L dI/dt.
const (
	factorR = 0.0
	factorL = 0.0
)

// LinearComponent is every two-terminal linear element: capacitor,
// resistor, inductor, ideal voltage source, and switch.
type LinearComponent struct {
	terminals [2]int
	kind      LinearKind
	value     float64 // farads / ohms / henries / volts; unused for Switch

	// Closed is read each pass for Switch components; mutable so a caller
	// can open or close one mid-simulation.
	Closed bool

	// Q = [charge, current, d/dt current] from terminal 0 to terminal 1.
	Q [3]float64

	// OffsetEMF is a constant bias voltage added to this component's
	// target voltage, on top of its constitutive relation. Zero unless a
	// caller sets it.
	OffsetEMF float64
}

// NewCapacitor returns a capacitor of the given capacitance (farads)
// between netA (terminal 0) and netB (terminal 1).
func NewCapacitor(netA, netB int, farads float64) *LinearComponent {
	return &LinearComponent{terminals: [2]int{netA, netB}, kind: Capacitive, value: farads}
}

// NewResistor returns a resistor of the given resistance (ohms).
func NewResistor(netA, netB int, ohms float64) *LinearComponent {
	return &LinearComponent{terminals: [2]int{netA, netB}, kind: Resistive, value: ohms}
}

// NewInductor returns an inductor of the given inductance (henries).
func NewInductor(netA, netB int, henries float64) *LinearComponent {
	return &LinearComponent{terminals: [2]int{netA, netB}, kind: Inductive, value: henries}
}

// NewVoltageSource returns an ideal voltage source holding volts from
// terminal 0 to terminal 1.
func NewVoltageSource(netA, netB int, volts float64) *LinearComponent {
	return &LinearComponent{terminals: [2]int{netA, netB}, kind: Source, value: volts}
}

// NewSwitch returns an ideal switch, initially closed or open per closed.
// A closed switch behaves as a zero-volt source (a short); an open switch
// imparts nothing and carries no current.
func NewSwitch(netA, netB int, closed bool) *LinearComponent {
	return &LinearComponent{terminals: [2]int{netA, netB}, kind: Switch, Closed: closed}
}

// Terminals implements Component.
func (c *LinearComponent) Terminals() []int { return c.terminals[:] }

// ImpartVoltage implements Component.
func (c *LinearComponent) ImpartVoltage(nets []*junction.Net, step float64) {
	net0, net1 := nets[c.terminals[0]], nets[c.terminals[1]]

	var target float64
	switch c.kind {
	case Capacitive:
		target = c.OffsetEMF - c.Q[0]/c.value
	case Resistive:
		target = c.OffsetEMF - c.Q[1]*c.value
	case Inductive:
		target = c.OffsetEMF - c.Q[2]*c.value
	case Source:
		target = c.OffsetEMF + c.value
	case Switch:
		if !c.Closed {
			return
		}
		target = c.OffsetEMF
	}

	prev := net1.Voltage() - net0.Voltage()
	diff := (target - prev) * 0.5 * step

	net0.CastVote(net0.Voltage() - diff)
	net1.CastVote(net1.Voltage() + diff)
}

// ImpartCurrent implements Component.
func (c *LinearComponent) ImpartCurrent(nets []*junction.Net) {
	if c.kind == Switch && !c.Closed {
		return
	}
	net0, net1 := nets[c.terminals[0]], nets[c.terminals[1]]
	for i := 0; i < 2; i++ {
		net0.AddCurrentContribution(i, -c.Q[i+1])
		net1.AddCurrentContribution(i, c.Q[i+1])
	}
}

// PerturbFromNets implements Component.
func (c *LinearComponent) PerturbFromNets(nets []*junction.Net) bool {
	net0, net1 := nets[c.terminals[0]], nets[c.terminals[1]]
	vTarget := net1.Voltage() - net0.Voltage()

	// self current + half of (excess current flowing in - excess current
	// flowing out), nudging this component to absorb a net's inflow and
	// supply its outflow.
	var iTarget [2]float64
	for i := 0; i < 2; i++ {
		iTarget[i] = c.Q[i+1] + 0.5*(net0.Current(i)-net1.Current(i))
	}

	q := c.Q
	switch c.kind {
	case Capacitive, Source:
		q[1] = iTarget[0]
		q[2] = iTarget[1]
	case Resistive:
		q[1] = lerp(factorR, -vTarget/c.value, iTarget[0])
		q[2] = iTarget[1]
	case Inductive:
		q[2] = lerp(factorL, -vTarget/c.value, iTarget[1])
	case Switch:
		if c.Closed {
			q[1] = iTarget[0]
			q[2] = iTarget[1]
		} else {
			q[1] = 0
			q[2] = 0
		}
	}

	converged := settled(c.Q[1], q[1]) && settled(c.Q[2], q[2])
	c.Q = q
	return converged
}

// Tick implements Component.
func (c *LinearComponent) Tick(dt float64) {
	c.Q[1] += c.Q[2] * dt
	c.Q[0] += c.Q[1] * dt
}
