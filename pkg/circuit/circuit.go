// Package circuit owns the bipartite net/component graph and drives the
// alternating-direction relaxation solver over it: dense slices of nets
// and components, relaxed to a self-consistent operating point by a
// fixed-point loop rather than by assembling and factoring a matrix.
package circuit

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edp1096/relaxspice/pkg/device"
	"github.com/edp1096/relaxspice/pkg/junction"
)

// Options configures a Circuit's solver. The zero value is usable:
// MaxOuterRounds falls back to defaultMaxOuterRounds and Damper falls back
// to the chaotic sine sequence in SineDamper.
type Options struct {
	// MaxOuterRounds bounds how many outer rounds SolveState will attempt
	// before reporting non-convergence. Zero means defaultMaxOuterRounds.
	MaxOuterRounds int

	// Damper supplies the per-outer-round voltage-vote damping scalar. Nil
	// means SineDamper{}.
	Damper Damper

	// VoltageMicroPasses bounds how many times correctVoltages retries
	// within a single outer round before giving up on voltage convergence
	// for that round and moving on to the charge-state correction. Zero
	// means defaultVoltageMicroPasses.
	VoltageMicroPasses int

	// Logger receives a warning whenever SolveState exhausts its round
	// budget without converging. Zero value is zerolog.Nop(), i.e. silent.
	Logger zerolog.Logger
}

const (
	defaultMaxOuterRounds     = 10000
	defaultVoltageMicroPasses = 10
)

// Circuit is the bipartite graph of Nets and Components, plus the solver
// state needed to relax it to a self-consistent operating point.
type Circuit struct {
	nets       []*junction.Net
	components []device.Component
	opts       Options
}

// New returns an empty Circuit configured by opts.
func New(opts Options) *Circuit {
	if opts.MaxOuterRounds == 0 {
		opts.MaxOuterRounds = defaultMaxOuterRounds
	}
	if opts.Damper == nil {
		opts.Damper = SineDamper{}
	}
	if opts.VoltageMicroPasses == 0 {
		opts.VoltageMicroPasses = defaultVoltageMicroPasses
	}
	return &Circuit{opts: opts}
}

// NetCount returns the number of nets created so far.
func (c *Circuit) NetCount() int { return len(c.nets) }

// Net returns the net at index i.
func (c *Circuit) Net(i int) *junction.Net { return c.nets[i] }

// CreateNet adds a new, unconnected equipotential junction and returns its
// index.
func (c *Circuit) CreateNet() int {
	c.nets = append(c.nets, junction.NewNet())
	return len(c.nets) - 1
}

// CreateComponent adds comp to the circuit, binding each of its terminals
// to the net it names. It returns an error if any terminal names a net
// index outside the circuit's current net count.
func (c *Circuit) CreateComponent(comp device.Component) (int, error) {
	for terminal, netIdx := range comp.Terminals() {
		if netIdx < 0 || netIdx >= len(c.nets) {
			return -1, fmt.Errorf("circuit: component terminal %d references net %d, have %d nets", terminal, netIdx, len(c.nets))
		}
	}
	idx := len(c.components)
	c.components = append(c.components, comp)
	for terminal, netIdx := range comp.Terminals() {
		c.nets[netIdx].BindIncidence(idx, terminal)
	}
	return idx, nil
}

// Tick advances every component's internal state by dt, then relaxes the
// circuit to a self-consistent operating point. It returns false if
// SolveState failed to converge within the configured round budget.
func (c *Circuit) Tick(dt float64) bool {
	for _, comp := range c.components {
		comp.Tick(dt)
	}
	return c.SolveState()
}

// SolveState relaxes the circuit's nets and components to a self-consistent
// operating point: voltages that satisfy every component's constitutive
// relation, and component currents that balance at every net. It returns
// false if no outer round converges within opts.MaxOuterRounds.
func (c *Circuit) SolveState() bool {
	for round := 0; round < c.opts.MaxOuterRounds; round++ {
		voltagesConverged := false
		for pass := 0; pass < c.opts.VoltageMicroPasses; pass++ {
			if c.correctVoltages(c.opts.Damper.Step(round)) {
				voltagesConverged = true
				break
			}
		}

		chargeConverged := c.correctChargeStates()
		if voltagesConverged && chargeConverged {
			return true
		}
	}

	c.opts.Logger.Warn().
		Int("max_outer_rounds", c.opts.MaxOuterRounds).
		Int("nets", len(c.nets)).
		Int("components", len(c.components)).
		Msg("circuit did not converge within the outer round budget")
	return false
}

// correctVoltages runs one voltage micro-pass: every component casts its
// vote, then every net settles to the average of votes cast. It returns
// true if every net's new voltage is within junction.VoltageEpsilon of its
// old one.
func (c *Circuit) correctVoltages(step float64) bool {
	for _, comp := range c.components {
		comp.ImpartVoltage(c.nets, step)
	}

	converged := true
	for _, net := range c.nets {
		if !net.ApplyAccumulatedVoltage() {
			converged = false
		}
	}
	return converged
}

// correctChargeStates runs one charge-correction pass: zero and
// re-accumulate every net's current imbalance from the now-settled
// voltages, then let every component re-derive its internal state from
// that imbalance. It returns true if every component reports its state
// held steady.
func (c *Circuit) correctChargeStates() bool {
	for _, net := range c.nets {
		net.ZeroCurrent()
	}
	for _, comp := range c.components {
		comp.ImpartCurrent(c.nets)
	}
	for _, net := range c.nets {
		net.NormalizeCurrent()
	}

	converged := true
	for _, comp := range c.components {
		if !comp.PerturbFromNets(c.nets) {
			converged = false
		}
	}

	for _, net := range c.nets {
		if !net.CurrentConverged() {
			converged = false
		}
	}
	return converged
}
