package device

import (
	"math"

	"github.com/edp1096/relaxspice/internal/consts"
	"github.com/edp1096/relaxspice/pkg/junction"
)

// DopingType selects which channel polarity a Mosfet models. Sign
// conventions for gate-source and drain-source voltage are flipped
// internally for PChannel so the constitutive relations below can be
// written once in NChannel terms.
type DopingType int

const (
	NChannel DopingType = iota
	PChannel
)

// Mosfet is a three-terminal source/gate/drain device: a Shockley-model
// square-law channel in series with an intrinsic source-to-drain body
// diode. There is no separate standalone diode device; the body diode is
// always present and carries current whenever the channel would otherwise
// see a negative drain-source voltage.
type Mosfet struct {
	terminals [3]int // [source, gate, drain]

	Doping                DopingType
	Beta                  float64 // channel transconductance parameter, A/V^2
	ThresholdVoltage      float64
	BodyDiodeSaturationI  float64
	BodyDiodeIdealityFact float64

	// Temperature is the device's absolute temperature (K), used by the
	// body diode's exponential. Defaults to consts.DefaultDeviceTemp.
	Temperature float64

	// I = [I_ds, d/dt I_ds].
	I [2]float64

	// VGSPositive is the last V_gs this device settled on, in NChannel
	// sign convention regardless of Doping. Exposed for diagnostics.
	VGSPositive float64
}

// NewMosfet returns a Mosfet between source (terminal 0), gate
// (terminal 1), and drain (terminal 2).
func NewMosfet(source, gate, drain int, doping DopingType, beta, vth, bodyDiodeIs, bodyDiodeN float64) *Mosfet {
	return &Mosfet{
		terminals:             [3]int{source, gate, drain},
		Doping:                doping,
		Beta:                  beta,
		ThresholdVoltage:      vth,
		BodyDiodeSaturationI:  bodyDiodeIs,
		BodyDiodeIdealityFact: bodyDiodeN,
		Temperature:           consts.DefaultDeviceTemp,
	}
}

// Terminals implements Component.
func (m *Mosfet) Terminals() []int { return m.terminals[:] }

// ImpartVoltage implements Component. The channel only constrains V_ds
// while conducting: forward through the body diode (i_ds < 0) or in the
// triode region. In saturation or cutoff the channel looks like an open
// circuit and this imparts nothing, leaving V_ds to whatever the rest of
// the circuit settles on.
func (m *Mosfet) ImpartVoltage(nets []*junction.Net, step float64) {
	iDs := m.I[0]
	if m.Doping == NChannel {
		iDs = -iDs
	}

	var vDs float64
	switch {
	case iDs < 0:
		// body diode forward conduction
		vDs = -math.Log(-iDs/m.BodyDiodeSaturationI+1) *
			(m.BodyDiodeIdealityFact * m.Temperature / consts.ChargeOverBoltzmann)
	default:
		vCtrl := m.VGSPositive - m.ThresholdVoltage
		if vCtrl <= 0 {
			return // cutoff: no influence on voltage
		}
		if vCtrl*vCtrl*0.99999 <= 2*iDs/m.Beta {
			return // saturation: no influence on voltage
		}
		// triode/linear region
		vDs = vCtrl - math.Sqrt(vCtrl*vCtrl-2*iDs/m.Beta)
	}

	if m.Doping == PChannel {
		vDs = -vDs
	}

	source, drain := nets[m.terminals[0]], nets[m.terminals[2]]
	prev := drain.Voltage() - source.Voltage()
	diff := (vDs - prev) * 0.5 * step

	source.CastVote(source.Voltage() - diff)
	drain.CastVote(drain.Voltage() + diff)
}

// ImpartCurrent implements Component. The gate terminal carries no
// current; only source and drain see the channel/body-diode current.
func (m *Mosfet) ImpartCurrent(nets []*junction.Net) {
	source, drain := nets[m.terminals[0]], nets[m.terminals[2]]
	for i := 0; i < 2; i++ {
		source.AddCurrentContribution(i, -m.I[i])
		drain.AddCurrentContribution(i, m.I[i])
	}
}

// PerturbFromNets implements Component.
func (m *Mosfet) PerturbFromNets(nets []*junction.Net) bool {
	source, gate, drain := nets[m.terminals[0]], nets[m.terminals[1]], nets[m.terminals[2]]

	vGS := gate.Voltage() - source.Voltage()
	vDS := drain.Voltage() - source.Voltage()
	if m.Doping == PChannel {
		vGS, vDS = -vGS, -vDS
	}

	var iDs float64
	if vDS > 0 {
		vCtrl := vGS - m.ThresholdVoltage
		switch {
		case vCtrl <= 0:
			// cutoff
			next := [2]float64{0, 0}
			converged := settled(m.I[0], next[0]) && settled(m.I[1], next[1])
			m.I = next
			return converged
		case vDS < vCtrl:
			iDs = m.Beta * (vCtrl*vDS - vDS*vDS*0.5) // triode
		default:
			iDs = m.Beta * (vCtrl * vCtrl * 0.5) // saturation
		}
	} else {
		// body diode, reverse-biased channel
		exponent := math.Min(64, -vDS*consts.ChargeOverBoltzmann/(m.BodyDiodeIdealityFact*m.Temperature))
		iDs = -m.BodyDiodeSaturationI * (math.Exp(exponent) - 1)
	}
	if m.Doping == NChannel {
		iDs = -iDs
	}

	var iTarget [2]float64
	for i := 0; i < 2; i++ {
		iTarget[i] = m.I[i] + 0.5*(source.Current(i)-drain.Current(i))
	}

	next := [2]float64{lerp(0.5, iDs, iTarget[0]), iTarget[1]}
	converged := settled(m.I[0], next[0]) && settled(m.I[1], next[1]) && settled(m.VGSPositive, vGS)
	m.I = next
	m.VGSPositive = vGS
	return converged
}

// Tick implements Component. I[1] (d/dt I_ds) is never written by a
// constitutive rule; it stays zero unless a caller preloads it directly,
// so this integration step is inert by default.
func (m *Mosfet) Tick(dt float64) {
	m.I[0] += m.I[1] * dt
}
