package consts

const (
	CHARGE    = 1.6021918e-19 // Elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // Kelvin temperature (K)

	// ChargeOverBoltzmann is q/k in K/V, used by the MOSFET body-diode
	// exponential. Pinned to this literal rather than computed from
	// CHARGE/BOLTZMANN above, since the two don't quite agree at this
	// precision (see consts_test.go) and body-diode currents are
	// exponential in it, where small drift compounds fast.
	ChargeOverBoltzmann = 1.1604518121550082e+4

	// DefaultDeviceTemp is the MOSFET's default absolute temperature (K)
	// absent an explicit override.
	DefaultDeviceTemp = 295.0
)
