package consts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ChargeOverBoltzmann is pinned to a literal rather than computed from
// CHARGE and BOLTZMANN because the two don't quite agree at this precision.
// This cross-checks that they still agree closely enough that the pinned
// literal and the derived ratio describe the same physical quantity; a
// future edit to either constant that drifts them apart should fail here.
func TestChargeOverBoltzmannMatchesDerivedRatio(t *testing.T) {
	derived := CHARGE / BOLTZMANN
	assert.InDelta(t, ChargeOverBoltzmann, derived, 1.0)
}

// DefaultDeviceTemp is 295K, chosen as ordinary room temperature. This
// documents that choice in Celsius via the KELVIN offset.
func TestDefaultDeviceTempIsRoomTemperature(t *testing.T) {
	celsius := DefaultDeviceTemp - KELVIN
	assert.InDelta(t, 21.85, celsius, 0.01)
}
