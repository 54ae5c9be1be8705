// Command rcdischarge builds a one-farad capacitor discharging through a
// one-ohm resistor and ticks it forward, printing the settling voltage.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/edp1096/relaxspice/pkg/circuit"
	"github.com/edp1096/relaxspice/pkg/device"
	"github.com/edp1096/relaxspice/pkg/util"
)

func main() {
	dt := flag.Float64("dt", 1e-4, "tick size in seconds")
	ticks := flag.Int("ticks", 10001, "number of ticks to run")
	flag.Parse()

	ckt := circuit.New(circuit.Options{})
	n0, n1 := ckt.CreateNet(), ckt.CreateNet()

	capDevice := device.NewCapacitor(n0, n1, 1.0)
	capDevice.Q[0] = 1.0 // 1 C pushed onto the capacitor at t=0
	if _, err := ckt.CreateComponent(capDevice); err != nil {
		log.Fatalf("adding capacitor: %v", err)
	}
	if _, err := ckt.CreateComponent(device.NewResistor(n0, n1, 1.0)); err != nil {
		log.Fatalf("adding resistor: %v", err)
	}

	if !ckt.SolveState() {
		log.Fatal("initial solve did not converge")
	}

	for i := 0; i < *ticks; i++ {
		if !ckt.Tick(*dt) {
			log.Fatalf("tick %d failed to converge", i)
		}
	}

	v := ckt.Net(n0).Voltage() - ckt.Net(n1).Voltage()
	fmt.Printf("RC discharge, tau=1s, t=%.4fs\n", float64(*ticks)*(*dt))
	fmt.Printf("  V(0,1) = %s\n", util.FormatValueFactor(v, "V"))
	fmt.Printf("  e^-1   = %.4f\n", math.Exp(-1))
}
