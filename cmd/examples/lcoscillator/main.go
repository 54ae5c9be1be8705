// Command lcoscillator builds the capacitor/two-inductor loop from the
// reference LC scenario and reports the peak oscillation voltage.
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
	dt := flag.Float64("dt", 1e-5, "tick size in seconds")
	ticks := flag.Int("ticks", 1_000_001, "number of ticks to run")
	reportEvery := flag.Int("report-every", 1000, "print a running peak every N ticks")
	flag.Parse()

	ckt := circuit.New(circuit.Options{})
	n0, n1, n2 := ckt.CreateNet(), ckt.CreateNet(), ckt.CreateNet()

	capDevice := device.NewCapacitor(n0, n1, 0.1)
	capDevice.Q[0] = -1.0
	if _, err := ckt.CreateComponent(capDevice); err != nil {
		log.Fatalf("adding capacitor: %v", err)
	}
	if _, err := ckt.CreateComponent(device.NewInductor(n1, n2, 0.1)); err != nil {
		log.Fatalf("adding inductor: %v", err)
	}
	if _, err := ckt.CreateComponent(device.NewInductor(n2, n0, 0.1)); err != nil {
		log.Fatalf("adding inductor: %v", err)
	}

	if !ckt.SolveState() {
		log.Fatal("initial solve did not converge")
	}

	peak := 0.0
	windowPeak := 0.0
	for i := 0; i < *ticks; i++ {
		if !ckt.Tick(*dt) {
			log.Fatalf("tick %d failed to converge", i)
		}
		v := math.Abs(ckt.Net(n0).Voltage() - ckt.Net(n1).Voltage())
		if v > peak {
			peak = v
		}
		if v > windowPeak {
			windowPeak = v
		}
		if *reportEvery > 0 && i%(*reportEvery) == 0 {
			fmt.Printf("  tick %d window peak = %s\n", i, util.FormatValueFactor(windowPeak, "V"))
			windowPeak = 0
		}
	}

	fmt.Printf("LC oscillator, overall peak |V(0,1)| = %s\n", util.FormatValueFactor(peak, "V"))
}
