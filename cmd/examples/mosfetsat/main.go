// Command mosfetsat wires a P-channel MOSFET into saturation between two
// 5V sources and reports the settled drain-source current.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/edp1096/relaxspice/pkg/circuit"
	"github.com/edp1096/relaxspice/pkg/device"
	"github.com/edp1096/relaxspice/pkg/util"
)

func main() {
	beta := flag.Float64("beta", 0.02, "channel transconductance parameter")
	vth := flag.Float64("vth", 1.0, "threshold voltage")
	flag.Parse()

	ckt := circuit.New(circuit.Options{})
	source, gate, drain := ckt.CreateNet(), ckt.CreateNet(), ckt.CreateNet()

	if _, err := ckt.CreateComponent(device.NewVoltageSource(gate, source, 5.0)); err != nil {
		log.Fatalf("adding source bias: %v", err)
	}
	if _, err := ckt.CreateComponent(device.NewVoltageSource(drain, source, 5.0)); err != nil {
		log.Fatalf("adding drain bias: %v", err)
	}
	if !ckt.SolveState() {
		log.Fatal("bias solve did not converge")
	}

	m := device.NewMosfet(source, gate, drain, device.PChannel, *beta, *vth, 0.1, 1.0)
	if _, err := ckt.CreateComponent(m); err != nil {
		log.Fatalf("adding mosfet: %v", err)
	}
	if !ckt.SolveState() {
		log.Fatal("mosfet solve did not converge")
	}

	fmt.Printf("MOSFET saturation: beta=%.3f, Vth=%.3f\n", *beta, *vth)
	fmt.Printf("  I_ds = %s\n", util.FormatValueFactor(m.I[0], "A"))
	fmt.Printf("  V_gs (N-equivalent) = %s\n", util.FormatValueFactor(m.VGSPositive, "V"))
}
