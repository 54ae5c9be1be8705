// Command switchdemo solves the same resistor-and-source network with the
// series switch open and then closed, to show both branches of its
// constitutive relation.
package main

import (
	"fmt"
	"log"

	"github.com/edp1096/relaxspice/pkg/circuit"
	"github.com/edp1096/relaxspice/pkg/device"
	"github.com/edp1096/relaxspice/pkg/util"
)

func build() (*circuit.Circuit, *device.LinearComponent, *device.LinearComponent) {
	ckt := circuit.New(circuit.Options{})
	n0, n1, n2 := ckt.CreateNet(), ckt.CreateNet(), ckt.CreateNet()

	if _, err := ckt.CreateComponent(device.NewVoltageSource(n0, n1, 1.0)); err != nil {
		log.Fatalf("adding source: %v", err)
	}
	res := device.NewResistor(n1, n2, 1.0)
	if _, err := ckt.CreateComponent(res); err != nil {
		log.Fatalf("adding resistor: %v", err)
	}
	sw := device.NewSwitch(n2, n0, false)
	if _, err := ckt.CreateComponent(sw); err != nil {
		log.Fatalf("adding switch: %v", err)
	}
	return ckt, res, sw
}

func main() {
	ckt, res, sw := build()

	if !ckt.SolveState() {
		log.Fatal("open-switch solve did not converge")
	}
	fmt.Println("Switch open:")
	fmt.Printf("  I(R) = %s\n", util.FormatValueFactor(res.Q[1], "A"))

	sw.Closed = true
	if !ckt.SolveState() {
		log.Fatal("closed-switch solve did not converge")
	}
	fmt.Println("Switch closed:")
	fmt.Printf("  I(R) = %s\n", util.FormatValueFactor(res.Q[1], "A"))
}
