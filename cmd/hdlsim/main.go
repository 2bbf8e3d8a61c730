// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hdlsim is a minimal demo: it wires a clock generator
// (spec.md scenario S1) driving a single AND gate and logs
// every signal change the kernel observes. It is not a waveform writer
// or a CLI front-end for the simulator, only a smoke test that the
// pieces fit together end to end.
package main

import (
	"flag"
	"log"

	hdlsim "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/lib"
	"github.com/db47h/hdlsim/sim"
	"github.com/db47h/hdlsim/types"
)

func newSignal(name string, width int, init string) *sim.Signal {
	lt := types.LogicType(width)
	c := hdlsim.NewConstLogic(lt, bits.ParseLogic(init))
	def := hdlsim.NewSignal(lt, c)
	def.SetName(name)
	return sim.NewSignal(def)
}

func main() {
	ticks := flag.Int("ticks", 8, "number of clock half-periods to simulate")
	period := flag.Int64("period", 5, "clock half-period, in picoseconds")
	flag.Parse()

	clk := newSignal("clk", 1, "0")
	a := newSignal("a", 1, "1")
	out := newSignal("out", 1, "0")

	clkgen := lib.ClockProcess("clkgen", clk, *period)

	k := sim.NewKernel(0, 0)
	k.AddProcess(clkgen)
	k.AddComb(lib.AndComb(clk, a, out))
	k.Observe(sim.ObserverFunc(func(t sim.Time, sig *sim.Signal, old, new bits.Logic) {
		log.Printf("%s @ %v = %s", sig.Name(), t, new.String())
	}))

	for i := 0; i < *ticks; i++ {
		more, err := k.Step()
		if err != nil {
			log.Fatalf("hdlsim: %v", err)
		}
		if !more {
			break
		}
	}
}
