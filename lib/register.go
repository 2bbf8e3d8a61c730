// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	hdlsim "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/types"
)

// RegisterEntity returns a width-bits structural register entity built
// directly on the IR's own OpReg primitive (unlike DFFProgram, which
// has to emulate edge detection in the process VM, the IR already has a
// native clocked-storage instruction).
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is a clk rising edge
func RegisterEntity(width int) (*hdlsim.Unit, error) {
	lt := types.LogicType(width)
	clkT := types.LogicType(1)
	return hdlsim.NewEntityBuilder("REG", []hdlsim.ParamSpec{
		{Name: "clk", Type: clkT},
		{Name: "in", Type: lt},
	}, []hdlsim.ParamSpec{
		{Name: "out", Type: lt},
	}).
		ConstLogic("init", zeroLiteral(width)).
		Reg("out", "clk", "in", "init").
		Build()
}

func zeroLiteral(width int) string {
	b := make([]byte, width)
	for i := range b {
		b[i] = byte(bits.Code0)
	}
	return string(b)
}
