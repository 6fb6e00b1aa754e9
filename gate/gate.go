// Package gate rebuilds the ALU datapath from gate primitives on the
// hwsim simulator: a ripple-carry adder, a two's-complement subtractor,
// bitwise blocks and barrel shifters. Tests prove each block equivalent
// to the behavioral model in package alu.
package gate

import (
	"fmt"

	hw "github.com/db47h/hwsim"
)

// The primitives are pinned here as PartSpecs so every netlist below
// spells out its own gate structure.

var notSpec = &hw.PartSpec{
	Name:    "not",
	Inputs:  []string{"in"},
	Outputs: []string{"out"},
	Mount: func(s *hw.Socket) hw.Updater {
		in, out := s.Wire("in"), s.Wire("out")
		return hw.UpdaterFn(func(clk bool) {
			out.Send(clk, !in.Recv(clk))
		})
	}}

var andSpec = &hw.PartSpec{
	Name:    "and",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"out"},
	Mount: func(s *hw.Socket) hw.Updater {
		a, b, out := s.Wire("a"), s.Wire("b"), s.Wire("out")
		return hw.UpdaterFn(func(clk bool) {
			out.Send(clk, a.Recv(clk) && b.Recv(clk))
		})
	}}

var orSpec = &hw.PartSpec{
	Name:    "or",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"out"},
	Mount: func(s *hw.Socket) hw.Updater {
		a, b, out := s.Wire("a"), s.Wire("b"), s.Wire("out")
		return hw.UpdaterFn(func(clk bool) {
			out.Send(clk, a.Recv(clk) || b.Recv(clk))
		})
	}}

var xorSpec = &hw.PartSpec{
	Name:    "xor",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"out"},
	Mount: func(s *hw.Socket) hw.Updater {
		a, b, out := s.Wire("a"), s.Wire("b"), s.Wire("out")
		return hw.UpdaterFn(func(clk bool) {
			out.Send(clk, a.Recv(clk) != b.Recv(clk))
		})
	}}

var muxSpec = &hw.PartSpec{
	Name:    "mux",
	Inputs:  []string{"a", "b", "sel"},
	Outputs: []string{"out"},
	Mount: func(s *hw.Socket) hw.Updater {
		a, b, sel, out := s.Wire("a"), s.Wire("b"), s.Wire("sel"), s.Wire("out")
		return hw.UpdaterFn(func(clk bool) {
			if sel.Recv(clk) {
				out.Send(clk, b.Recv(clk))
			} else {
				out.Send(clk, a.Recv(clk))
			}
		})
	}}

/* FullAdder returns a one-bit full adder: two xors for the sum, two
 * ands and an or for the carry. */
func FullAdder() (hw.NewPartFn, error) {
	return hw.Chip("full_adder", "a, b, cin", "sum, cout",
		xorSpec.NewPart("a=a, b=b, out=axb"),
		xorSpec.NewPart("a=axb, b=cin, out=sum"),
		andSpec.NewPart("a=axb, b=cin, out=c1"),
		andSpec.NewPart("a=a, b=b, out=c2"),
		orSpec.NewPart("a=c1, b=c2, out=cout"),
	)
}

/* Adder8 chains eight full adders into a ripple-carry adder. With cin
 * low, cout is the ADD carry flag. */
func Adder8() (hw.NewPartFn, error) {
	fa, err := FullAdder()
	if err != nil {
		return nil, err
	}
	parts := make([]hw.Part, 0, 8)
	carry := "cin"
	for i := 0; i < 8; i++ {
		next := fmt.Sprintf("c%d", i)
		if i == 7 {
			next = "cout"
		}
		parts = append(parts, fa(fmt.Sprintf(
			"a=a[%d], b=b[%d], cin=%s, sum=sum[%d], cout=%s", i, i, carry, i, next)))
		carry = next
	}
	return hw.Chip("adder8", "a[8], b[8], cin", "sum[8], cout", parts...)
}

/* Subber8 computes a - b as a + ^b + 1: an inverter per bit of b
 * feeding the ripple-carry chain with its carry-in on the one pin,
 * which callers tie high. bout is the inverted carry out, raised when
 * b exceeds a. */
func Subber8() (hw.NewPartFn, error) {
	fa, err := FullAdder()
	if err != nil {
		return nil, err
	}
	parts := make([]hw.Part, 0, 17)
	carry := "one"
	for i := 0; i < 8; i++ {
		parts = append(parts, notSpec.NewPart(fmt.Sprintf("in=b[%d], out=nb%d", i, i)))
		next := fmt.Sprintf("c%d", i)
		if i == 7 {
			next = "carry"
		}
		parts = append(parts, fa(fmt.Sprintf(
			"a=a[%d], b=nb%d, cin=%s, sum=diff[%d], cout=%s", i, i, carry, i, next)))
		carry = next
	}
	parts = append(parts, notSpec.NewPart("in=carry, out=bout"))
	return hw.Chip("subber8", "a[8], b[8], one", "diff[8], bout", parts...)
}

/* And8 ands the operand buses bit by bit */
func And8() (hw.NewPartFn, error) {
	return bitwise8("and8", andSpec, false)
}

/* Or8 ors the operand buses bit by bit */
func Or8() (hw.NewPartFn, error) {
	return bitwise8("or8", orSpec, false)
}

/* Nor8 is Or8 with an inverter per bit */
func Nor8() (hw.NewPartFn, error) {
	return bitwise8("nor8", orSpec, true)
}

func bitwise8(name string, spec *hw.PartSpec, invert bool) (hw.NewPartFn, error) {
	parts := make([]hw.Part, 0, 16)
	for i := 0; i < 8; i++ {
		if invert {
			parts = append(parts,
				spec.NewPart(fmt.Sprintf("a=a[%d], b=b[%d], out=t%d", i, i, i)),
				notSpec.NewPart(fmt.Sprintf("in=t%d, out=out[%d]", i, i)))
		} else {
			parts = append(parts,
				spec.NewPart(fmt.Sprintf("a=a[%d], b=b[%d], out=out[%d]", i, i, i)))
		}
	}
	return hw.Chip(name, "a[8], b[8]", "out[8]", parts...)
}

/* Shl8 is a three-stage barrel shifter: stage k shifts left by 1<<k
 * when sh[k] is high. Vacated bits fill from the zero pin, which
 * callers tie low. */
func Shl8() (hw.NewPartFn, error) {
	parts := make([]hw.Part, 0, 24)
	for stage, shift := range []int{1, 2, 4} {
		for i := 0; i < 8; i++ {
			shifted := "zero"
			if i >= shift {
				shifted = shifterWire(stage, i-shift)
			}
			parts = append(parts, muxSpec.NewPart(fmt.Sprintf(
				"a=%s, b=%s, sel=sh[%d], out=%s",
				shifterWire(stage, i), shifted, stage, shifterWire(stage+1, i))))
		}
	}
	return hw.Chip("shl8", "a[8], sh[3], zero", "out[8]", parts...)
}

/* Shr8 mirrors Shl8 for logical right shifts: the fill comes in from
 * the top bits. */
func Shr8() (hw.NewPartFn, error) {
	parts := make([]hw.Part, 0, 24)
	for stage, shift := range []int{1, 2, 4} {
		for i := 0; i < 8; i++ {
			shifted := "zero"
			if i+shift < 8 {
				shifted = shifterWire(stage, i+shift)
			}
			parts = append(parts, muxSpec.NewPart(fmt.Sprintf(
				"a=%s, b=%s, sel=sh[%d], out=%s",
				shifterWire(stage, i), shifted, stage, shifterWire(stage+1, i))))
		}
	}
	return hw.Chip("shr8", "a[8], sh[3], zero", "out[8]", parts...)
}

/* shifterWire names the bus bit between shifter stages: the a pins in
 * front of stage 0, the out pins behind stage 3 and scalar wires in
 * between */
func shifterWire(stage, i int) string {
	switch stage {
	case 0:
		return fmt.Sprintf("a[%d]", i)
	case 3:
		return fmt.Sprintf("out[%d]", i)
	default:
		return fmt.Sprintf("s%db%d", stage, i)
	}
}
