// Package tt models the Tiny Tapeout pin surface of the ALU submission:
// the dedicated input and output buses, the bidirectional bus carrying
// the flag, and the clock, reset and enable behavior of the wrapper.
package tt

import (
	"github.com/MatthPapa/ttalu/alu"
)

// Top is the pin-level view of the design. Operand A arrives on ui_in
// with the opcode in its low three bits, operand B on uio_in. The
// result drives uo_out and the flag drives bit 0 of uio_out.
type Top struct {
	// input pins
	UIIn  uint8 // ui_in: operand A, opcode in bits 2:0
	UIOIn uint8 // uio_in: operand B
	Ena   bool  // ena: high when the design may run
	RstN  bool  // rst_n: active low reset

	// output pins, registered
	UOOut  uint8 // uo_out: result
	UIOOut uint8 // uio_out: flag on bit 0, bits 7:1 driven low
	UIOOE  uint8 // uio_oe: direction mask, bit 0 is the only output

	core alu.Core
}

/* New returns a Top with reset asserted and every pin low */
func New() *Top {
	return &Top{UIOOE: 0x01}
}

/* ClockRisingEdge advances the design by one rising clock edge. Reset
 * dominates enable: while rst_n is low every register clears. While ena
 * is low the design samples nothing and holds its outputs. */
func (t *Top) ClockRisingEdge() {
	switch {
	case !t.RstN:
		t.core.Reset()
		t.UOOut = 0
		t.UIOOut = 0
	case !t.Ena:
		// hold
	default:
		out := t.core.Tick(t.UIIn, t.UIOIn)
		t.UOOut = out.Result
		// only bit 0 of the bidirectional bus is driven
		t.UIOOut = out.Flag & 0x01
	}
}

/* Cycles counts enabled rising edges since the last reset */
func (t *Top) Cycles() uint64 {
	return t.core.Cycles()
}
