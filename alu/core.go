package alu

// Output is the registered result bus: the 8-bit result and the
// carry/borrow flag, always 0 or 1.
type Output struct {
	Result uint8
	Flag   uint8
}

// Core is the registered view of the datapath: operand registers that
// sample on a rising edge and an output register one edge behind them.
// The zero value is a core in its reset state.
type Core struct {
	a, b   uint8
	out    Output
	cycles uint64
}

/* Tick advances the core by one rising clock edge. The output register
 * captures the operation of the operands sampled on the previous edge,
 * then the operand registers sample a and b. The result of a sample is
 * visible exactly one edge later, never sooner. */
func (c *Core) Tick(a, b uint8) Output {
	r, f := Compute(Decode(c.a), c.a, c.b)
	c.out = Output{Result: r, Flag: f}
	c.a, c.b = a, b
	c.cycles++
	return c.out
}

/* Out returns the currently registered output, stable between edges */
func (c *Core) Out() Output {
	return c.out
}

/* Reset clears the operand registers, the output register and the
 * cycle counter */
func (c *Core) Reset() {
	*c = Core{}
}

/* Cycles counts rising edges since the last reset */
func (c *Core) Cycles() uint64 {
	return c.cycles
}
