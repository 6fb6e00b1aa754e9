// Package bench drives the pin-level model the way a silicon testbench
// drives the die: a free-running clock, the reset sequence, and
// self-checking vectors with mismatch reporting.
package bench

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/MatthPapa/ttalu/tt"
)

// DefaultPeriodNS is the bench clock period in nanoseconds.
const DefaultPeriodNS = 10

// Bench wraps a Top with clock and simulation-time bookkeeping and a
// trace of every vector applied so far.
type Bench struct {
	Top      *tt.Top
	PeriodNS uint64
	Trace    []Result

	nowNS uint64
}

// Result records one applied vector: what came back on the pins, when,
// and the mismatch if there was one.
type Result struct {
	Vector  Vector
	GotY    uint8
	GotFlag uint8
	AtNS    uint64
	Err     error
}

// Report summarizes one bench run.
type Report struct {
	Applied int
	Passed  int
	Failed  int
	Cycles  uint64
	SimNS   uint64
}

/* New returns a bench around top. A zero periodNS selects the default
 * 10 ns clock. */
func New(top *tt.Top, periodNS uint64) *Bench {
	if periodNS == 0 {
		periodNS = DefaultPeriodNS
	}
	return &Bench{Top: top, PeriodNS: periodNS}
}

/* tick runs one rising edge and advances simulation time by a period */
func (b *Bench) tick() {
	b.Top.ClockRisingEdge()
	b.nowNS += b.PeriodNS
}

/* NowNS is the simulation time in nanoseconds. It never rewinds, not
 * even across resets. */
func (b *Bench) NowNS() uint64 {
	return b.nowNS
}

/* ResetDUT replays the bench reset sequence: rst_n and ena low with
 * both operand buses cleared for 20 ns, then both high and two rising
 * edges before the first vector. */
func (b *Bench) ResetDUT() {
	t := b.Top
	t.RstN = false
	t.Ena = false
	t.UIIn = 0
	t.UIOIn = 0
	for held := uint64(0); held < 20; held += b.PeriodNS {
		b.tick()
	}
	t.RstN = true
	t.Ena = true
	b.tick()
	b.tick()
}

/* ApplyAndCheck drives one vector onto the pins, waits the two edges of
 * the pin protocol and checks the registered outputs. The vector's A
 * must encode its opcode in the low three bits. */
func (b *Bench) ApplyAndCheck(v Vector) error {
	if uint8(v.Op) != v.A&0x07 {
		return errors.Errorf("A=%#04x does not encode opcode %03b", v.A, uint8(v.Op))
	}

	t := b.Top
	t.UIIn = v.A
	t.UIOIn = v.B

	b.tick() // inputs sampled
	b.tick() // outputs registered

	res := Result{
		Vector:  v,
		GotY:    t.UOOut,
		GotFlag: t.UIOOut & 0x01,
		AtNS:    b.nowNS,
	}

	wantY, wantFlag := v.Want()
	switch {
	case res.GotY != wantY:
		res.Err = errors.Errorf("Result mismatch: %s: got 0x%02X, expected 0x%02X",
			v.label(), res.GotY, wantY)
	case res.GotFlag != wantFlag:
		res.Err = errors.Errorf("Flag mismatch: %s: got %d, expected %d",
			v.label(), res.GotFlag, wantFlag)
	}
	b.Trace = append(b.Trace, res)
	return res.Err
}

/* Run resets the device and applies every vector, logging mismatches as
 * they happen. */
func (b *Bench) Run(vs []Vector) Report {
	b.ResetDUT()
	var rep Report
	for _, v := range vs {
		rep.Applied++
		if err := b.ApplyAndCheck(v); err != nil {
			rep.Failed++
			log.Printf("%v", err)
		} else {
			rep.Passed++
		}
	}
	rep.Cycles = b.Top.Cycles()
	rep.SimNS = b.nowNS
	return rep
}

func (r Result) String() string {
	status := "ok"
	if r.Err != nil {
		status = "FAIL"
	}
	return fmt.Sprintf("%6dns %s -> Y=0x%02X F=%d %s",
		r.AtNS, r.Vector, r.GotY, r.GotFlag, status)
}
