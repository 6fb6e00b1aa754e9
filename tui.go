/* Copyright (C) 2025 MatthPapa
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software Foundation,
 * Inc., 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301  USA
 */
package main

import (
	"fmt"
	"io"

	"github.com/jroimartin/gocui"

	"github.com/MatthPapa/ttalu/alu"
	"github.com/MatthPapa/ttalu/bench"
)

type KeyBinding struct {
	View    string
	Key     interface{}
	Mod     gocui.Modifier
	Handler func(*gocui.Gui, *gocui.View) error
}

type TUI struct {
	B       *bench.Bench
	Gui     *gocui.Gui
	Vectors []bench.Vector
	/* breakpoints, one per vector */
	BP     []bool
	Next   int
	VecPos int
	VecMin int
	TrMin  int
	TrHex  bool
	VCycle []*gocui.View
	CView  int
}

func (u *TUI) Run() error {
	defer u.Gui.Close()
	if err := u.Gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func initGui(b *bench.Bench, vs []bench.Vector) (*TUI, error) {
	var err error
	u := &TUI{B: b, Vectors: vs}
	u.BP = make([]bool, len(vs))
	u.TrHex = true
	u.VCycle = make([]*gocui.View, 0, 2)
	u.CView = 0
	u.Gui, err = gocui.NewGui(gocui.OutputNormal)

	if err != nil {
		return nil, err
	}

	u.B.ResetDUT()

	u.Gui.SetManagerFunc(u.Layout)

	/* Keybindings */
	var keys []KeyBinding = []KeyBinding{
		KeyBinding{"", gocui.KeyCtrlC, gocui.ModNone, quit},
		KeyBinding{"", 'q', gocui.ModNone, quit},
		KeyBinding{"", 's', gocui.ModNone, u.StepVector},
		KeyBinding{"", 'r', gocui.ModNone, u.RunVectors},
		KeyBinding{"", 'l', gocui.ModNone, u.ResetBench},
		KeyBinding{"", 'c', gocui.ModNone, u.CycleView},
		KeyBinding{"", 'C', gocui.ModNone, u.ReverseCycleView},
		KeyBinding{"vectors", 'j', gocui.ModNone, u.VecScrollDown},
		KeyBinding{"vectors", 'k', gocui.ModNone, u.VecScrollUp},
		KeyBinding{"vectors", 'b', gocui.ModNone, u.VecToggleBreakPoint},
		KeyBinding{"trace", 'j', gocui.ModNone, u.TraceScrollDown},
		KeyBinding{"trace", 'k', gocui.ModNone, u.TraceScrollUp},
		KeyBinding{"trace", 'm', gocui.ModNone, u.TraceModeToggle},
	}

	/* Setup keybindngs */
	for _, k := range keys {
		err = u.Gui.SetKeybinding(k.View, k.Key, k.Mod, k.Handler)
		if err != nil {
			return nil, err
		}
	}

	u.Gui.Update(u.UpdateViews)

	return u, nil
}

func (u *TUI) UpdateViews(g *gocui.Gui) error {
	/* Pins View */
	err := u.UpdatePinsView(g)
	if err != nil {
		return err
	}
	/* Opcodes View */
	err = u.UpdateOpcodesView(g)
	if err != nil {
		return err
	}
	/* Vectors View */
	err = u.UpdateVectorsView(g)
	if err != nil {
		return err
	}
	/* Trace View */
	err = u.UpdateTraceView(g)
	if err != nil {
		return err
	}
	return nil
}

func (u *TUI) UpdatePinsView(g *gocui.Gui) error {
	v, err := g.View("pins")
	if err != nil {
		return err
	}
	v.Clear()
	t := u.B.Top
	fmt.Fprintf(v, "%-7s: 0x%02X %3d %08b\n", "A", t.UIIn, t.UIIn, t.UIIn)
	fmt.Fprintf(v, "%-7s: 0x%02X %3d %08b\n", "B", t.UIOIn, t.UIOIn, t.UIOIn)
	fmt.Fprintf(v, "%-7s: %s\n", "op", alu.Decode(t.UIIn))
	fmt.Fprintf(v, "%-7s: 0x%02X %3d %08b\n", "Y", t.UOOut, t.UOOut, t.UOOut)
	fmt.Fprintf(v, "%-7s: %d\n", "flag", t.UIOOut&0x01)
	fmt.Fprintf(v, "%-7s: 0x%02X\n", "uio_oe", t.UIOOE)
	ena, rst := 0, 0
	if t.Ena {
		ena = 1
	}
	if t.RstN {
		rst = 1
	}
	fmt.Fprintf(v, "%-7s: %d  %-6s: %d\n", "ena", ena, "rst_n", rst)
	fmt.Fprintf(v, "%-7s: %d ns\n", "period", u.B.PeriodNS)
	fmt.Fprintf(v, "%-7s: %d ns\n", "time", u.B.NowNS())
	fmt.Fprintf(v, "%-7s: %d\n", "cycles", t.Cycles())
	fmt.Fprintf(v, "%-7s: %d/%d", "next", u.Next, len(u.Vectors))

	return nil
}

var opDescs = [8]string{
	"A + B, flag = carry",
	"A | B",
	"A & B",
	"^(A | B)",
	"A << B[2:0]",
	"A >> B[2:0]",
	"A - B, flag = borrow",
	"reserved, reads 0",
}

/* writeOpTable prints the operation table with a '>' on the opcode
 * currently decoded from A */
func writeOpTable(w io.Writer, cur alu.Opcode) {
	for op := alu.OpADD; op <= alu.OpRSV; op++ {
		mark := ' '
		if op == cur {
			mark = '>'
		}
		fmt.Fprintf(w, "%c%03b %-3s %s\n", mark, uint8(op), op, opDescs[op])
	}
}

func (u *TUI) UpdateOpcodesView(g *gocui.Gui) error {
	v, err := g.View("opcodes")
	if err != nil {
		return err
	}
	v.Clear()
	writeOpTable(v, alu.Decode(u.B.Top.UIIn))

	return nil
}

func (u *TUI) UpdateVectorsView(g *gocui.Gui) error {
	v, err := g.View("vectors")
	if err != nil {
		return err
	}
	v.Clear()
	_, maxY := v.Size()
	var br rune
	var cur rune
	for i := 0; i < maxY && (i+u.VecMin) < len(u.Vectors); i++ {
		if i+u.VecMin == u.Next {
			cur = '>'
		} else {
			cur = ' '
		}
		if u.BP[i+u.VecMin] {
			br = '*'
		} else {
			br = ' '
		}
		vec := u.Vectors[i+u.VecMin]
		fmt.Fprintf(v, "%c%c%4d: %s  %s\n", cur, br, i+u.VecMin, vec, vec.Desc)
	}
	return nil
}

func (u *TUI) UpdateTraceView(g *gocui.Gui) error {
	v, err := g.View("trace")
	if err != nil {
		return err
	}
	v.Clear()
	_, maxY := v.Size()
	tr := u.B.Trace
	for i := 0; i < maxY && (i+u.TrMin) < len(tr); i++ {
		r := tr[i+u.TrMin]
		if u.TrHex {
			fmt.Fprintf(v, "%4d: %s\n", i+u.TrMin, r)
		} else {
			status := "ok"
			if r.Err != nil {
				status = "FAIL"
			}
			fmt.Fprintf(v, "%4d: %6dns %-3s A=%08b B=%08b -> Y=%08b F=%d %s\n",
				i+u.TrMin, r.AtNS, r.Vector.Op, r.Vector.A, r.Vector.B, r.GotY, r.GotFlag, status)
		}
	}

	return nil
}

func (u *TUI) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	maxX--
	maxY--
	col1x := (maxX - 4) * 5 / 12
	if col1x > 44 {
		col1x = 44
	}
	cell1y := (maxY - 4) * 7 / 8
	if cell1y > 13 {
		cell1y = 13
	}
	if v, err := g.SetView("pins", 0, 0, col1x, cell1y); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = true
		v.Title = "pins"
	}
	if v, err := g.SetView("opcodes", 0, cell1y+1, col1x, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = true
		v.Title = "opcodes"
	}
	if v, err := g.SetView("vectors", col1x+1, 0, maxX, (maxY-4)/2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = true
		v.Highlight = true
		v.Title = "vectors"

		v.SetCursor(0, 0)
		FocusView(g, v)

		u.VCycle = append(u.VCycle, v)
	}
	if v, err := g.SetView("trace", col1x+1, (maxY-4)/2+1, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = true
		v.Highlight = true
		v.Title = "trace"

		v.SetCursor(0, 0)
		DefocusView(g, v)

		u.VCycle = append(u.VCycle, v)
	}
	u.UpdateViews(g)
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (u *TUI) StepVector(g *gocui.Gui, v *gocui.View) error {
	if u.Next < len(u.Vectors) {
		u.B.ApplyAndCheck(u.Vectors[u.Next])
		u.Next++
	}
	u.followVectors()
	u.followTrace()
	u.Gui.Update(u.UpdateViews)
	return nil
}

/* RunVectors applies the rest of the program, stopping with the cursor
 * on the next breakpointed vector */
func (u *TUI) RunVectors(g *gocui.Gui, v *gocui.View) error {
	for u.Next < len(u.Vectors) {
		u.B.ApplyAndCheck(u.Vectors[u.Next])
		u.Next++
		if u.Next < len(u.Vectors) && u.BP[u.Next] {
			break
		}
	}
	u.followVectors()
	u.followTrace()
	u.Gui.Update(u.UpdateViews)
	return nil
}

func (u *TUI) ResetBench(g *gocui.Gui, v *gocui.View) error {
	u.B.ResetDUT()
	u.B.Trace = u.B.Trace[:0]
	u.Next = 0
	u.VecPos = 0
	u.VecMin = 0
	u.TrMin = 0
	u.Gui.Update(u.UpdateViews)

	return nil
}

/* keep the '>' cursor inside the vectors view */
func (u *TUI) followVectors() {
	v, err := u.Gui.View("vectors")
	if err != nil {
		return
	}
	_, y := v.Size()
	if u.Next >= u.VecMin+y {
		u.VecMin = u.Next - y + 1
	}
	if u.Next < u.VecMin {
		u.VecMin = u.Next
	}
}

/* keep the newest trace line inside the trace view */
func (u *TUI) followTrace() {
	v, err := u.Gui.View("trace")
	if err != nil {
		return
	}
	_, y := v.Size()
	if len(u.B.Trace) > u.TrMin+y {
		u.TrMin = len(u.B.Trace) - y
	}
}

func (u *TUI) CycleView(g *gocui.Gui, v *gocui.View) error {
	DefocusView(g, u.VCycle[u.CView])
	u.CView = (u.CView + 1) % len(u.VCycle)
	FocusView(g, u.VCycle[u.CView])

	return nil
}

func (u *TUI) ReverseCycleView(g *gocui.Gui, v *gocui.View) error {
	DefocusView(g, u.VCycle[u.CView])
	u.CView--
	if u.CView < 0 {
		u.CView = len(u.VCycle) - 1
	}
	FocusView(g, u.VCycle[u.CView])

	return nil
}

func (u *TUI) VecScrollDown(g *gocui.Gui, v *gocui.View) error {
	_, y := v.Size()
	u.VecPos++
	if u.VecPos >= len(u.Vectors) {
		u.VecPos = len(u.Vectors) - 1
	}
	if u.VecPos < 0 {
		u.VecPos = 0
	}
	if u.VecPos >= u.VecMin+y {
		u.VecMin++
	}
	v.SetCursor(0, u.VecPos-u.VecMin)
	u.Gui.Update(u.UpdateVectorsView)
	return nil
}

func (u *TUI) VecScrollUp(g *gocui.Gui, v *gocui.View) error {
	u.VecPos--
	if u.VecPos < 0 {
		u.VecPos = 0
	}
	if u.VecPos < u.VecMin {
		u.VecMin = u.VecPos
	}
	v.SetCursor(0, u.VecPos-u.VecMin)
	u.Gui.Update(u.UpdateVectorsView)
	return nil
}

func (u *TUI) VecToggleBreakPoint(g *gocui.Gui, v *gocui.View) error {
	_, vi := v.Cursor()
	vi += u.VecMin
	if vi >= 0 && vi < len(u.BP) {
		u.BP[vi] = !u.BP[vi]
	}
	u.Gui.Update(u.UpdateVectorsView)
	return nil
}

func (u *TUI) TraceScrollDown(g *gocui.Gui, v *gocui.View) error {
	_, y := v.Size()
	if u.TrMin+y < len(u.B.Trace) {
		u.TrMin++
	}
	u.Gui.Update(u.UpdateTraceView)
	return nil
}

func (u *TUI) TraceScrollUp(g *gocui.Gui, v *gocui.View) error {
	u.TrMin--
	if u.TrMin < 0 {
		u.TrMin = 0
	}
	u.Gui.Update(u.UpdateTraceView)
	return nil
}

func (u *TUI) TraceModeToggle(g *gocui.Gui, v *gocui.View) error {
	u.TrHex = !u.TrHex
	u.Gui.Update(u.UpdateTraceView)
	return nil
}

/* Util functions */
func FocusView(g *gocui.Gui, v *gocui.View) {
	v.SelBgColor = gocui.ColorDefault
	v.SelFgColor = gocui.ColorGreen
	g.SetCurrentView(v.Name())
}

func DefocusView(g *gocui.Gui, v *gocui.View) {
	v.SelBgColor = gocui.ColorDefault
	v.SelFgColor = gocui.ColorRed
	g.SetCurrentView("")
}
