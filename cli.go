package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/MatthPapa/ttalu/alu"
	"github.com/MatthPapa/ttalu/bench"
)

/* A stdin driver for poking operations at the design without the full
 * terminal UI */

type CLI struct {
	B       *bench.Bench
	Vectors []bench.Vector
	Next    int
}

var stdinReader = bufio.NewReader(os.Stdin)

/* Reads a line from stdin and returns it with a newline on the end */
func ReadLine() string {
	line, _ := stdinReader.ReadString('\n')
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	return line
}

func ReadStdin(out chan<- string) {
	for {
		in := ReadLine()
		out <- in
	}
}

func runCli(b *bench.Bench, vs []bench.Vector) {
	c := &CLI{B: b, Vectors: vs}
	c.Run()
}

func (c *CLI) Run() {
	var input rune
	var a, bv int
	stdin := make(chan string)
	run := true
	c.B.ResetDUT()
	c.DisplayState()
	go ReadStdin(stdin)
	for run {
		fmt.Println("Type \"A B\" in hex to apply an operation, [s]tep, [c]ontinue, [r]eset, [t]able, [q]uit, <Enter> for pin state:")
		in := <-stdin
		if read, _ := fmt.Sscanf(in, "%x %x", &a, &bv); read == 2 {
			/* the low three bits of A select the operation */
			c.apply(bench.NewVector("cli", uint8(a), uint8(bv)))
			continue
		}
		fmt.Sscanf(in, "%c", &input)
		switch input {
		case 's':
			/* apply the next vector of the loaded program */
			if c.Next >= len(c.Vectors) {
				fmt.Println("Vector program finished")
				break
			}
			c.apply(c.Vectors[c.Next])
			c.Next++
		case 'c':
			/* run the rest of the loaded program */
			for c.Next < len(c.Vectors) {
				c.apply(c.Vectors[c.Next])
				c.Next++
			}
		case 'r':
			c.B.ResetDUT()
			c.Next = 0
			c.DisplayState()
		case 't':
			writeOpTable(os.Stdout, alu.Decode(c.B.Top.UIIn))
		case 'q':
			run = false
		case '\n':
			c.DisplayState()
		}
	}
}

func (c *CLI) apply(v bench.Vector) {
	before := len(c.B.Trace)
	err := c.B.ApplyAndCheck(v)
	if len(c.B.Trace) > before {
		fmt.Println(c.B.Trace[len(c.B.Trace)-1])
	}
	if err != nil {
		fmt.Println(err)
	}
}

func (c *CLI) DisplayState() {
	t := c.B.Top
	fmt.Printf("%6s : %08b 0x%02X %3d\n", "A", t.UIIn, t.UIIn, t.UIIn)
	fmt.Printf("%6s : %08b 0x%02X %3d\n", "B", t.UIOIn, t.UIOIn, t.UIOIn)
	fmt.Printf("%6s : %s\n", "op", alu.Decode(t.UIIn))
	fmt.Printf("%6s : %08b 0x%02X %3d\n", "Y", t.UOOut, t.UOOut, t.UOOut)
	fmt.Printf("%6s : %d\n", "flag", t.UIOOut&0x01)
	fmt.Printf("\n")
	fmt.Printf("%6s : %d ns\n", "time", c.B.NowNS())
	fmt.Printf("%6s : %d\n", "cycles", t.Cycles())
}
