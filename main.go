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
	"flag"
	"log"

	"github.com/MatthPapa/ttalu/bench"
	"github.com/MatthPapa/ttalu/tt"
)

func main() {
	vf := flag.String("v", "", "Vector program in a binary string file")
	basic := flag.Bool("basic", false, "Run the built-in sanity program (the default)")
	sweep := flag.Bool("sweep", false, "Check every operand pair against the model")
	period := flag.Uint64("period", bench.DefaultPeriodNS, "Clock period in nanoseconds")
	tuiMode := flag.Bool("tui", false, "Explore the design in a terminal UI")
	cliMode := flag.Bool("cli", false, "Drive the design from stdin")

	var vs []bench.Vector
	var err error

	flag.Parse()

	switch {
	case *vf != "":
		log.Println("Reading binary string vector file:", *vf)
		vs, err = bench.LoadVectorFile(*vf)
		if err != nil {
			log.Fatal(err.Error())
		}
	case *sweep:
		vs = bench.Sweep()
		log.Printf("Loaded %d sweep vectors", len(vs))
	case *basic:
		fallthrough
	default:
		vs = bench.BasicOps()
		log.Printf("Loaded %d built-in vectors", len(vs))
	}

	b := bench.New(tt.New(), *period)

	if *tuiMode {
		g, err := initGui(b, vs)
		if err != nil {
			log.Panicln(err)
		}
		err = g.Run()
		if err != nil {
			log.Panicln(err)
		}
		log.Printf("Completed %d cycles", b.Top.Cycles())
		return
	}

	if *cliMode {
		runCli(b, vs)
		log.Printf("Completed %d cycles", b.Top.Cycles())
		return
	}

	rep := b.Run(vs)
	log.Printf("Applied %d vectors: %d passed, %d failed", rep.Applied, rep.Passed, rep.Failed)
	log.Printf("Completed %d cycles in %d ns of simulation time", rep.Cycles, rep.SimNS)
	if rep.Failed > 0 {
		log.Fatalf("%d vectors failed", rep.Failed)
	}
}
