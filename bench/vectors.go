package bench

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/MatthPapa/ttalu/alu"
)

// Vector is one bench stimulus. Op duplicates the low three bits of A;
// ApplyAndCheck rejects vectors where the two disagree, mirroring the
// opcode-in-A bus contract.
type Vector struct {
	Desc     string
	Op       alu.Opcode
	A, B     uint8
	WantY    uint8
	WantFlag uint8
	Explicit bool
}

/* NewVector builds a model-checked vector from raw operands */
func NewVector(desc string, a, b uint8) Vector {
	return Vector{Desc: desc, Op: alu.Decode(a), A: a, B: b}
}

/* Want returns the expected outputs: the vector's own expectation when
 * it carries one, the reference model otherwise */
func (v Vector) Want() (y, flag uint8) {
	if v.Explicit {
		return v.WantY, v.WantFlag & 0x01
	}
	return alu.Compute(v.Op, v.A, v.B)
}

func (v Vector) String() string {
	return fmt.Sprintf("%-3s A=0x%02X B=0x%02X", v.Op, v.A, v.B)
}

/* label is the mismatch-message rendering of the vector */
func (v Vector) label() string {
	return fmt.Sprintf("%s (opcode=%03b, A=0x%02X, B=0x%02X)", v.Desc, uint8(v.Op), v.A, v.B)
}

/* BasicOps is the canned sanity program: every operation at least once,
 * with carry and borrow cases, all with precomputed expectations. */
func BasicOps() []Vector {
	return []Vector{
		{Desc: "ADD 0x28 + 0x05", Op: alu.OpADD, A: 0x28, B: 0x05, WantY: 0x2D, WantFlag: 0, Explicit: true},
		{Desc: "ADD carry case", Op: alu.OpADD, A: 0xF8, B: 0x20, WantY: 0x18, WantFlag: 1, Explicit: true},
		{Desc: "SUB 0x2E - 0x04", Op: alu.OpSUB, A: 0x2E, B: 0x04, WantY: 0x2A, WantFlag: 0, Explicit: true},
		{Desc: "SUB underflow", Op: alu.OpSUB, A: 0x06, B: 0x20, WantY: 0xE6, WantFlag: 1, Explicit: true},
		{Desc: "OR", Op: alu.OpOR, A: 0x29, B: 0x0F, WantY: 0x2F, WantFlag: 0, Explicit: true},
		{Desc: "AND", Op: alu.OpAND, A: 0x52, B: 0x3C, WantY: 0x10, WantFlag: 0, Explicit: true},
		{Desc: "NOR", Op: alu.OpNOR, A: 0x5B, B: 0x0F, WantY: 0xA0, WantFlag: 0, Explicit: true},
		{Desc: "SHIFT LEFT by 2", Op: alu.OpSHL, A: 0x14, B: 0x02, WantY: 0x50, WantFlag: 0, Explicit: true},
		{Desc: "SHIFT RIGHT by 3", Op: alu.OpSHR, A: 0x8D, B: 0x03, WantY: 0x11, WantFlag: 0, Explicit: true},
	}
}

/* Sweep enumerates every operand pair against the reference model. The
 * opcode rides in A's low bits, so the sweep visits every operation. */
func Sweep() []Vector {
	vs := make([]Vector, 0, 65536)
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			vs = append(vs, NewVector("sweep", uint8(a), uint8(b)))
		}
	}
	return vs
}

/* LoadVectorFile reads a vector program: one vector per line, binary
 * fields "A B" (checked against the model) or "A B Y F" (explicit
 * expectation), with "#" lines describing the vector that follows. */
func LoadVectorFile(fp string) ([]Vector, error) {
	file, err := os.Open(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "vector file %q", fp)
	}
	defer file.Close()
	vs, err := parseVectors(file)
	if err != nil {
		return nil, errors.Wrapf(err, "vector file %q", fp)
	}
	log.Printf("Loaded %d vectors from %s", len(vs), fp)
	return vs, nil
}

func parseVectors(r io.Reader) ([]Vector, error) {
	var vs []Vector
	desc := ""
	s := bufio.NewScanner(r)
	for ln := 1; s.Scan(); ln++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if line[0] == '#' {
			desc = strings.TrimSpace(line[1:])
			continue
		}

		fields := strings.Fields(line)
		vals := make([]uint16, 0, 4)
		for _, f := range fields {
			if strings.Trim(f, "01") != "" {
				return nil, errors.Errorf("line %d: field %q is not binary", ln, f)
			}
			var tmp uint16
			if _, err := fmt.Sscanf(f, "%b", &tmp); err != nil {
				return nil, errors.Wrapf(err, "line %d: field %q", ln, f)
			}
			if tmp > 0xFF {
				return nil, errors.Errorf("line %d: field %q does not fit in 8 bits", ln, f)
			}
			vals = append(vals, tmp)
		}

		switch len(vals) {
		case 2:
			vs = append(vs, NewVector(desc, uint8(vals[0]), uint8(vals[1])))
		case 4:
			if vals[3] > 1 {
				return nil, errors.Errorf("line %d: flag field must be 0 or 1", ln)
			}
			a := uint8(vals[0])
			vs = append(vs, Vector{
				Desc:     desc,
				Op:       alu.Decode(a),
				A:        a,
				B:        uint8(vals[1]),
				WantY:    uint8(vals[2]),
				WantFlag: uint8(vals[3]),
				Explicit: true,
			})
		default:
			return nil, errors.Errorf("line %d: want 2 or 4 fields, got %d", ln, len(vals))
		}
		desc = ""
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	return vs, nil
}
