// Package alu models the TTSky 8-bit ALU: eight-bit operands, a
// three-bit opcode packed into the low bits of operand A, and a single
// carry/borrow flag.
package alu

// Opcode selects one of the eight ALU operations. It shares a bus with
// operand A: the low three bits of A carry the opcode, so consumers
// decode with Decode before computing.
type Opcode uint8

const (
	OpADD Opcode = iota // A + B, flag is the carry out
	OpOR                // A | B
	OpAND               // A & B
	OpNOR               // ^(A | B)
	OpSHL               // A << (B & 7)
	OpSHR               // A >> (B & 7), zero fill
	OpSUB               // A - B, flag is the borrow out
	OpRSV               // reserved, reads back as zero
)

var opNames = [8]string{"ADD", "OR", "AND", "NOR", "SHL", "SHR", "SUB", "RSV"}

func (o Opcode) String() string {
	return opNames[o&0x07]
}

/* Decode extracts the opcode from operand A's low three bits */
func Decode(a uint8) Opcode {
	return Opcode(a & 0x07)
}

/* Compute evaluates one operation over full 8-bit operands. flag is the
 * carry out for ADD, the borrow out for SUB and zero for everything
 * else. */
func Compute(op Opcode, a, b uint8) (result, flag uint8) {
	switch op {
	case OpADD:
		sum := uint16(a) + uint16(b)
		result = uint8(sum)
		flag = uint8(sum >> 8)
	case OpOR:
		result = a | b
	case OpAND:
		result = a & b
	case OpNOR:
		result = ^(a | b)
	case OpSHL:
		result = a << (b & 0x07)
	case OpSHR:
		result = a >> (b & 0x07)
	case OpSUB:
		// 9-bit difference: bit 8 is the borrow
		diff := (uint16(a) - uint16(b)) & 0x1FF
		result = uint8(diff)
		flag = uint8(diff >> 8)
	}
	// OpRSV keeps the zero values: result 0, flag 0
	return result, flag
}
