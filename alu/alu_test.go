package alu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MatthPapa/ttalu/alu"
)

var _ = Describe("Decode", func() {
	It("should extract the low three bits of A", func() {
		Expect(alu.Decode(0x28)).To(Equal(alu.OpADD))
		Expect(alu.Decode(0x29)).To(Equal(alu.OpOR))
		Expect(alu.Decode(0x52)).To(Equal(alu.OpAND))
		Expect(alu.Decode(0x5B)).To(Equal(alu.OpNOR))
		Expect(alu.Decode(0x14)).To(Equal(alu.OpSHL))
		Expect(alu.Decode(0x8D)).To(Equal(alu.OpSHR))
		Expect(alu.Decode(0x2E)).To(Equal(alu.OpSUB))
		Expect(alu.Decode(0xFF)).To(Equal(alu.OpRSV))
	})

	It("should ignore the data bits of A", func() {
		for hi := 0; hi < 32; hi++ {
			a := uint8(hi<<3) | 0x06
			Expect(alu.Decode(a)).To(Equal(alu.OpSUB))
		}
	})

	It("should name every opcode", func() {
		names := []string{"ADD", "OR", "AND", "NOR", "SHL", "SHR", "SUB", "RSV"}
		for op := alu.OpADD; op <= alu.OpRSV; op++ {
			Expect(op.String()).To(Equal(names[op]))
		}
	})
})

var _ = Describe("Compute", func() {
	Describe("ADD", func() {
		It("should add without carry", func() {
			y, f := alu.Compute(alu.OpADD, 0x28, 0x05)
			Expect(y).To(Equal(uint8(0x2D)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should report carry out of bit 7", func() {
			y, f := alu.Compute(alu.OpADD, 0xF8, 0x20)
			Expect(y).To(Equal(uint8(0x18)))
			Expect(f).To(Equal(uint8(1)))
		})

		It("should match wide-integer addition for all operands", func() {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					y, f := alu.Compute(alu.OpADD, uint8(a), uint8(b))
					sum := a + b
					Expect(int(y)).To(Equal(sum & 0xFF))
					Expect(int(f)).To(Equal(sum >> 8))
				}
			}
		})
	})

	Describe("SUB", func() {
		It("should subtract without borrow", func() {
			y, f := alu.Compute(alu.OpSUB, 0x2E, 0x04)
			Expect(y).To(Equal(uint8(0x2A)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should wrap and raise the borrow when B exceeds A", func() {
			y, f := alu.Compute(alu.OpSUB, 0x06, 0x20)
			Expect(y).To(Equal(uint8(0xE6)))
			Expect(f).To(Equal(uint8(1)))
		})

		It("should not raise the borrow when operands are equal", func() {
			y, f := alu.Compute(alu.OpSUB, 0x77, 0x77)
			Expect(y).To(Equal(uint8(0)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should match wide-integer subtraction for all operands", func() {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					y, f := alu.Compute(alu.OpSUB, uint8(a), uint8(b))
					diff := (a - b) & 0x1FF
					Expect(int(y)).To(Equal(diff & 0xFF))
					Expect(int(f)).To(Equal(diff >> 8))
				}
			}
		})
	})

	Describe("bitwise operations", func() {
		It("should OR with a zero flag", func() {
			y, f := alu.Compute(alu.OpOR, 0x29, 0x0F)
			Expect(y).To(Equal(uint8(0x2F)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should AND with a zero flag", func() {
			y, f := alu.Compute(alu.OpAND, 0x52, 0x3C)
			Expect(y).To(Equal(uint8(0x10)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should NOR within eight bits", func() {
			y, f := alu.Compute(alu.OpNOR, 0x5B, 0x0F)
			Expect(y).To(Equal(uint8(0xA0)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should treat OR and AND with itself as identity", func() {
			for a := 0; a < 256; a++ {
				y, _ := alu.Compute(alu.OpOR, uint8(a), uint8(a))
				Expect(y).To(Equal(uint8(a)))
				y, _ = alu.Compute(alu.OpAND, uint8(a), uint8(a))
				Expect(y).To(Equal(uint8(a)))
			}
		})

		It("should invert A through NOR with zero or itself", func() {
			for a := 0; a < 256; a++ {
				y, _ := alu.Compute(alu.OpNOR, uint8(a), 0)
				Expect(y).To(Equal(^uint8(a)))
				y, _ = alu.Compute(alu.OpNOR, uint8(a), uint8(a))
				Expect(y).To(Equal(^uint8(a)))
			}
		})
	})

	Describe("shifts", func() {
		It("should shift left dropping high bits", func() {
			y, f := alu.Compute(alu.OpSHL, 0x14, 0x02)
			Expect(y).To(Equal(uint8(0x50)))
			Expect(f).To(Equal(uint8(0)))

			y, _ = alu.Compute(alu.OpSHL, 0xC1, 0x01)
			Expect(y).To(Equal(uint8(0x82)))
		})

		It("should shift right with zero fill", func() {
			y, f := alu.Compute(alu.OpSHR, 0x8D, 0x03)
			Expect(y).To(Equal(uint8(0x11)))
			Expect(f).To(Equal(uint8(0)))
		})

		It("should take the shift amount from the low three bits of B only", func() {
			want, _ := alu.Compute(alu.OpSHR, 0x8D, 0x03)
			got, _ := alu.Compute(alu.OpSHR, 0x8D, 0xFB)
			Expect(got).To(Equal(want))

			want, _ = alu.Compute(alu.OpSHL, 0x14, 0x02)
			got, _ = alu.Compute(alu.OpSHL, 0x14, 0xE2)
			Expect(got).To(Equal(want))
		})

		It("should shift by zero as identity", func() {
			for a := 0; a < 256; a++ {
				y, _ := alu.Compute(alu.OpSHL, uint8(a), 0)
				Expect(y).To(Equal(uint8(a)))
				y, _ = alu.Compute(alu.OpSHR, uint8(a), 0)
				Expect(y).To(Equal(uint8(a)))
			}
		})

		It("should shift by the full amount of 7 without losing the last bit", func() {
			y, _ := alu.Compute(alu.OpSHR, 0xFF, 0x07)
			Expect(y).To(Equal(uint8(0x01)))
			y, _ = alu.Compute(alu.OpSHL, 0xFF, 0x07)
			Expect(y).To(Equal(uint8(0x80)))
		})

		It("should clear the result once everything is shifted out", func() {
			y, _ := alu.Compute(alu.OpSHL, 0x80, 0x01)
			Expect(y).To(Equal(uint8(0)))
			y, _ = alu.Compute(alu.OpSHR, 0x01, 0x01)
			Expect(y).To(Equal(uint8(0)))
		})
	})

	Describe("reserved opcode", func() {
		It("should read back as zero for any operands", func() {
			for _, pair := range [][2]uint8{{0, 0}, {0xFF, 0xFF}, {0x17, 0xA5}} {
				y, f := alu.Compute(alu.OpRSV, pair[0], pair[1])
				Expect(y).To(Equal(uint8(0)))
				Expect(f).To(Equal(uint8(0)))
			}
		})
	})

	It("should be a pure function of opcode and operands", func() {
		for op := alu.OpADD; op <= alu.OpRSV; op++ {
			y1, f1 := alu.Compute(op, 0x9A, 0x33)
			y2, f2 := alu.Compute(op, 0x9A, 0x33)
			Expect(y1).To(Equal(y2))
			Expect(f1).To(Equal(f2))
		}
	})

	It("should keep the flag a single bit everywhere", func() {
		for op := alu.OpADD; op <= alu.OpRSV; op++ {
			for a := 0; a < 256; a += 17 {
				for b := 0; b < 256; b += 13 {
					_, f := alu.Compute(op, uint8(a), uint8(b))
					Expect(f).To(BeNumerically("<=", 1))
				}
			}
		}
	})
})
