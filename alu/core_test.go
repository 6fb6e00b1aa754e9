package alu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MatthPapa/ttalu/alu"
)

var _ = Describe("Core", func() {
	var c *alu.Core

	BeforeEach(func() {
		c = &alu.Core{}
	})

	It("should start with zeroed outputs", func() {
		Expect(c.Out()).To(Equal(alu.Output{}))
		Expect(c.Cycles()).To(Equal(uint64(0)))
	})

	It("should not expose a result on the sampling edge", func() {
		out := c.Tick(0xF8, 0x20)
		Expect(out).To(Equal(alu.Output{}))
	})

	It("should register the result exactly one edge after sampling", func() {
		c.Tick(0xF8, 0x20)
		out := c.Tick(0xF8, 0x20)
		Expect(out).To(Equal(alu.Output{Result: 0x18, Flag: 1}))
	})

	It("should hold the registered output between edges", func() {
		c.Tick(0x2E, 0x04)
		c.Tick(0, 0)
		Expect(c.Out()).To(Equal(alu.Output{Result: 0x2A, Flag: 0}))
		Expect(c.Out()).To(Equal(alu.Output{Result: 0x2A, Flag: 0}))
	})

	It("should pipeline back-to-back operands", func() {
		c.Tick(0x28, 0x05)
		out := c.Tick(0x2E, 0x04) // SUB sampled, ADD registered
		Expect(out).To(Equal(alu.Output{Result: 0x2D, Flag: 0}))
		out = c.Tick(0x8D, 0x03) // SHR sampled, SUB registered
		Expect(out).To(Equal(alu.Output{Result: 0x2A, Flag: 0}))
		out = c.Tick(0, 0) // SHR registered
		Expect(out).To(Equal(alu.Output{Result: 0x11, Flag: 0}))
	})

	It("should decode the opcode from the sampled A", func() {
		c.Tick(0x29, 0x0F) // low bits of A select OR
		out := c.Tick(0, 0)
		Expect(out.Result).To(Equal(uint8(0x2F)))
	})

	It("should clear registers and counters on reset", func() {
		c.Tick(0xF8, 0x20)
		c.Tick(0, 0)
		c.Reset()
		Expect(c.Out()).To(Equal(alu.Output{}))
		Expect(c.Cycles()).To(Equal(uint64(0)))

		// the pre-reset sample must not leak into the next edge
		out := c.Tick(0, 0)
		Expect(out).To(Equal(alu.Output{}))
	})

	It("should count rising edges", func() {
		for i := 0; i < 5; i++ {
			c.Tick(0, 0)
		}
		Expect(c.Cycles()).To(Equal(uint64(5)))
	})
})
