// internal/iolink/geometry.go
package iolink

import "math"

// UnpackBits expands a packed Modbus bit payload (LSB first) into count bools.
func UnpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if byteIdx >= len(data) {
			continue
		}
		out[i] = data[byteIdx]&(1<<bitIdx) != 0
	}
	return out
}

// UnpackRegisters decodes big-endian register bytes.
func UnpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}

// Float32s reads IEEE-754 values stored as register pairs, high word first.
// A trailing odd register is ignored.
func Float32s(regs []uint16) []float32 {
	n := len(regs) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := uint32(regs[2*i])<<16 | uint32(regs[2*i+1])
		out[i] = math.Float32frombits(bits)
	}
	return out
}

// Int32 reads a signed value stored as a register pair, high word first.
func Int32(hi, lo uint16) int32 {
	return int32(uint32(hi)<<16 | uint32(lo))
}
