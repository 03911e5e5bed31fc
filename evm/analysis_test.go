package evm

import (
	"testing"

	"github.com/entropyio/minievm/common"
	"github.com/stretchr/testify/assert"
)

func TestJumpDestAnalysis(t *testing.T) {
	tests := []struct {
		code  []byte
		exp   byte
		which int
	}{
		{[]byte{byte(PUSH1), 0x01, 0x01, 0x01}, 0b0000_0010, 0},
		{[]byte{byte(PUSH1), byte(PUSH1), byte(PUSH1), byte(PUSH1)}, 0b0000_1010, 0},
		{[]byte{0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1)}, 0b0101_0100, 0},
		{[]byte{byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), 0x01, 0x01, 0x01}, bits(1, 2, 3, 4, 5, 6, 7), 0},
		{[]byte{byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), 0x01, 0x01, 0x01}, 0b0000_0001, 1},
		{[]byte{0x01, 0x01, 0x01, 0x01, 0x01, byte(PUSH2), byte(PUSH2), byte(PUSH2), 0x01, 0x01, 0x01}, 0b1100_0000, 0},
		{[]byte{0x01, 0x01, 0x01, 0x01, 0x01, byte(PUSH2), 0x01, 0x01, 0x01, 0x01, 0x01}, 0b0000_0000, 1},
		{[]byte{byte(PUSH32)}, 0b1111_1110, 0},
		{[]byte{byte(PUSH32)}, 0b1111_1111, 1},
		{[]byte{byte(PUSH32)}, 0b1111_1111, 3},
		{[]byte{byte(PUSH32)}, 0b0000_0001, 4},
	}
	for i, test := range tests {
		ret := codeBitmap(test.code)
		assert.Equal(t, test.exp, ret[test.which], "test %d: %x", i, test.code)
	}
}

func bits(positions ...uint) byte {
	var b byte
	for _, p := range positions {
		b |= 1 << p
	}
	return b
}

func TestIsValidJumpdest(t *testing.T) {
	// PUSH2 0x5b 0x5b JUMPDEST
	code := common.Hex2Bytes("615b5b5b")
	assert.False(t, IsValidJumpdest(code, 0), "PUSH2 is not a JUMPDEST")
	assert.False(t, IsValidJumpdest(code, 1), "push data")
	assert.False(t, IsValidJumpdest(code, 2), "push data")
	assert.True(t, IsValidJumpdest(code, 3))
	assert.False(t, IsValidJumpdest(code, 4), "out of range")
	assert.False(t, IsValidJumpdest(nil, 0))

	// a truncated PUSH32 swallows everything after it
	code = append([]byte{byte(PUSH32)}, common.Hex2Bytes("5b5b5b5b")...)
	for i := uint64(0); i < uint64(len(code)); i++ {
		assert.False(t, IsValidJumpdest(code, i))
	}

	// a JUMPDEST right after a complete PUSH1 is code
	assert.True(t, IsValidJumpdest(common.Hex2Bytes("605b5b"), 2))
}
