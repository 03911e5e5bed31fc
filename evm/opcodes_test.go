package evm

import (
	"testing"

	"github.com/entropyio/minievm/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpCodeNames(t *testing.T) {
	assert.Equal(t, "KECCAK256", KECCAK256.String())
	assert.Equal(t, "PUSH32", PUSH32.String())
	assert.Equal(t, "opcode 0xc not defined", OpCode(0x0c).String())

	assert.Equal(t, KECCAK256, StringToOp("SHA3"))
	assert.Equal(t, DIFFICULTY, StringToOp("PREVRANDAO"))
	assert.Equal(t, OpCode(SWAP16), StringToOp("SWAP16"))

	assert.True(t, PUSH0.IsPush())
	assert.True(t, PUSH32.IsPush())
	assert.False(t, JUMPDEST.IsPush())
}

func TestJumpTableDefined(t *testing.T) {
	table := LookupInstructionSet()
	for op := 0; op < 256; op++ {
		named := opCodeToString[op] != "" && OpCode(op) != INVALID && OpCode(op) != BLOCKHASH
		assert.Equal(t, named, table[op].Defined(), "%v", OpCode(op))
	}
	lo, hi := table[SWAP1].Stack()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 1024, hi)
	lo, hi = table[PUSH1].Stack()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 1023, hi)
}

func TestAssemble(t *testing.T) {
	code, err := Assemble("PUSH1 0x05 push1 0x0a ADD\nPUSH2 0x1 SHA3 JUMPDEST")
	require.NoError(t, err)
	assert.Equal(t, common.Hex2Bytes("6005600a0161000120"+"5b"), code)

	for _, src := range []string{"PUSH1", "NOPE", "PUSH1 0x0102", "PUSH1 zz"} {
		_, err := Assemble(src)
		assert.Error(t, err, src)
	}
}
