package evm

import (
	"fmt"
	"strings"

	"github.com/entropyio/minievm/common"
)

// Assemble turns whitespace separated mnemonics into bytecode, e.g.
// "PUSH1 0x05 PUSH1 0x0a ADD". A PUSHn is followed by its operand in hex,
// left padded to n bytes.
func Assemble(src string) ([]byte, error) {
	var (
		code   []byte
		tokens = strings.Fields(src)
	)
	for i := 0; i < len(tokens); i++ {
		op, ok := stringToOp[strings.ToUpper(tokens[i])]
		if !ok {
			return nil, fmt.Errorf("unknown opcode %q", tokens[i])
		}
		code = append(code, byte(op))
		if op < PUSH1 || op > PUSH32 {
			continue
		}
		size := int(op - PUSH1 + 1)
		if i+1 == len(tokens) {
			return nil, fmt.Errorf("%v without operand", op)
		}
		i++
		operand, err := common.DecodeHex(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("%v operand %q: %w", op, tokens[i], err)
		}
		if len(operand) > size {
			return nil, fmt.Errorf("%v operand %q is longer than %d bytes", op, tokens[i], size)
		}
		code = append(code, common.LeftPadBytes(operand, size)...)
	}
	return code, nil
}
