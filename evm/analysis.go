package evm

// bitvec is a bit vector which maps bytes in a program.
// An unset bit means the byte is an opcode, a set bit means
// it's data (i.e. argument of PUSHxx).
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

// setRange marks n consecutive positions starting at pos as data.
func (bits bitvec) setRange(pos, n uint64) {
	for ; n > 0 && pos%8 != 0; n, pos = n-1, pos+1 {
		bits.set(pos)
	}
	for ; n >= 8; n, pos = n-8, pos+8 {
		bits[pos/8] = 0xff
	}
	for ; n > 0; n, pos = n-1, pos+1 {
		bits.set(pos)
	}
}

// codeSegment checks if the position is in a code segment.
func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8]>>(pos%8))&1 == 0
}

// codeBitmap collects data locations in code. A PUSH near the end of the
// code may claim operand bytes past it, so the vector carries 4 spare bytes.
func codeBitmap(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1+4)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		if op < PUSH1 || op > PUSH32 {
			continue
		}
		numbits := uint64(op - PUSH1 + 1)
		bits.setRange(pc, numbits)
		pc += numbits
	}
	return bits
}

// IsValidJumpdest reports whether target is a legal jump destination in
// code: it must be in range, hold a JUMPDEST byte and not lie inside the
// operand of a preceding PUSH.
func IsValidJumpdest(code []byte, target uint64) bool {
	return validJumpdest(code, codeBitmap(code), target)
}

func validJumpdest(code []byte, analysis bitvec, target uint64) bool {
	if target >= uint64(len(code)) {
		return false
	}
	if OpCode(code[target]) != JUMPDEST {
		return false
	}
	return analysis.codeSegment(target)
}
