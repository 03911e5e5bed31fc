package evm

type (
	executionFunc func(pc *uint64, interpreter *EVMInterpreter, callContext *ScopeContext) ([]byte, error)
	// memorySizeFunc returns the required size, and whether the operation overflowed a uint64
	memorySizeFunc func(*Stack) (size uint64, overflow bool)
)

type operation struct {
	// execute is the operation function
	execute executionFunc

	// minStack tells how many stack items are required
	minStack int
	// maxStack specifies the max length the stack can have for this operation
	// to not overflow the stack.
	maxStack int

	// memorySize returns the memory size required for the operation
	memorySize memorySizeFunc

	undefined bool
}

// JumpTable maps every opcode byte to its operation.
type JumpTable [256]*operation

var instructionSet = newInstructionSet()

// LookupInstructionSet returns a copy of the instruction set used by the
// interpreter.
func LookupInstructionSet() JumpTable {
	return instructionSet
}

// Stack returns the minimum and maximum stack requirements.
func (op *operation) Stack() (int, int) {
	return op.minStack, op.maxStack
}

// Defined reports whether the opcode has a handler other than opUndefined.
func (op *operation) Defined() bool {
	return !op.undefined
}

func newInstructionSet() JumpTable {
	tbl := JumpTable{
		STOP: {
			execute:  opStop,
			minStack: minStack(0, 0),
			maxStack: maxStack(0, 0),
		},
		ADD: {
			execute:  opAdd,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		MUL: {
			execute:  opMul,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SUB: {
			execute:  opSub,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		DIV: {
			execute:  opDiv,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SDIV: {
			execute:  opSdiv,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		MOD: {
			execute:  opMod,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SMOD: {
			execute:  opSmod,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		ADDMOD: {
			execute:  opAddmod,
			minStack: minStack(3, 1),
			maxStack: maxStack(3, 1),
		},
		MULMOD: {
			execute:  opMulmod,
			minStack: minStack(3, 1),
			maxStack: maxStack(3, 1),
		},
		EXP: {
			execute:  opExp,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SIGNEXTEND: {
			execute:  opSignExtend,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		LT: {
			execute:  opLt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		GT: {
			execute:  opGt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SLT: {
			execute:  opSlt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SGT: {
			execute:  opSgt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		EQ: {
			execute:  opEq,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		ISZERO: {
			execute:  opIszero,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		AND: {
			execute:  opAnd,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		XOR: {
			execute:  opXor,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		OR: {
			execute:  opOr,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		NOT: {
			execute:  opNot,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		BYTE: {
			execute:  opByte,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SHL: {
			execute:  opSHL,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SHR: {
			execute:  opSHR,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SAR: {
			execute:  opSAR,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		KECCAK256: {
			execute:    opKeccak256,
			minStack:   minStack(2, 1),
			maxStack:   maxStack(2, 1),
			memorySize: memoryKeccak256,
		},
		ADDRESS: {
			execute:  opAddress,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		BALANCE: {
			execute:  opBalance,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		ORIGIN: {
			execute:  opOrigin,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLER: {
			execute:  opCaller,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLVALUE: {
			execute:  opCallValue,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLDATALOAD: {
			execute:  opCallDataLoad,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		CALLDATASIZE: {
			execute:  opCallDataSize,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLDATACOPY: {
			execute:    opCallDataCopy,
			minStack:   minStack(3, 0),
			maxStack:   maxStack(3, 0),
			memorySize: memoryCallDataCopy,
		},
		CODESIZE: {
			execute:  opCodeSize,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CODECOPY: {
			execute:    opCodeCopy,
			minStack:   minStack(3, 0),
			maxStack:   maxStack(3, 0),
			memorySize: memoryCodeCopy,
		},
		GASPRICE: {
			execute:  opGasprice,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		EXTCODESIZE: {
			execute:  opExtCodeSize,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		EXTCODECOPY: {
			execute:    opExtCodeCopy,
			minStack:   minStack(4, 0),
			maxStack:   maxStack(4, 0),
			memorySize: memoryExtCodeCopy,
		},
		RETURNDATASIZE: {
			execute:  opReturnDataSize,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		RETURNDATACOPY: {
			execute:    opReturnDataCopy,
			minStack:   minStack(3, 0),
			maxStack:   maxStack(3, 0),
			memorySize: memoryReturnDataCopy,
		},
		EXTCODEHASH: {
			execute:  opExtCodeHash,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		COINBASE: {
			execute:  opCoinbase,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		TIMESTAMP: {
			execute:  opTimestamp,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		NUMBER: {
			execute:  opNumber,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		DIFFICULTY: {
			execute:  opDifficulty,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		GASLIMIT: {
			execute:  opGasLimit,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CHAINID: {
			execute:  opChainID,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		SELFBALANCE: {
			execute:  opSelfBalance,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		BASEFEE: {
			execute:  opBaseFee,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		POP: {
			execute:  opPop,
			minStack: minStack(1, 0),
			maxStack: maxStack(1, 0),
		},
		MLOAD: {
			execute:    opMload,
			minStack:   minStack(1, 1),
			maxStack:   maxStack(1, 1),
			memorySize: memoryMLoad,
		},
		MSTORE: {
			execute:    opMstore,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryMStore,
		},
		MSTORE8: {
			execute:    opMstore8,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryMStore8,
		},
		SLOAD: {
			execute:  opSload,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		SSTORE: {
			execute:  opSstore,
			minStack: minStack(2, 0),
			maxStack: maxStack(2, 0),
		},
		JUMP: {
			execute:  opJump,
			minStack: minStack(1, 0),
			maxStack: maxStack(1, 0),
		},
		JUMPI: {
			execute:  opJumpi,
			minStack: minStack(2, 0),
			maxStack: maxStack(2, 0),
		},
		PC: {
			execute:  opPc,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		MSIZE: {
			execute:  opMsize,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		GAS: {
			execute:  opGas,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		JUMPDEST: {
			execute:  opJumpdest,
			minStack: minStack(0, 0),
			maxStack: maxStack(0, 0),
		},
		PUSH0: {
			execute:  opPush0,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		PUSH1: {
			execute:  opPush1,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		LOG0: {
			execute:    makeLog(0),
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryLog,
		},
		LOG1: {
			execute:    makeLog(1),
			minStack:   minStack(3, 0),
			maxStack:   maxStack(3, 0),
			memorySize: memoryLog,
		},
		LOG2: {
			execute:    makeLog(2),
			minStack:   minStack(4, 0),
			maxStack:   maxStack(4, 0),
			memorySize: memoryLog,
		},
		LOG3: {
			execute:    makeLog(3),
			minStack:   minStack(5, 0),
			maxStack:   maxStack(5, 0),
			memorySize: memoryLog,
		},
		LOG4: {
			execute:    makeLog(4),
			minStack:   minStack(6, 0),
			maxStack:   maxStack(6, 0),
			memorySize: memoryLog,
		},
		CALL: {
			execute:    opCall,
			minStack:   minStack(7, 1),
			maxStack:   maxStack(7, 1),
			memorySize: memoryCall,
		},
		RETURN: {
			execute:    opReturn,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryReturn,
		},
		REVERT: {
			execute:    opRevert,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryRevert,
		},
	}

	for i := 2; i <= 32; i++ {
		tbl[PUSH1+OpCode(i-1)] = &operation{
			execute:  makePush(uint64(i), i),
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		}
	}
	for i := 1; i <= 16; i++ {
		tbl[DUP1+i-1] = &operation{
			execute:  makeDup(i),
			minStack: minDupStack(i),
			maxStack: maxDupStack(i),
		}
		tbl[SWAP1+i-1] = &operation{
			execute:  makeSwap(i),
			minStack: minSwapStack(i),
			maxStack: maxSwapStack(i),
		}
	}

	// Fill all unassigned slots with opUndefined. INVALID lands here too.
	for i, entry := range tbl {
		if entry == nil {
			tbl[i] = &operation{execute: opUndefined, maxStack: maxStack(0, 0), undefined: true}
		}
	}
	return tbl
}
