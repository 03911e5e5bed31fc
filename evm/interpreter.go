package evm

import (
	"errors"

	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/common/crypto"
	"github.com/entropyio/minievm/config"
	"github.com/holiman/uint256"
)

// ScopeContext contains the things that are per-call, such as stack and memory,
// but not transients like pc.
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Storage  *Storage
	Contract *Contract
	Logs     []*Log
}

// EVMInterpreter represents an EVM interpreter
type EVMInterpreter struct {
	evm   *EVM
	table *JumpTable

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes

	returnData []byte // Last CALL's return data for subsequent reuse
}

// NewEVMInterpreter returns a new instance of the Interpreter.
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	return &EVMInterpreter{evm: evm, table: &instructionSet}
}

// Run loops and evaluates the contract's code with the given input data and
// returns the outcome of the frame.
//
// The frame halts successfully on STOP, RETURN or when the program counter
// leaves the code. Every other halt is a failure: REVERT keeps its return
// data, the rest return none. Logs only survive a successful halt.
func (in *EVMInterpreter) Run(contract *Contract, input []byte) (result *ExecutionResult) {
	// Increment the call depth which is restricted to config.CallDepthLimit
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	// Reset the previous call's return data. It's unimportant to preserve the old buffer
	// as every returning call will return new data anyway.
	in.returnData = nil

	// Don't bother with the execution if there's no code.
	if len(contract.Code) == 0 {
		return &ExecutionResult{Success: true}
	}

	var (
		op          OpCode        // current opcode
		mem         = NewMemory() // bound memory
		stack       = newstack()  // local stack
		callContext = &ScopeContext{
			Memory:   mem,
			Stack:    stack,
			Storage:  NewStorage(in.storageBacking(contract)),
			Contract: contract,
		}
		// For optimisation reason we're using uint64 as the program counter.
		// It's theoretically possible to go above 2^64. The YP defines the PC
		// to be uint256. Practically much less so feasible.
		pc  = uint64(0) // program counter
		res []byte      // result of the opcode execution function
		err error
	)
	defer func() {
		returnStack(stack)
		mem.Free()
	}()
	contract.Input = input

	log.Debugf("enter depth=%d address=%s caller=%s code=%d bytes input=%d bytes",
		in.evm.depth, contract.Address().Hex(), contract.Caller().Hex(), len(contract.Code), len(input))

	// The Interpreter main run loop (contextual). This loop runs until either an
	// explicit STOP, RETURN, REVERT or INVALID is executed or an error occurred
	// during the execution of one of the operations.
	for {
		// Get the operation from the jump table and validate the stack to ensure there are
		// enough stack items available to perform the operation.
		op = contract.GetOp(pc)
		operation := in.table[op]
		if sLen := stack.len(); sLen < operation.minStack {
			err = &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
			break
		} else if sLen > operation.maxStack {
			err = &ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
			break
		}
		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(stack)
			if overflow {
				err = ErrMemoryLimit
				break
			}
			// memory is expanded in words of 32 bytes.
			if memSize > 0 {
				words := toWordSize(memSize)
				if words > config.MaxMemorySize/32 {
					err = ErrMemoryLimit
					break
				}
				mem.Resize(words * 32)
			}
		}
		// execute the operation
		res, err = operation.execute(&pc, in, callContext)
		if err != nil {
			break
		}
		pc++
	}

	result = &ExecutionResult{Stack: stack.TopFirst()}
	switch {
	case err == errStopToken:
		result.Success = true
		result.ReturnData = res
		result.Logs = callContext.Logs
		result.Storage = callContext.Storage.Dirty()
	case errors.Is(err, ErrExecutionReverted):
		result.ReturnData = res
		result.Err = err
	default:
		result.Err = err
	}
	if result.Success {
		log.Debugf("exit depth=%d address=%s ok return=%d bytes logs=%d",
			in.evm.depth, contract.Address().Hex(), len(result.ReturnData), len(result.Logs))
	} else {
		log.Debugf("exit depth=%d address=%s pc=%d op=%s failed: %v",
			in.evm.depth, contract.Address().Hex(), pc, op, err)
	}
	return result
}

func (in *EVMInterpreter) storageBacking(contract *Contract) StorageReader {
	if !in.evm.Config.StorageFromState {
		return nil
	}
	statedb, addr := in.evm.StateDB, contract.Address()
	return func(key common.Hash) common.Hash {
		return statedb.GetState(addr, key)
	}
}

var maxWord = new(uint256.Int).SetAllOne()
