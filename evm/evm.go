package evm

import (
	"errors"

	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/config"
	"github.com/entropyio/minievm/logger"
	"github.com/holiman/uint256"
)

var log = logger.NewLogger("[evm]")

// Context provides the EVM with auxiliary information. Once provided
// it shouldn't be modified.
type Context struct {
	// Message information
	Origin   common.Address // Provides information for ORIGIN
	GasPrice *uint256.Int   // Provides information for GASPRICE

	// Block information
	Coinbase    common.Address // Provides information for COINBASE
	GasLimit    *uint256.Int   // Provides information for GASLIMIT
	BlockNumber *uint256.Int   // Provides information for NUMBER
	Time        *uint256.Int   // Provides information for TIMESTAMP
	Difficulty  *uint256.Int   // Provides information for DIFFICULTY
	BaseFee     *uint256.Int   // Provides information for BASEFEE, chain default when nil
}

// EVMConfig are the configuration options for the interpreter.
type EVMConfig struct {
	// StorageFromState makes SLOAD of a key never written in the frame read
	// the executing account's storage from the StateDB instead of zero.
	StorageFromState bool

	// MaxCallDepth overrides config.CallDepthLimit when positive.
	MaxCallDepth int
}

// ExecutionResult is what a call frame leaves behind.
type ExecutionResult struct {
	Success    bool
	Stack      []uint256.Int               // final stack, most recently pushed first
	Logs       []*Log                      // logs of the frame and its successful sub calls
	Storage    map[common.Hash]common.Hash // slots the frame wrote, on success only
	ReturnData []byte                      // RETURN or REVERT data
	Err        error                       // why the frame halted unsuccessfully
}

// Failed returns the indicator whether the execution is successful or not
func (result *ExecutionResult) Failed() bool { return !result.Success }

// Unwrap returns the internal evm error which allows us for further
// analysis outside.
func (result *ExecutionResult) Unwrap() error {
	return result.Err
}

// Return is a helper function to help caller distinguish between revert reason
// and function return. Return returns the data after execution if no error occurs.
func (result *ExecutionResult) Return() []byte {
	if result.Err != nil {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// Revert returns the concrete revert reason if the execution is aborted by `REVERT`
// opcode. Note the reason can be nil if no data supplied with revert opcode.
func (result *ExecutionResult) Revert() []byte {
	if !errors.Is(result.Err, ErrExecutionReverted) {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// EVM is the Ethereum Virtual Machine base object and provides
// the necessary tools to run a contract on the given state with
// the provided context. Failures of a frame are reported in its
// ExecutionResult and never abort the caller.
//
// The EVM should never be reused and is not thread safe.
type EVM struct {
	// Context provides auxiliary blockchain related information
	Context Context
	// StateDB gives access to the underlying state
	StateDB StateDB
	// Depth is the current call stack
	depth int

	chainID *uint256.Int
	// virtual machine configuration options used to initialise the
	// evm.
	Config EVMConfig
	// global (to this context) ethereum virtual machine
	// used throughout the execution of the tx.
	interpreter *EVMInterpreter
}

// NewEVM returns a new EVM. The returned EVM is not thread safe and should
// only ever be used *once*. Nil context values read as zero and a nil
// statedb as an empty world.
func NewEVM(ctx Context, statedb StateDB, chainConfig *config.ChainConfig, vmConfig EVMConfig) *EVM {
	chainConfig = chainConfig.Copy()
	if statedb == nil {
		statedb = emptyState{}
	}
	for _, v := range []**uint256.Int{&ctx.GasPrice, &ctx.GasLimit, &ctx.BlockNumber, &ctx.Time, &ctx.Difficulty} {
		if *v == nil {
			*v = new(uint256.Int)
		}
	}
	if ctx.BaseFee == nil {
		ctx.BaseFee, _ = uint256.FromBig(chainConfig.BaseFee)
	}
	chainID, _ := uint256.FromBig(chainConfig.ChainID)

	evm := &EVM{
		Context: ctx,
		StateDB: statedb,
		Config:  vmConfig,
		chainID: chainID,
	}
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

func (evm *EVM) maxCallDepth() int {
	if evm.Config.MaxCallDepth > 0 {
		return evm.Config.MaxCallDepth
	}
	return config.CallDepthLimit
}

// Call executes the code stored at addr with input as calldata. An address
// without code completes successfully with no return data.
func (evm *EVM) Call(caller common.Address, addr common.Address, input []byte, value *uint256.Int) *ExecutionResult {
	return evm.Execute(caller, addr, evm.StateDB.GetCode(addr), input, value)
}

// Execute runs code as if it were stored at addr. Every invocation gets a
// fresh stack, memory and storage.
func (evm *EVM) Execute(caller common.Address, addr common.Address, code, input []byte, value *uint256.Int) *ExecutionResult {
	// Fail if we're trying to execute above the call depth limit
	if evm.depth > evm.maxCallDepth() {
		log.Warningf("call to %s refused at depth %d", addr.Hex(), evm.depth)
		return &ExecutionResult{Err: ErrDepth}
	}
	contract := NewContract(caller, addr, value)
	contract.SetCallCode(code)
	return evm.interpreter.Run(contract, input)
}
