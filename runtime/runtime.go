package runtime

import (
	"math"
	"math/big"

	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/config"
	"github.com/entropyio/minievm/evm"
	"github.com/entropyio/minievm/logger"
)

var log = logger.NewLogger("[runtime]")

// Config is a basic type specifying certain configuration flags for running
// the EVM.
type Config struct {
	ChainConfig *config.ChainConfig
	Difficulty  *big.Int
	Origin      common.Address
	Caller      common.Address // sender of the outer call, Origin when zero
	Address     common.Address // account the code runs as
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        *big.Int
	GasLimit    uint64
	GasPrice    *big.Int
	Value       *big.Int
	EVMConfig   evm.EVMConfig
	BaseFee     *big.Int

	State evm.StateDB
}

// sets defaults on the config. Unlike a live chain the block time is never
// sampled from the clock: the same config always gives the same result.
func setDefaults(cfg *Config) {
	if cfg.ChainConfig == nil {
		cfg.ChainConfig = config.TestChainConfig.Copy()
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = new(big.Int)
	}
	if cfg.Time == nil {
		cfg.Time = new(big.Int)
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = new(big.Int)
	}
	if cfg.Value == nil {
		cfg.Value = new(big.Int)
	}
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(big.Int)
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = new(big.Int).Set(cfg.ChainConfig.Copy().BaseFee)
	}
	if cfg.Caller == (common.Address{}) {
		cfg.Caller = cfg.Origin
	}
}

// Execute executes the code using the input as call data during the execution.
// The code runs as cfg.Address; it does not have to be stored in cfg.State.
//
// Execute sets up an in-memory, temporary, environment for the execution of
// the given code. Nothing in cfg.State is modified.
func Execute(code, input []byte, cfg *Config) *evm.ExecutionResult {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	vmenv := NewEnv(cfg)
	log.Debugf("execute address:%s, code:%x, input:%x", cfg.Address.Hex(), code, input)

	// Call the code with the given configuration.
	return vmenv.Execute(
		cfg.Caller,
		cfg.Address,
		code,
		input,
		toWord(cfg.Value),
	)
}

// Call executes the code given by the contract's address. It will return the
// EVM's execution result.
//
// Call, unlike Execute, requires a config and also requires the State field to
// be set.
func Call(address common.Address, input []byte, cfg *Config) *evm.ExecutionResult {
	setDefaults(cfg)

	vmenv := NewEnv(cfg)
	log.Debugf("call address:%s, input:%x", address.Hex(), input)

	// Call the code with the given configuration.
	return vmenv.Call(
		cfg.Caller,
		address,
		input,
		toWord(cfg.Value),
	)
}
