package runtime

import (
	"math/big"

	"github.com/entropyio/minievm/evm"
	"github.com/holiman/uint256"
)

func NewEnv(cfg *Config) *evm.EVM {
	context := evm.Context{
		Origin:      cfg.Origin,
		Coinbase:    cfg.Coinbase,
		BlockNumber: toWord(cfg.BlockNumber),
		Time:        toWord(cfg.Time),
		Difficulty:  toWord(cfg.Difficulty),
		GasLimit:    new(uint256.Int).SetUint64(cfg.GasLimit),
		GasPrice:    toWord(cfg.GasPrice),
		BaseFee:     toWord(cfg.BaseFee),
	}

	return evm.NewEVM(context, cfg.State, cfg.ChainConfig, cfg.EVMConfig)
}

// toWord converts b to a word, keeping the low 256 bits of values that do not
// fit. Negative values are taken as their two's complement.
func toWord(b *big.Int) *uint256.Int {
	if b == nil {
		return nil
	}
	w, overflow := uint256.FromBig(b)
	if overflow {
		log.Warningf("value %v truncated to 256 bits", b)
	}
	return w
}
