package config

import (
	"fmt"
	"math/big"
)

const (
	MainnetChainID = 1
	TestChainID    = 1337
)

var (
	// MainnetChainConfig reports chain id 1 to CHAINID.
	MainnetChainConfig = &ChainConfig{
		ChainID: big.NewInt(MainnetChainID),
		BaseFee: big.NewInt(InitialBaseFee),
	}

	// TestChainConfig is the configuration used when none is supplied.
	TestChainConfig = &ChainConfig{
		ChainID: big.NewInt(TestChainID),
		BaseFee: big.NewInt(InitialBaseFee),
	}
)

// NetworkNames are user friendly names to use in the chain banner.
var NetworkNames = map[string]string{
	MainnetChainConfig.ChainID.String(): "mainNet",
	TestChainConfig.ChainID.String():    "testNet",
}

// ChainConfig holds the chain-wide values an execution can observe.
type ChainConfig struct {
	ChainID *big.Int `json:"chainId"` // reported by CHAINID
	BaseFee *big.Int `json:"baseFee"` // default for BASEFEE when the block carries none
}

// String implements the fmt.Stringer interface.
func (cc *ChainConfig) String() string {
	network := NetworkNames[cc.ChainID.String()]
	if network == "" {
		network = "unknown"
	}
	return fmt.Sprintf("Chain ID: %v (%s), base fee: %v", cc.ChainID, network, cc.BaseFee)
}

// Copy returns a deep copy of cc with nil fields replaced by the test defaults.
func (cc *ChainConfig) Copy() *ChainConfig {
	cpy := &ChainConfig{
		ChainID: new(big.Int).Set(TestChainConfig.ChainID),
		BaseFee: new(big.Int).Set(TestChainConfig.BaseFee),
	}
	if cc == nil {
		return cpy
	}
	if cc.ChainID != nil {
		cpy.ChainID.Set(cc.ChainID)
	}
	if cc.BaseFee != nil {
		cpy.BaseFee.Set(cc.BaseFee)
	}
	return cpy
}
