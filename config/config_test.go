package config

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainConfigCopy(t *testing.T) {
	var nilCfg *ChainConfig
	cpy := nilCfg.Copy()
	assert.Equal(t, int64(TestChainID), cpy.ChainID.Int64())
	assert.Equal(t, int64(InitialBaseFee), cpy.BaseFee.Int64())

	cfg := &ChainConfig{ChainID: big.NewInt(5)}
	cpy = cfg.Copy()
	assert.Equal(t, int64(5), cpy.ChainID.Int64())
	assert.Equal(t, int64(InitialBaseFee), cpy.BaseFee.Int64())

	cpy.ChainID.SetInt64(7)
	assert.Equal(t, int64(5), cfg.ChainID.Int64())
}

func TestChainConfigString(t *testing.T) {
	assert.Contains(t, MainnetChainConfig.String(), "mainNet")
	assert.Contains(t, (&ChainConfig{ChainID: big.NewInt(99), BaseFee: big.NewInt(1)}).String(), "unknown")
}
