package evm

import (
	"github.com/entropyio/minievm/common"
	"github.com/holiman/uint256"
)

// StateDB is the read-only view of the world state an execution consults.
// Lookups of unknown accounts return zero values, never an error.
type StateDB interface {
	Exist(common.Address) bool
	GetBalance(common.Address) *uint256.Int
	GetCode(common.Address) []byte
	GetCodeSize(common.Address) int
	GetCodeHash(common.Address) common.Hash
	GetState(common.Address, common.Hash) common.Hash
}

// emptyState stands in when no world state is supplied.
type emptyState struct{}

func (emptyState) Exist(common.Address) bool                        { return false }
func (emptyState) GetBalance(common.Address) *uint256.Int           { return new(uint256.Int) }
func (emptyState) GetCode(common.Address) []byte                    { return nil }
func (emptyState) GetCodeSize(common.Address) int                   { return 0 }
func (emptyState) GetCodeHash(common.Address) common.Hash           { return common.Hash{} }
func (emptyState) GetState(common.Address, common.Hash) common.Hash { return common.Hash{} }
