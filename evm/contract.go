package evm

import (
	"github.com/entropyio/minievm/common"
	"github.com/holiman/uint256"
)

// Contract represents a call frame's immutable context: whose code runs, on
// whose behalf, with which value and calldata.
type Contract struct {
	// CallerAddress is the result of the caller which initialised this
	// contract.
	CallerAddress common.Address
	address       common.Address

	analysis bitvec // Locally cached result of JUMPDEST analysis

	Code  []byte
	Input []byte

	value *uint256.Int
}

// NewContract returns a new contract environment for the execution of EVM.
func NewContract(caller, address common.Address, value *uint256.Int) *Contract {
	if value == nil {
		value = new(uint256.Int)
	}
	return &Contract{CallerAddress: caller, address: address, value: value}
}

func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow {
		return false
	}
	if c.analysis == nil {
		c.analysis = codeBitmap(c.Code)
	}
	return validJumpdest(c.Code, c.analysis, udest)
}

// GetOp returns the n'th element in the contract's byte array. Reading past
// the end yields STOP.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}

	return STOP
}

// Caller returns the caller of the contract.
func (c *Contract) Caller() common.Address {
	return c.CallerAddress
}

// Address returns the contracts address
func (c *Contract) Address() common.Address {
	return c.address
}

// Value returns the contract's value (sent to it from it's caller)
func (c *Contract) Value() *uint256.Int {
	return c.value
}

// SetCallCode sets the code of the contract.
func (c *Contract) SetCallCode(code []byte) {
	c.Code = code
	c.analysis = nil
}
