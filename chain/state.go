package chain

import (
	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/common/crypto"
	"github.com/holiman/uint256"
)

// Account is the state of a single address.
type Account struct {
	Balance *uint256.Int
	Code    []byte
	Storage map[common.Hash]common.Hash
}

// State is an in-memory account map. It implements evm.StateDB; lookups of
// unknown addresses return zero values.
//
// State is filled before execution and only read afterwards. It is not
// safe for concurrent mutation.
type State struct {
	accounts map[common.Address]*Account
}

// NewState returns an empty world state.
func NewState() *State {
	return &State{accounts: make(map[common.Address]*Account)}
}

func (s *State) getOrNewAccount(addr common.Address) *Account {
	acct := s.accounts[addr]
	if acct == nil {
		acct = &Account{
			Balance: new(uint256.Int),
			Storage: make(map[common.Hash]common.Hash),
		}
		s.accounts[addr] = acct
	}
	return acct
}

// SetBalance creates the account if needed and sets its balance.
func (s *State) SetBalance(addr common.Address, amount *uint256.Int) {
	s.getOrNewAccount(addr).Balance = new(uint256.Int).Set(amount)
}

// SetCode creates the account if needed and sets its code.
func (s *State) SetCode(addr common.Address, code []byte) {
	s.getOrNewAccount(addr).Code = common.CopyBytes(code)
}

// SetState creates the account if needed and sets one storage slot.
func (s *State) SetState(addr common.Address, key, value common.Hash) {
	s.getOrNewAccount(addr).Storage[key] = value
}

// Exist reports whether the address has been given any state.
func (s *State) Exist(addr common.Address) bool {
	return s.accounts[addr] != nil
}

// Account returns the account at addr, nil if it does not exist.
func (s *State) Account(addr common.Address) *Account {
	return s.accounts[addr]
}

// Len returns the number of known accounts.
func (s *State) Len() int {
	return len(s.accounts)
}

// GetBalance returns a copy of the account balance, zero for a missing account.
func (s *State) GetBalance(addr common.Address) *uint256.Int {
	if acct := s.accounts[addr]; acct != nil {
		return new(uint256.Int).Set(acct.Balance)
	}
	return new(uint256.Int)
}

// GetCode returns the account code, nil for a missing account.
func (s *State) GetCode(addr common.Address) []byte {
	if acct := s.accounts[addr]; acct != nil {
		return acct.Code
	}
	return nil
}

// GetCodeSize returns the length of the account code.
func (s *State) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

// GetCodeHash returns the Keccak-256 hash of the account code, the empty
// code hash for an account without code and the zero hash for a missing
// account.
func (s *State) GetCodeHash(addr common.Address) common.Hash {
	acct := s.accounts[addr]
	if acct == nil {
		return common.Hash{}
	}
	if len(acct.Code) == 0 {
		return crypto.EmptyCodeHash
	}
	return crypto.Keccak256Hash(acct.Code)
}

// GetState returns the value stored at key in the account storage.
func (s *State) GetState(addr common.Address, key common.Hash) common.Hash {
	if acct := s.accounts[addr]; acct != nil {
		return acct.Storage[key]
	}
	return common.Hash{}
}
