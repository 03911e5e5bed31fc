package evm

import (
	"fmt"

	"github.com/entropyio/minievm/common"
)

// Log represents a contract log event emitted by LOG0..LOG4.
type Log struct {
	// address of the contract that generated the event
	Address common.Address
	// list of topics provided by the contract, in stack order
	Topics []common.Hash
	// supplied by the contract, usually ABI-encoded
	Data []byte
}

func (l *Log) String() string {
	return fmt.Sprintf("log{address: %s, topics: %v, data: %x}", l.Address.Hex(), l.Topics, l.Data)
}
