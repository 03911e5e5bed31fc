package evm

import (
	"github.com/entropyio/minievm/common"
)

// StorageReader supplies the value of keys never written in a frame.
type StorageReader func(key common.Hash) common.Hash

// Storage is the word to word key/value store of a single call frame. It is
// created when the frame starts and dropped when it returns; caller and callee
// never see each other's storage. Absent keys read as zero, or from the
// optional backing reader.
type Storage struct {
	slots   map[common.Hash]common.Hash
	backing StorageReader
}

// NewStorage returns an empty storage. backing may be nil.
func NewStorage(backing StorageReader) *Storage {
	return &Storage{
		slots:   make(map[common.Hash]common.Hash),
		backing: backing,
	}
}

// Get returns the value stored at key.
func (s *Storage) Get(key common.Hash) common.Hash {
	if v, ok := s.slots[key]; ok {
		return v
	}
	if s.backing != nil {
		return s.backing(key)
	}
	return common.Hash{}
}

// Set stores value at key.
func (s *Storage) Set(key, value common.Hash) {
	s.slots[key] = value
}

// Dirty returns a copy of every slot written during the frame.
func (s *Storage) Dirty() map[common.Hash]common.Hash {
	cpy := make(map[common.Hash]common.Hash, len(s.slots))
	for k, v := range s.slots {
		cpy[k] = v
	}
	return cpy
}
