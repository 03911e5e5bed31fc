package evm

import (
	"sync"

	"github.com/holiman/uint256"
)

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is an object for basic stack operations. Items popped to the stack are
// expected to be changed and modified. stack does not take care of adding newly
// initialized objects.
//
// Bounds are not checked here: the interpreter validates every operation
// against its minStack/maxStack before executing it.
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// TopFirst returns a copy of the stack with the most recently pushed item first.
func (st *Stack) TopFirst() []uint256.Int {
	out := make([]uint256.Int, len(st.data))
	for i := range st.data {
		out[i] = st.data[len(st.data)-1-i]
	}
	return out
}

func (st *Stack) push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) len() int {
	return len(st.data)
}

// swap exchanges the top with the n+1'th item.
func (st *Stack) swap(n int) {
	top := st.len() - 1
	st.data[top-n], st.data[top] = st.data[top], st.data[top-n]
}

// dup pushes a copy of the n'th item.
func (st *Stack) dup(n int) {
	st.push(&st.data[st.len()-n])
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[st.len()-1]
}

// Back returns the n'th item in stack
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[st.len()-n-1]
}
