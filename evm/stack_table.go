package evm

import (
	"github.com/entropyio/minievm/config"
)

// SWAPn needs n+1 items and leaves the height unchanged.
func minSwapStack(n int) int {
	return minStack(n+1, n+1)
}
func maxSwapStack(n int) int {
	return maxStack(n+1, n+1)
}

// DUPn needs n items and adds one.
func minDupStack(n int) int {
	return minStack(n, n+1)
}
func maxDupStack(n int) int {
	return maxStack(n, n+1)
}

// maxStack is the largest height at which an operation popping pop and
// pushing push items still fits under the limit.
func maxStack(pop, push int) int {
	return int(config.StackLimit) + pop - push
}
func minStack(pops, _ int) int {
	return pops
}
