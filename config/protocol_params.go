package config

const (
	StackLimit     uint64 = 1024 // Maximum size of VM stack allowed.
	CallDepthLimit int    = 1024 // Maximum depth of call frames.

	// MaxMemorySize caps the memory of a single frame. Execution is not gas
	// metered, so without it a single MSTORE could request exabytes.
	MaxMemorySize uint64 = 64 * 1024 * 1024

	InitialBaseFee = 1000000000 // Initial base fee for EIP-1559 blocks.
)
