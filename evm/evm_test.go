package evm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/entropyio/minievm/chain"
	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/common/crypto"
	"github.com/entropyio/minievm/config"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var childAddr = common.HexToAddress("0x1000000000000000000000000000000000000bbb")

// callCode returns code calling addr with empty calldata and the given value,
// writing the return data to memory [retOffset, retOffset+retSize).
func callCode(addr common.Address, value, retOffset, retSize byte) string {
	return fmt.Sprintf("60%02x60%02x6000600060%02x73%x5af1", retSize, retOffset, value, addr.Bytes())
}

func stateWithChild(code string) *chain.State {
	state := chain.NewState()
	state.SetCode(childAddr, common.FromHex(code))
	return state
}

func TestCallAbsentCode(t *testing.T) {
	// CALL RETURNDATASIZE
	res := execute(callCode(childAddr, 0, 0, 0)+"3d", nil, chain.NewState(), EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x0", "0x1"}, stackHex(res.Stack))
	assert.Empty(t, res.Logs)
}

func TestCallReturn(t *testing.T) {
	// child: MSTORE 0x2a at 0, RETURN 32 bytes
	state := stateWithChild("602a60005260206000f3")
	// CALL, MLOAD 0, RETURNDATASIZE
	res := execute(callCode(childAddr, 0, 0, 0x20)+"600051"+"3d", nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x20", "0x2a", "0x1"}, stackHex(res.Stack))
}

func TestCallReturnWindow(t *testing.T) {
	// child returns a single byte 0xa2
	state := stateWithChild("60a260005360016000f3")
	// prefill memory with ones, CALL into [0, 4), MLOAD 0
	code := "7f" + strings.Repeat("ff", 32) + "600052" + callCode(childAddr, 0, 0, 4) + "600051"
	res := execute(code, nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	// the window is zero padded past the returned byte, the rest is untouched
	assert.Equal(t, []string{"0xa2000000" + strings.Repeat("ff", 28), "0x1"}, stackHex(res.Stack))
}

func TestCallRevert(t *testing.T) {
	// child: MSTORE8 0xa2 at 0, REVERT 1 byte
	state := stateWithChild("60a260005360016000fd")
	// CALL, RETURNDATASIZE, MLOAD 0, then the parent carries on
	res := execute(callCode(childAddr, 0, 0, 0x20)+"3d"+"600051"+"6001", nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x1", "0xa2" + strings.Repeat("00", 31), "0x1", "0x0"}, stackHex(res.Stack))

	// RETURNDATACOPY of the revert data
	res = execute(callCode(childAddr, 0, 0, 0)+"6001600060003e600051", nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0xa2" + strings.Repeat("00", 31), "0x0"}, stackHex(res.Stack))

	// copying past the end of the return data fails the frame
	res = execute(callCode(childAddr, 0, 0, 0)+"6002600060003e", nil, state, EVMConfig{})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrReturnDataOutOfBounds)
}

func TestCallFailureDoesNotAbort(t *testing.T) {
	// child: INVALID
	state := stateWithChild("fe")
	res := execute(callCode(childAddr, 0, 0, 0x20)+"3d"+"6007", nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x7", "0x0", "0x0"}, stackHex(res.Stack))
}

func TestCallLogs(t *testing.T) {
	// child: LOG0 of nothing, STOP
	state := stateWithChild("60006000a000")
	// CALL, then LOG1 with topic 1
	res := execute(callCode(childAddr, 0, 0, 0)+"600160006000a1", nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	require.Len(t, res.Logs, 2)
	assert.Equal(t, childAddr, res.Logs[0].Address)
	assert.Empty(t, res.Logs[0].Topics)
	assert.Equal(t, contractAddr, res.Logs[1].Address)
	assert.Equal(t, []common.Hash{common.HexToHash("0x1")}, res.Logs[1].Topics)

	// a child that fails after logging contributes nothing
	state = stateWithChild("60006000a0fe")
	res = execute(callCode(childAddr, 0, 0, 0), nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x0"}, stackHex(res.Stack))
	assert.Empty(t, res.Logs)
}

func TestCallContext(t *testing.T) {
	// child: MSTORE CALLER at 0, MSTORE CALLVALUE at 32, MSTORE ORIGIN at 64, RETURN 96 bytes
	state := stateWithChild("336000523460205232604052" + "60606000f3")
	vm := NewEVM(Context{Origin: callerAddr}, state, nil, EVMConfig{})
	code := callCode(childAddr, 5, 0, 0x60) + "604051" + "602051" + "600051"
	res := vm.Execute(callerAddr, contractAddr, common.FromHex(code), nil, nil)
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{contractAddr.Hex(), "0x5", callerAddr.Hex(), "0x1"}, stackHex(res.Stack))
}

func TestCallStorageIsolation(t *testing.T) {
	// child: SLOAD 1, RETURN it; SSTORE 1 = 7
	state := stateWithChild("600154600052" + "6007600155" + "60206000f3")
	// SSTORE 1 = 42, CALL, MLOAD 0, SLOAD 1
	code := "602a600155" + callCode(childAddr, 0, 0, 0x20) + "600051" + "600154"
	res := execute(code, nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{"0x2a", "0x0", "0x1"}, stackHex(res.Stack))

	// running the child again still starts from empty storage
	res = execute(callCode(childAddr, 0, 0, 0x20)+"600051", nil, state, EVMConfig{})
	require.True(t, res.Success)
	assert.Equal(t, []string{"0x0", "0x1"}, stackHex(res.Stack))
}

func TestStorageFromState(t *testing.T) {
	state := chain.NewState()
	state.SetState(contractAddr, common.HexToHash("0x1"), common.HexToHash("0x7"))

	// SLOAD 1
	res := execute("600154", nil, state, EVMConfig{})
	assert.Equal(t, []string{"0x0"}, stackHex(res.Stack))

	res = execute("600154", nil, state, EVMConfig{StorageFromState: true})
	assert.Equal(t, []string{"0x7"}, stackHex(res.Stack))

	// writes shadow the state and stay in the frame
	res = execute("6009600155600154", nil, state, EVMConfig{StorageFromState: true})
	assert.Equal(t, []string{"0x9"}, stackHex(res.Stack))
	assert.Equal(t, common.HexToHash("0x7"), state.GetState(contractAddr, common.HexToHash("0x1")))
	assert.Equal(t, map[common.Hash]common.Hash{common.HexToHash("0x1"): common.HexToHash("0x9")}, res.Storage)
}

func TestResultStorage(t *testing.T) {
	// SSTORE 1 = 42, SSTORE 2 = 0
	res := execute("602a600155"+"6000600255", nil, nil, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, map[common.Hash]common.Hash{
		common.HexToHash("0x1"): common.HexToHash("0x2a"),
		common.HexToHash("0x2"): {},
	}, res.Storage)

	// a failed frame leaves no storage behind
	res = execute("602a600155"+"fe", nil, nil, EVMConfig{})
	assert.False(t, res.Success)
	assert.Nil(t, res.Storage)

	// neither does a child frame
	state := stateWithChild("6007600155")
	res = execute(callCode(childAddr, 0, 0, 0), nil, state, EVMConfig{})
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Empty(t, res.Storage)
}

// recursiveCode calls itself, then returns the number of successful calls
// made below it.
func recursiveCode() string {
	return callCode(contractAddr, 0, 0, 0x20) + "600051" + "01" + "600052" + "60206000f3"
}

func TestCallDepth(t *testing.T) {
	for _, limit := range []int{1, 3, 0} {
		state := chain.NewState()
		state.SetCode(contractAddr, common.FromHex(recursiveCode()))

		vm := NewEVM(Context{}, state, nil, EVMConfig{MaxCallDepth: limit})
		res := vm.Call(callerAddr, contractAddr, nil, nil)
		require.True(t, res.Success, "error: %v", res.Err)

		want := limit
		if want == 0 {
			want = config.CallDepthLimit
		}
		got := new(uint256.Int).SetBytes(res.ReturnData)
		assert.Equal(t, uint64(want), got.Uint64(), "limit %d", limit)
		assert.Equal(t, 0, vm.depth)
	}
}

func TestExternalAccounts(t *testing.T) {
	state := chain.NewState()
	state.SetBalance(contractAddr, uint256.NewInt(0x100))
	state.SetBalance(childAddr, uint256.NewInt(0x200))
	state.SetCode(childAddr, common.FromHex("600160020160005260206000f3"))
	empty := common.HexToAddress("0x1000000000000000000000000000000000000ccc")
	state.SetBalance(empty, uint256.NewInt(1))

	push := func(a common.Address) string { return fmt.Sprintf("73%x", a.Bytes()) }

	tests := []struct {
		name  string
		code  string
		stack []string
	}{
		{"BALANCE", push(childAddr) + "31", []string{"0x200"}},
		{"BALANCE missing", "600131", []string{"0x0"}},
		{"SELFBALANCE", "47", []string{"0x100"}},
		{"EXTCODESIZE", push(childAddr) + "3b", []string{"0xd"}},
		{"EXTCODEHASH", push(childAddr) + "3f", []string{crypto.Keccak256Hash(state.GetCode(childAddr)).Hex()}},
		{"EXTCODEHASH no code", push(empty) + "3f", []string{crypto.EmptyCodeHash.Hex()}},
		{"EXTCODECOPY", "6002" + "6000" + "6000" + push(childAddr) + "3c" + "600051", []string{"0x6001" + strings.Repeat("00", 30)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(tt.code, nil, state, EVMConfig{})
			require.True(t, res.Success, "error: %v", res.Err)
			assert.Equal(t, tt.stack, stackHex(res.Stack))
		})
	}
}

func TestBlockContext(t *testing.T) {
	ctx := Context{
		Origin:      callerAddr,
		GasPrice:    uint256.NewInt(10),
		Coinbase:    childAddr,
		GasLimit:    uint256.NewInt(0xffffffffffff),
		BlockNumber: uint256.NewInt(1000001),
		Time:        uint256.NewInt(1636704767),
		Difficulty:  uint256.NewInt(0x20000),
		BaseFee:     uint256.NewInt(1),
	}
	vm := NewEVM(ctx, nil, config.MainnetChainConfig, EVMConfig{})
	// ORIGIN GASPRICE COINBASE TIMESTAMP NUMBER DIFFICULTY GASLIMIT CHAINID BASEFEE
	res := vm.Execute(callerAddr, contractAddr, common.FromHex("323a414243444546"+"48"), nil, nil)
	require.True(t, res.Success, "error: %v", res.Err)
	assert.Equal(t, []string{
		"0x1", "0x1", "0xffffffffffff", "0x20000", "0xf4241", "0x618e21ff", childAddr.Hex(), "0xa", callerAddr.Hex(),
	}, stackHex(res.Stack))
}
