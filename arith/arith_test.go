package arith

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

const (
	maxWord = "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	minWord = "0x8000000000000000000000000000000000000000000000000000000000000000"
)

func w(s string) *uint256.Int {
	return uint256.MustFromHex(s)
}

type binaryCase struct {
	x, y, want string
}

func runBinary(t *testing.T, name string, fn func(z, x, y *uint256.Int) *uint256.Int, cases []binaryCase) {
	t.Helper()
	for i, tc := range cases {
		got := fn(new(uint256.Int), w(tc.x), w(tc.y))
		assert.Equal(t, w(tc.want).Hex(), got.Hex(), "%s case %d (%s, %s)", name, i, tc.x, tc.y)
	}
}

func TestAddSubMulWrap(t *testing.T) {
	runBinary(t, "add", Add, []binaryCase{
		{"0xa", "0x5", "0xf"},
		{maxWord, "0x2", "0x1"},
	})
	runBinary(t, "sub", Sub, []binaryCase{
		{"0xa", "0x5", "0x5"},
		{"0x0", "0x1", maxWord},
	})
	runBinary(t, "mul", Mul, []binaryCase{
		{"0x6", "0x7", "0x2a"},
		{maxWord, "0x2", "0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
	})
}

func TestDivisionByZero(t *testing.T) {
	for _, fn := range []func(z, x, y *uint256.Int) *uint256.Int{Div, SDiv, Mod, SMod} {
		assert.True(t, fn(new(uint256.Int), w("0x1234"), w("0x0")).IsZero())
	}
	assert.True(t, AddMod(new(uint256.Int), w("0x5"), w("0x7"), w("0x0")).IsZero())
	assert.True(t, MulMod(new(uint256.Int), w("0x5"), w("0x7"), w("0x0")).IsZero())
}

func TestDivMod(t *testing.T) {
	runBinary(t, "div", Div, []binaryCase{
		{"0xa", "0xa", "0x1"},
		{"0x1", "0x2", "0x0"},
	})
	runBinary(t, "mod", Mod, []binaryCase{
		{"0xa", "0x3", "0x1"},
		{"0x5", "0x11", "0x5"},
	})
}

func TestSignedDivMod(t *testing.T) {
	runBinary(t, "sdiv", SDiv, []binaryCase{
		{"0xa", "0xa", "0x1"},
		// -2 / -1 = 2
		{"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe", maxWord, "0x2"},
		// 10 / -2 = -5
		{"0xa", "0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe",
			"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb"},
		// -7 / 2 = -3 (truncation toward zero)
		{"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff9", "0x2",
			"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd"},
		{minWord, maxWord, minWord},
	})
	runBinary(t, "smod", SMod, []binaryCase{
		{"0xa", "0x3", "0x1"},
		// -8 mod -3 = -2
		{"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff8",
			"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd",
			"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
		// -7 mod 3 = -1
		{"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff9", "0x3", maxWord},
		// 7 mod -3 = 1
		{"0x7", "0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd", "0x1"},
	})
}

func TestAddModMulMod(t *testing.T) {
	z := new(uint256.Int)
	assert.Equal(t, "0x4", AddMod(z, w("0xa"), w("0xa"), w("0x8")).Hex())
	// no intermediate wraparound: (2^256-1 + 2) mod 2 = 1
	assert.Equal(t, "0x1", AddMod(z, w(maxWord), w("0x2"), w("0x2")).Hex())
	assert.Equal(t, "0x4", MulMod(z, w("0xa"), w("0xa"), w("0x8")).Hex())
	// (2^256-1)^2 mod 12 = 9
	assert.Equal(t, "0x9", MulMod(z, w(maxWord), w(maxWord), w("0xc")).Hex())
}

func TestExp(t *testing.T) {
	runBinary(t, "exp", Exp, []binaryCase{
		{"0xa", "0x2", "0x64"},
		{"0x2", "0x2", "0x4"},
		{"0x2", "0x100", "0x0"},
		{"0x0", "0x0", "0x1"},
	})
}

func TestSignExtend(t *testing.T) {
	runBinary(t, "signextend", SignExtend, []binaryCase{
		{"0x0", "0xff", maxWord},
		{"0x0", "0x7f", "0x7f"},
		{"0x1", "0x8001", "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff8001"},
		{"0x0", "0x1ff", maxWord},
		{"0x0", "0x17f", "0x7f"},
		{"0x1f", "0xff", "0xff"},
		{maxWord, "0xff", "0xff"},
	})
}

func TestComparisons(t *testing.T) {
	neg1 := w(maxWord)
	assert.True(t, Lt(w("0x9"), w("0xa")))
	assert.False(t, Lt(w("0xa"), w("0xa")))
	assert.True(t, Gt(w("0xa"), w("0x9")))
	assert.True(t, Slt(neg1, w("0x0")))
	assert.False(t, Slt(w("0x0"), neg1))
	assert.True(t, Sgt(w("0x0"), neg1))
	assert.False(t, Sgt(neg1, neg1))
	assert.True(t, Eq(neg1, w(maxWord)))
	assert.True(t, IsZero(w("0x0")))
	assert.False(t, IsZero(neg1))
}

func TestBitwise(t *testing.T) {
	runBinary(t, "and", And, []binaryCase{{"0xf", "0xf", "0xf"}, {"0xff", "0x0", "0x0"}})
	runBinary(t, "or", Or, []binaryCase{{"0xf0", "0xf", "0xff"}})
	runBinary(t, "xor", Xor, []binaryCase{{"0xf0", "0xff", "0xf"}})
	assert.Equal(t, "0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff0",
		Not(new(uint256.Int), w("0xf")).Hex())
}

func TestByte(t *testing.T) {
	runBinary(t, "byte", Byte, []binaryCase{
		{"0x1f", "0xff", "0xff"},
		{"0x1e", "0xff00", "0xff"},
		{"0x0", minWord, "0x80"},
		{"0x20", maxWord, "0x0"},
		{maxWord, maxWord, "0x0"},
	})
}

func TestShifts(t *testing.T) {
	runBinary(t, "shl", Shl, []binaryCase{
		{"0x1", "0x1", "0x2"},
		{"0x4", "0xff00000000000000000000000000000000000000000000000000000000000000",
			"0xf000000000000000000000000000000000000000000000000000000000000000"},
		{"0x100", "0x1", "0x0"},
		{maxWord, "0x1", "0x0"},
	})
	runBinary(t, "shr", Shr, []binaryCase{
		{"0x1", "0x2", "0x1"},
		{"0x4", "0xff", "0xf"},
		{"0x100", maxWord, "0x0"},
	})
	runBinary(t, "sar", Sar, []binaryCase{
		{"0x1", "0x2", "0x1"},
		{"0x4", "0xf000000000000000000000000000000000000000000000000000000000000000",
			"0xff00000000000000000000000000000000000000000000000000000000000000"},
		{"0x100", minWord, maxWord},
		{"0x100", "0x7fff", "0x0"},
		{"0xff", minWord, maxWord},
	})
}

func TestAliasing(t *testing.T) {
	x := w("0x5")
	y := w("0xa")
	Add(y, x, y)
	assert.Equal(t, "0xf", y.Hex())

	v := w("0xff")
	SignExtend(v, w("0x0"), v)
	assert.Equal(t, maxWord, v.Hex())
}
