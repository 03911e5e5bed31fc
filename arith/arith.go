// Package arith implements the word arithmetic of the virtual machine.
//
// Every function is total: it writes its result into z and returns z, and
// never fails. Words are unsigned 256-bit integers; the signed variants read
// their operands as two's complement. z may alias any operand.
package arith

import "github.com/holiman/uint256"

// Add sets z = (x + y) mod 2^256.
func Add(z, x, y *uint256.Int) *uint256.Int { return z.Add(x, y) }

// Sub sets z = (x - y) mod 2^256.
func Sub(z, x, y *uint256.Int) *uint256.Int { return z.Sub(x, y) }

// Mul sets z = (x * y) mod 2^256.
func Mul(z, x, y *uint256.Int) *uint256.Int { return z.Mul(x, y) }

// Div sets z = floor(x / y), or 0 when y is 0.
func Div(z, x, y *uint256.Int) *uint256.Int {
	if y.IsZero() {
		return z.Clear()
	}
	return z.Div(x, y)
}

// SDiv sets z to the signed quotient of x and y truncated toward zero, or 0
// when y is 0. The one overflowing case, MinInt / -1, yields MinInt.
func SDiv(z, x, y *uint256.Int) *uint256.Int {
	if y.IsZero() {
		return z.Clear()
	}
	if x.Eq(minInt) && y.Eq(minusOne) {
		return z.Set(minInt)
	}
	return z.SDiv(x, y)
}

// Mod sets z = x mod y, or 0 when y is 0.
func Mod(z, x, y *uint256.Int) *uint256.Int {
	if y.IsZero() {
		return z.Clear()
	}
	return z.Mod(x, y)
}

// SMod sets z to the signed remainder of x and y, carrying the sign of x,
// or 0 when y is 0.
func SMod(z, x, y *uint256.Int) *uint256.Int {
	if y.IsZero() {
		return z.Clear()
	}
	return z.SMod(x, y)
}

// AddMod sets z = (x + y) mod m computed without intermediate wraparound,
// or 0 when m is 0.
func AddMod(z, x, y, m *uint256.Int) *uint256.Int {
	if m.IsZero() {
		return z.Clear()
	}
	return z.AddMod(x, y, m)
}

// MulMod sets z = (x * y) mod m computed without intermediate wraparound,
// or 0 when m is 0.
func MulMod(z, x, y, m *uint256.Int) *uint256.Int {
	if m.IsZero() {
		return z.Clear()
	}
	return z.MulMod(x, y, m)
}

// Exp sets z = base**exponent mod 2^256.
func Exp(z, base, exponent *uint256.Int) *uint256.Int { return z.Exp(base, exponent) }

// SignExtend treats byte b of x (0 = least significant) as a sign byte and
// copies its top bit into every more significant bit. b >= 31 leaves x as is.
func SignExtend(z, b, x *uint256.Int) *uint256.Int {
	if b.GtUint64(30) {
		return z.Set(x)
	}
	signBit := uint(b.Uint64()*8 + 7)
	var sign, mask uint256.Int
	sign.Rsh(x, signBit)
	mask.Lsh(one, signBit).SubUint64(&mask, 1)
	if sign[0]&1 == 1 {
		return z.Or(x, mask.Not(&mask))
	}
	return z.And(x, &mask)
}

// Lt reports x < y, unsigned.
func Lt(x, y *uint256.Int) bool { return x.Lt(y) }

// Gt reports x > y, unsigned.
func Gt(x, y *uint256.Int) bool { return x.Gt(y) }

// Slt reports x < y with both read as two's complement.
func Slt(x, y *uint256.Int) bool { return x.Slt(y) }

// Sgt reports x > y with both read as two's complement.
func Sgt(x, y *uint256.Int) bool { return x.Sgt(y) }

// Eq reports x == y.
func Eq(x, y *uint256.Int) bool { return x.Eq(y) }

// IsZero reports x == 0.
func IsZero(x *uint256.Int) bool { return x.IsZero() }

// And sets z to the bitwise x & y.
func And(z, x, y *uint256.Int) *uint256.Int { return z.And(x, y) }

// Or sets z to the bitwise x | y.
func Or(z, x, y *uint256.Int) *uint256.Int { return z.Or(x, y) }

// Xor sets z to the bitwise x ^ y.
func Xor(z, x, y *uint256.Int) *uint256.Int { return z.Xor(x, y) }

// Not sets z to the bitwise complement of x.
func Not(z, x *uint256.Int) *uint256.Int { return z.Not(x) }

// Byte sets z to byte i of x, where byte 0 is the most significant one, or
// to 0 when i > 31.
func Byte(z, i, x *uint256.Int) *uint256.Int {
	if !i.LtUint64(32) {
		return z.Clear()
	}
	b := x.Bytes32()[i.Uint64()]
	return z.SetUint64(uint64(b))
}

// Shl sets z = x << shift, or 0 when shift >= 256.
func Shl(z, shift, x *uint256.Int) *uint256.Int {
	if !shift.LtUint64(256) {
		return z.Clear()
	}
	return z.Lsh(x, uint(shift.Uint64()))
}

// Shr sets z = x >> shift with zero fill, or 0 when shift >= 256.
func Shr(z, shift, x *uint256.Int) *uint256.Int {
	if !shift.LtUint64(256) {
		return z.Clear()
	}
	return z.Rsh(x, uint(shift.Uint64()))
}

// Sar sets z = x >> shift filling with the sign bit of x. When shift >= 256
// the result is all ones for negative x and 0 otherwise.
func Sar(z, shift, x *uint256.Int) *uint256.Int {
	if !shift.LtUint64(256) {
		if x.Sign() < 0 {
			return z.SetAllOne()
		}
		return z.Clear()
	}
	return z.SRsh(x, uint(shift.Uint64()))
}

var (
	one      = uint256.NewInt(1)
	minusOne = new(uint256.Int).SetAllOne()
	minInt   = new(uint256.Int).Lsh(uint256.NewInt(1), 255)
)
