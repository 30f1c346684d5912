package types

import (
	"math/big"
)

// Int is the type of an integer value. Integers are signed and of arbitrary
// precision.
type Int struct {
	bi *big.Int
}

var (
	_ Value   = Int{}
	_ Ordered = Int{}
)

// MakeInt returns an Int holding v.
func MakeInt(v int64) Int {
	return Int{bi: big.NewInt(v)}
}

// ParseInt parses a base-10 integer literal: an optional sign followed by one
// or more digits.
func ParseInt(s string) (Int, bool) {
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, false
	}
	return Int{bi: bi}, true
}

func (i Int) String() string { return i.bi.String() }
func (i Int) Type() string   { return "int" }

// Cmp implements comparison of two Int values.
func (i Int) Cmp(v Value) int {
	j := v.(Int)
	return i.bi.Cmp(j.bi)
}

// Sign returns -1, 0 or +1 depending on the sign of i.
func (i Int) Sign() int { return i.bi.Sign() }

// Int64 returns the value as an int64 and whether it fits.
func (i Int) Int64() (int64, bool) {
	if !i.bi.IsInt64() {
		return 0, false
	}
	return i.bi.Int64(), true
}

func (i Int) Add(j Int) Int { return Int{bi: new(big.Int).Add(i.bi, j.bi)} }
func (i Int) Sub(j Int) Int { return Int{bi: new(big.Int).Sub(i.bi, j.bi)} }
func (i Int) Mul(j Int) Int { return Int{bi: new(big.Int).Mul(i.bi, j.bi)} }

// Div returns the quotient of i and j rounded toward negative infinity. The
// divisor must be non-zero.
func (i Int) Div(j Int) Int {
	q, r := new(big.Int).QuoRem(i.bi, j.bi, new(big.Int))
	// QuoRem truncates toward zero; floor differs by one when the remainder
	// is non-zero and the operands have opposite signs.
	if r.Sign() != 0 && (r.Sign() < 0) != (j.bi.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return Int{bi: q}
}
