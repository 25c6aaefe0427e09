package ast

import "math/big"

// Int128 is a signed 128-bit integer, Weald's only integer type. Go has
// no native i128, so values are carried as a bounds-checked math/big.Int
// — bounds-checked, rather than staying arbitrary precision, because the
// syntax/invalid-int diagnostic depends on there being a fixed range to
// overflow.
type Int128 struct {
	v big.Int
}

// MinInt128 and MaxInt128 are the inclusive bounds of a signed 128-bit
// integer: -2^127 and 2^127-1.
var (
	MinInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	MaxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// NewInt128 wraps v as an Int128, reporting false if v falls outside
// [MinInt128, MaxInt128].
func NewInt128(v *big.Int) (*Int128, bool) {
	if v.Cmp(MinInt128) < 0 || v.Cmp(MaxInt128) > 0 {
		return nil, false
	}
	n := &Int128{}
	n.v.Set(v)
	return n, true
}

// Big returns the value as a *big.Int. The caller must not mutate it.
func (n *Int128) Big() *big.Int { return &n.v }

func (n *Int128) String() string { return n.v.String() }
