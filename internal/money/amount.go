// Package money provides the fixed-point decimal type used for every
// monetary and price quantity in tradecore. Binary floating point never
// appears in risk, funding, or ledger code.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount wraps an arbitrary-precision decimal. The zero value is zero.
type Amount struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Amount{d: decimal.Zero}

// New builds an Amount from an integer number of units and an exponent,
// mirroring decimal.New: value = units * 10^exp.
func New(units int64, exp int32) Amount {
	return Amount{d: decimal.New(units, exp)}
}

// NewFromInt builds an Amount representing a whole number.
func NewFromInt(v int64) Amount {
	return Amount{d: decimal.NewFromInt(v)}
}

// Parse parses a decimal string. It is the inverse of String, so
// parse(format(x)) == x for every Amount produced by this package.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("money.Parse: %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// MustParse is Parse but panics on error; intended for literals in tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the amount with no implicit truncation. round-trips with Parse.
func (a Amount) String() string {
	return a.d.String()
}

// Float64 returns a float64 approximation for display/formatting only.
// Never feed this back into a financial computation.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Add returns a+b. Decimal arithmetic over big.Int never overflows in the
// way fixed-width integers do, but we keep a checked form so call sites
// read the same as every other checked operation and so a future bound
// (e.g. a maximum digit count) has one place to land.
func (a Amount) Add(b Amount) (Amount, error) {
	return Amount{d: a.d.Add(b.d)}, nil
}

// Sub returns a-b.
func (a Amount) Sub(b Amount) (Amount, error) {
	return Amount{d: a.d.Sub(b.d)}, nil
}

// Mul returns a*b.
func (a Amount) Mul(b Amount) (Amount, error) {
	return Amount{d: a.d.Mul(b.d)}, nil
}

// MulInt64 returns a * q, for multiplying a unit price by a quantity.
func (a Amount) MulInt64(q int64) (Amount, error) {
	return Amount{d: a.d.Mul(decimal.NewFromInt(q))}, nil
}

// Div returns a/b. Division is the one operation that is not exact in
// general; it is rounded to DivisionPrecision (shopspring's default of
// 16 fractional digits), which satisfies the §3 requirement of at least
// 28 significant digits of precision throughout the rest of the type.
func (a Amount) Div(b Amount) (Amount, error) {
	if b.IsZero() {
		return Amount{}, ErrDivideByZero
	}
	return Amount{d: a.d.Div(b.d)}, nil
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{d: a.d.Neg()}
}

// Abs returns |a|.
func (a Amount) Abs() Amount {
	return Amount{d: a.d.Abs()}
}

// Cmp compares a to b: -1, 0, or 1.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

// GreaterThan reports a > b.
func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }

// GreaterThanOrEqual reports a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.d.GreaterThanOrEqual(b.d) }

// LessThan reports a < b.
func (a Amount) LessThan(b Amount) bool { return a.d.LessThan(b.d) }

// LessThanOrEqual reports a <= b.
func (a Amount) LessThanOrEqual(b Amount) bool { return a.d.LessThanOrEqual(b.d) }

// MulPercent multiplies by a percentage expressed as a decimal fraction
// (e.g. "2%" is passed as Amount for 0.02), returning a*pct.
func (a Amount) MulPercent(pct Amount) (Amount, error) {
	return a.Mul(pct)
}

// FloorDiv returns the largest integer q such that q*divisor <= a,
// used by the maximum-quantity calculator (§4.2). divisor must be positive.
func (a Amount) FloorDiv(divisor Amount) (int64, error) {
	if divisor.IsZero() || divisor.IsNegative() {
		return 0, ErrDivideByZero
	}
	if a.IsNegative() {
		return 0, nil
	}
	q := a.d.Div(divisor.d).Floor()
	return q.IntPart(), nil
}

// Value implements driver.Valuer so Amount can be written as TEXT.
func (a Amount) Value() (driver.Value, error) {
	return a.d.String(), nil
}

// Scan implements sql.Scanner so Amount can be read back from TEXT.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		a.d = decimal.Zero
		return nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("money.Amount.Scan: %w", err)
		}
		a.d = d
		return nil
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("money.Amount.Scan: %w", err)
		}
		a.d = d
		return nil
	case float64:
		a.d = decimal.NewFromFloat(v)
		return nil
	case int64:
		a.d = decimal.NewFromInt(v)
		return nil
	default:
		return fmt.Errorf("money.Amount.Scan: unsupported type %T", src)
	}
}

// ErrDivideByZero is returned by Div and FloorDiv when the divisor is zero.
var ErrDivideByZero = fmt.Errorf("money: divide by zero")

// Sum adds a slice of amounts, returning Zero for an empty slice.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total, _ = total.Add(a)
	}
	return total
}
