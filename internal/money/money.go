// Package money holds decimal currency amounts in Brazilian reais.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a value in BRL. It travels on the wire as a bare JSON number.
type Amount struct {
	d decimal.Decimal
}

func Zero() Amount { return Amount{} }

func FromFloat(v float64) Amount { return Amount{d: decimal.NewFromFloat(v)} }

func FromCents(cents int64) Amount { return Amount{d: decimal.New(cents, -2)} }

// Parse reads a typed-in price. Both "5999.90" and the pt-BR "5999,90" are accepted.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount{d: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Mul(n int) Amount { return Amount{d: a.d.Mul(decimal.NewFromInt(int64(n)))} }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) IsNegative() bool { return a.d.IsNegative() }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

func (a Amount) Float64() float64 { return a.d.InexactFloat64() }

// String renders the plain decimal with two places, as used in form values.
func (a Amount) String() string { return a.d.StringFixed(2) }

// Format renders the amount the way the storefront shows prices, e.g. "R$ 5.999,00".
func (a Amount) Format() string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	sign := ""
	v := a.d
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	return sign + "R$ " + p.Sprint(number.Decimal(v.InexactFloat64(), number.Scale(2)))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		a.d = decimal.Zero
		return nil
	}
	return a.d.UnmarshalJSON(data)
}
