package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// BRL is the only currency the storefront sells in
const BRL Currency = "BRL"

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Money is an immutable monetary amount
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewBRL creates an amount in reais
func NewBRL(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: BRL}
}

// MustBRL parses a literal amount in reais and panics when it is malformed.
// Intended for package-level constants.
func MustBRL(amount string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(fmt.Sprintf("invalid BRL literal %q: %v", amount, err))
	}
	return NewBRL(d)
}

// ZeroBRL returns zero reais
func ZeroBRL() Money {
	return Money{amount: decimal.Zero, currency: BRL}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns the sum of both amounts.
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MustAdd adds two Money values, panics if currencies don't match
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// MultiplyByInt returns the amount multiplied by an integer
func (m Money) MultiplyByInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))), currency: m.currency}
}

// DiscountPercentFrom returns how many whole percent m is below list.
// A list price that is not above m yields 0.
func (m Money) DiscountPercentFrom(list Money) int {
	if list.currency != m.currency || !list.amount.GreaterThan(m.amount) || list.amount.IsZero() {
		return 0
	}
	off := list.amount.Sub(m.amount).Div(list.amount).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Format renders the amount the way Brazilian shoppers read it: R$ 1.234,56
func (m Money) Format() string {
	f, _ := m.amount.Round(2).Float64()
	return brPrinter.Sprintf("R$ %.2f", f)
}

type moneyJSON struct {
	Amount   json.Number `json:"amount"`
	Currency Currency    `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   json.Number(m.amount.StringFixed(2)),
		Currency: m.currency,
	})
}

// UnmarshalJSON accepts the amount either as a JSON string or a JSON number.
// A missing currency defaults to BRL.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   json.RawMessage `json:"amount"`
		Currency Currency        `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	raw := string(v.Amount)
	if len(raw) >= 2 && raw[0] == '"' {
		if err := json.Unmarshal(v.Amount, &raw); err != nil {
			return err
		}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	m.amount = amount
	m.currency = v.Currency
	if m.currency == "" {
		m.currency = BRL
	}
	return nil
}
