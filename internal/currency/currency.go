package currency

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCode   = "IDR"
	DefaultLocale = "id-ID"
	DefaultSymbol = "Rp"
)

var (
	ErrUnknownDenomination = errors.New("unknown denomination")
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrAmountOverflow      = errors.New("inserted amount is too large")
)

// denominationValues is the accepted set of notes, ascending. The order is the display order.
var denominationValues = []int64{2000, 5000, 10000, 20000, 50000}

// Denomination is a note that can be inserted into the machine.
type Denomination struct {
	Value int64
	Label string
}

// Formatter renders integer amounts in the smallest currency unit as localized strings.
type Formatter struct {
	unit    currency.Unit
	tag     language.Tag
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for an ISO 4217 code and a BCP 47 locale.
// An empty symbol falls back to the ISO code.
func NewFormatter(code string, locale string, symbol string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency code %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("currency locale %q: %w", locale, err)
	}

	if symbol == "" {
		symbol = unit.String()
	}

	return &Formatter{
		unit:    unit,
		tag:     tag,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// DefaultFormatter returns the Indonesian Rupiah formatter.
func DefaultFormatter() *Formatter {
	f, err := NewFormatter(DefaultCode, DefaultLocale, DefaultSymbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders amount with locale digit grouping, e.g. "Rp 5.000".
// Negative amounts are outside the contract.
func (f *Formatter) Format(amount int64) string {
	return f.symbol + " " + f.printer.Sprintf("%d", amount)
}

// Code returns the ISO 4217 code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Locale returns the BCP 47 tag the formatter groups digits for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Denominations lists the accepted notes in ascending order with formatted labels.
func (f *Formatter) Denominations() []Denomination {
	result := make([]Denomination, len(denominationValues))
	for i, value := range denominationValues {
		result[i] = Denomination{
			Value: value,
			Label: f.Format(value),
		}
	}
	return result
}

// IsAccepted reports whether value is one of the accepted denominations.
func IsAccepted(value int64) bool {
	for _, v := range denominationValues {
		if v == value {
			return true
		}
	}
	return false
}

// Insert adds one accepted denomination to a running inserted total.
func Insert(current int64, value int64) (int64, error) {
	if current < 0 {
		return 0, ErrNegativeAmount
	}
	if !IsAccepted(value) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDenomination, value)
	}
	if current > math.MaxInt64-value {
		return 0, ErrAmountOverflow
	}
	return current + value, nil
}
