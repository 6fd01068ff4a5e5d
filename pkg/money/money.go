// Package money holds the rounding and formatting rules for rupee amounts.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RoundMode selects how a bill total is rounded to a whole rupee
type RoundMode string

const (
	RoundNone    RoundMode = "none"
	RoundNearest RoundMode = "nearest"
	RoundUp      RoundMode = "up"
	RoundDown    RoundMode = "down"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Round rounds d to a whole unit. Nearest rounds halves towards positive infinity.
func Round(d decimal.Decimal, mode RoundMode) decimal.Decimal {
	switch mode {
	case RoundNone:
		return d
	case RoundUp:
		return d.Ceil()
	case RoundDown:
		return d.Floor()
	default:
		return d.Add(half).Floor()
	}
}

// Percent returns d x pct / 100
func Percent(d, pct decimal.Decimal) decimal.Decimal {
	return d.Mul(pct).Div(hundred)
}

// Format describes how amounts are printed
type Format struct {
	Symbol   string // "₹", "Rs." or "INR"
	After    bool   // symbol after the number
	Indian   bool   // lakh/crore grouping
	Decimals int32
}

// DefaultFormat is rupee symbol first, Indian grouping, two decimals
var DefaultFormat = Format{Symbol: "₹", Indian: true, Decimals: 2}

// ASCII swaps the rupee sign for "Rs." for output devices limited to single-byte code pages
func (f Format) ASCII() Format {
	if f.Symbol == "₹" {
		f.Symbol = "Rs."
	}
	return f
}

// FormatAmount renders d using f
func FormatAmount(d decimal.Decimal, f Format) string {
	tag := language.English
	if f.Indian {
		tag = language.MustParse("en-IN")
	}
	p := message.NewPrinter(tag)
	body := p.Sprint(number.Decimal(d.Round(f.Decimals).InexactFloat64(), number.Scale(int(f.Decimals))))

	switch {
	case f.Symbol == "":
		return body
	case f.After:
		return body + " " + f.Symbol
	case len(f.Symbol) > 1 && f.Symbol != "₹":
		return f.Symbol + " " + body
	default:
		return f.Symbol + body
	}
}

var (
	ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
		"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// InWords spells an amount in the Indian numbering system, e.g. "Three Hundred Ninety Four Rupees Only"
func InWords(d decimal.Decimal) string {
	d = d.Abs().Round(2)
	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Mul(hundred).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(indianWords(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(indianWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func indianWords(n int64) string {
	var parts []string
	units := []struct {
		size int64
		name string
	}{
		{10000000, "Crore"},
		{100000, "Lakh"},
		{1000, "Thousand"},
		{100, "Hundred"},
	}
	for _, u := range units {
		if n >= u.size {
			parts = append(parts, indianWords(n/u.size), u.name)
			n %= u.size
		}
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
