package utils

import (
	"math"
	"strings"
)

// Indian-system amount in words for the printed docket.

var unitWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tenWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func wordsBelowHundred(n int) string {
	if n < 20 {
		return unitWords[n]
	}
	if n%10 == 0 {
		return tenWords[n/10]
	}
	return tenWords[n/10] + " " + unitWords[n%10]
}

func wordsBelowThousand(n int) string {
	if n < 100 {
		return wordsBelowHundred(n)
	}
	s := unitWords[n/100] + " Hundred"
	if rem := n % 100; rem != 0 {
		s += " " + wordsBelowHundred(rem)
	}
	return s
}

// NumberToWords spells n in the Indian grouping (thousand, lakh, crore).
// Zero yields the empty string; callers decide how to render it.
func NumberToWords(n int) string {
	if n == 0 {
		return ""
	}

	groups := []struct {
		value int
		label string
	}{
		{10000000, "Crore"},
		{100000, "Lakh"},
		{1000, "Thousand"},
	}

	var parts []string
	for _, g := range groups {
		if n >= g.value {
			parts = append(parts, wordsBelowThousand(n/g.value)+" "+g.label)
			n %= g.value
		}
	}
	if n > 0 {
		parts = append(parts, wordsBelowThousand(n))
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders a rupee amount as "<rupees> Rupees and <paise> Paise Only".
func AmountInWords(amount float64) string {
	rupees := int(math.Floor(amount))
	paise := int(math.Round((amount - float64(rupees)) * 100))

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
