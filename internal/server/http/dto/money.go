package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money accepts heterogeneous shipping amounts: a JSON number, the string
// "Free" in any case, or a currency-formatted string with a leading symbol
// and comma separators. Unparsable strings resolve to zero rather than
// failing the request; the collaborating storefronts have shipped all of
// these shapes at one point or another.
type Money struct {
	decimal.Decimal
}

// UnmarshalJSON implements the lenient parse.
func (m *Money) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		m.Decimal = decimal.Zero
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			m.Decimal = decimal.Zero
			return nil
		}
		m.Decimal = parseMoneyString(s)
		return nil
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = value
	return nil
}

func parseMoneyString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "free") {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}
