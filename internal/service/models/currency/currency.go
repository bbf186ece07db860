package currency

import (
	"errors"
)

type Currency string

const (
	CurrencyRUB Currency = "RUB"
)

var ErrInvalidCurrency = errors.New("invalid currency")

var symbols = map[Currency]string{
	CurrencyRUB: "₽",
}

func (c Currency) String() string {
	return string(c)
}

// Symbol returns the sign printed after amounts in documents and emails.
func (c Currency) Symbol() string {
	if s, ok := symbols[c]; ok {
		return s
	}

	return c.String()
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyRUB.String():
		return CurrencyRUB, nil
	default:
		return "", ErrInvalidCurrency
	}
}
