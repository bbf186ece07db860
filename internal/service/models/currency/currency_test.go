package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	cur, err := ParseCurrency("RUB")
	require.NoError(t, err)
	assert.Equal(t, CurrencyRUB, cur)
	assert.Equal(t, "₽", cur.Symbol())

	_, err = ParseCurrency("usd")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestCurrency_SymbolFallsBackToCode(t *testing.T) {
	assert.Equal(t, "EUR", Currency("EUR").Symbol())
}
