package decimal_test

import (
	"testing"

	sdecimal "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/dian-processor/internal/decimal"
)

func TestFromFloat_RoundsToTwoPlaces(t *testing.T) {
	d := decimal.FromFloat(19.999)
	assert.Equal(t, "20.00", d.StringFixed(2))
}

func TestMul(t *testing.T) {
	got := decimal.Mul(decimal.FromInt(2), decimal.FromInt(10000))
	assert.True(t, got.Equal(decimal.FromInt(20000)), "got %s", got)
}

func TestCalculateTax(t *testing.T) {
	tax := decimal.CalculateTax(decimal.FromInt(20000), decimal.FromFloat(19.0))
	assert.True(t, tax.Equal(decimal.FromInt(3800)), "got %s", tax)

	assert.True(t, decimal.CalculateTax(decimal.FromInt(20000), decimal.Zero).IsZero())
}

func TestSum(t *testing.T) {
	values := []sdecimal.Decimal{
		decimal.FromInt(100),
		decimal.FromFloat(0.5),
		decimal.FromFloat(0.25),
	}
	got := decimal.Sum(values)
	assert.Equal(t, "100.75", got.StringFixed(2))
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.FromFloat(20000.00)

	assert.True(t, decimal.WithinTolerance(a, decimal.FromFloat(20000.01)))
	assert.True(t, decimal.WithinTolerance(a, decimal.FromFloat(19999.99)))
	assert.False(t, decimal.WithinTolerance(a, decimal.FromFloat(20000.02)))
	assert.False(t, decimal.WithinTolerance(a, decimal.FromFloat(19999.98)))
}

func TestFormat(t *testing.T) {
	d, err := decimal.FromString("23800")
	require.NoError(t, err)
	assert.Equal(t, "23800.00", decimal.Format(d))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "19", decimal.FormatRate(decimal.FromFloat(19.0)))
	assert.Equal(t, "19.5", decimal.FormatRate(decimal.FromFloat(19.5)))
}
