package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"-1.005", "-1.01"},
		{"1154734.6420", "1154734.64"},
	}
	for _, c := range cases {
		got := Round(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "Round(%s) = %s, want %s", c.in, got, c.want)
	}
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, Sum().IsZero())
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(5000000), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(500000)))
}
