package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := map[string]string{
		"10.005":  "10.01",
		"10.004":  "10",
		"-10.005": "-10.01",
		"2.4975":  "2.5",
		"100":     "100",
	}
	for in, want := range cases {
		got := Round2(Rupees(in))
		assert.True(t, got.Equal(Rupees(want)), "Round2(%s) = %s, want %s", in, got, want)
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(Rupees("18")).Equal(Rupees("0.18")))
	assert.True(t, Percent(MoneyZero).IsZero())
}
