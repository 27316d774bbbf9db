package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPeriodKey(t *testing.T) {
	valid := []string{"01-2024", "12-1999", "04-2025"}
	for _, key := range valid {
		assert.True(t, ValidPeriodKey(key), "key %s", key)
	}

	invalid := []string{"", "13-2024", "00-2024", "1-2024", "04-24", "2024-04", "04/2024", "04-2024 "}
	for _, key := range invalid {
		assert.False(t, ValidPeriodKey(key), "key %s", key)
	}
}

func TestPeriodKeyFor(t *testing.T) {
	assert.Equal(t, "06-2024", PeriodKeyFor(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "01-2025", PeriodKeyFor(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodStart(t *testing.T) {
	start, err := PeriodStart("04-2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), start)

	_, err = PeriodStart("4-2024")
	assert.ErrorIs(t, err, ErrInvalidPeriodKey)
}

func TestFinancialYearFor(t *testing.T) {
	// The Indian financial year runs April through March.
	assert.Equal(t, "2024-25", FinancialYearFor(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-24", FinancialYearFor(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FinancialYearFor(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", FinancialYearFor(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
}

func TestFinancialYearEnd(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		FinancialYearEnd(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		FinancialYearEnd(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}
