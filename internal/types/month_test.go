package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/condofacil/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2024-07", types.NewMonth(2024, 7).String())
	assert.Equal(t, "0001-12", types.NewMonth(1, 12).String())
}

func TestMonthMarshalJSON(t *testing.T) {
	data, err := json.Marshal(types.NewMonth(2024, 7))
	assert.NoError(t, err)
	assert.Equal(t, `"2024-07"`, string(data))
}

func TestMonthUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Month
	}{
		{`"2024-07"`, types.NewMonth(2024, 7)},
		{`"2024-07-15"`, types.NewMonth(2024, 7)},
		{`"2024-07-15T12:30:00Z"`, types.NewMonth(2024, 7)},
	}

	for _, tt := range tests {
		var month types.Month
		err := json.Unmarshal([]byte(tt.input), &month)
		assert.NoError(t, err, "input %s", tt.input)
		assert.True(t, tt.expected.Equal(month), "input %s parsed to %s", tt.input, month)
	}

	var month types.Month
	assert.Error(t, json.Unmarshal([]byte(`"definitely-not-a-month"`), &month))
}

func TestParseMonth(t *testing.T) {
	month, err := types.ParseMonth("2024-07")
	assert.NoError(t, err)
	assert.True(t, types.NewMonth(2024, 7).Equal(month))

	_, err = types.ParseMonth("2024-7")
	assert.Error(t, err)
}

func TestMonthOf(t *testing.T) {
	month := types.MonthOf(time.Date(2024, 7, 15, 13, 37, 0, 0, time.UTC))
	assert.True(t, types.NewMonth(2024, 7).Equal(month))
}

func TestMonthAddDate(t *testing.T) {
	month := types.NewMonth(2024, 12).AddDate(0, 1)
	assert.True(t, types.NewMonth(2025, 1).Equal(month))
}

func TestMonthComparisons(t *testing.T) {
	july := types.NewMonth(2024, 7)
	august := types.NewMonth(2024, 8)

	assert.True(t, july.Before(august))
	assert.True(t, august.After(july))
	assert.False(t, july.Equal(august))
	assert.True(t, july.Contains(time.Date(2024, 7, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, july.Contains(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthIsZero(t *testing.T) {
	var month types.Month
	assert.True(t, month.IsZero())
	assert.False(t, types.NewMonth(2024, 7).IsZero())
}
