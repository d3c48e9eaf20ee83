package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudget(t *testing.T) {
	maxValue := "340282366920938463463374607431768211455"

	b, err := ParseBudget(maxValue)
	require.NoError(t, err)
	assert.Equal(t, maxValue, b.String())
	_, fits := b.Uint64()
	assert.False(t, fits)

	_, err = ParseBudget("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, ErrInvalidBudget)

	for _, bad := range []string{"", "-1", "+1", "1.5", "12a", " 1"} {
		_, err := ParseBudget(bad)
		assert.ErrorIs(t, err, ErrInvalidBudget, bad)
	}
}

func TestBudgetZeroValue(t *testing.T) {
	var b Budget
	assert.Equal(t, "0", b.String())
	assert.True(t, b.Equal(NewBudget(0)))
}

func TestBudgetJSON(t *testing.T) {
	data, err := json.Marshal(NewBudget(200))
	require.NoError(t, err)
	assert.Equal(t, `"200"`, string(data))

	var fromNumber, fromString Budget
	require.NoError(t, json.Unmarshal([]byte(`200`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"200"`), &fromString))
	assert.True(t, fromNumber.Equal(fromString))

	var bad Budget
	assert.Error(t, json.Unmarshal([]byte(`-5`), &bad))
}

func TestBudgetScan(t *testing.T) {
	var b Budget
	require.NoError(t, b.Scan([]byte("42")))
	assert.Equal(t, "42", b.String())
	require.NoError(t, b.Scan(int64(7)))
	assert.Equal(t, "7", b.String())
	assert.Error(t, b.Scan(int64(-7)))
	assert.Error(t, b.Scan(3.5))

	v, err := NewBudget(9).Value()
	require.NoError(t, err)
	assert.Equal(t, "9", v)
}
