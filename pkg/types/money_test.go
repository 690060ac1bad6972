package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected Money
		wantErr  bool
	}{
		{input: "50", expected: 5000},
		{input: "50.5", expected: 5050},
		{input: "50.00", expected: 5000},
		{input: "0.01", expected: 1},
		{input: "-1.25", expected: -125},
		{input: "12.3400", expected: 1234},
		{input: "12.345", wantErr: true},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "50.00", Money(5000).String())
	assert.Equal(t, "0.07", Money(7).String())
	assert.Equal(t, "-3.10", Money(-310).String())
}

func TestMoney_MulRatio(t *testing.T) {
	rate := Money(5000) // 50.00 в час

	assert.Equal(t, Money(5000), rate.MulRatio(60, 60))
	assert.Equal(t, Money(2500), rate.MulRatio(30, 60))
	assert.Equal(t, Money(20000), rate.MulRatio(240, 60))
	// 45.55 * 50 / 60 = 37.958(3) → 37.96
	assert.Equal(t, Money(3796), Money(4555).MulRatio(50, 60))
	// ровно половина округляется к четному: 0.5 → 0, 1.5 → 2
	assert.Equal(t, Money(0), Money(1).MulRatio(1, 2))
	assert.Equal(t, Money(2), Money(3).MulRatio(1, 2))
}

func TestMoney_Scan(t *testing.T) {
	var m Money

	require.NoError(t, m.Scan([]byte("123.45")))
	assert.Equal(t, Money(12345), m)

	require.NoError(t, m.Scan("7"))
	assert.Equal(t, Money(700), m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Money(0), m)

	assert.Error(t, m.Scan(true))

	v, err := Money(4000).Value()
	require.NoError(t, err)
	assert.Equal(t, "40.00", v)
}

func TestMoney_JSON(t *testing.T) {
	payload := struct {
		Amount Money `json:"amount"`
	}{Amount: 5000}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 50.00}`, string(data))

	var decoded struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "12.5"}`), &decoded))
	assert.Equal(t, Money(1250), decoded.Amount)
}
