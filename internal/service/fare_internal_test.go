package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dispatch/internal/domain"
)

func TestRoundKm(t *testing.T) {
	testCases := []struct {
		meters int64
		want   string
	}{
		{0, "0"},
		{1, "0"},
		{4, "0"},
		{5, "0.01"},
		{12_504, "12.5"},
		{12_505, "12.51"},
		{999_999, "1000"},
	}

	for _, tc := range testCases {
		got := RoundKm(tc.meters)
		assert.True(t, got.Equal(d(tc.want)), "%d m: got %s, want %s", tc.meters, got, tc.want)
	}
}

func TestSelectSlab(t *testing.T) {
	slabs := []domain.CommissionSlab{
		{ID: "b", FromKm: d("10"), ToKm: d("20"), CommissionPercentage: d("15")},
		{ID: "a", FromKm: d("0"), ToKm: d("10"), CommissionPercentage: d("20")},
		{ID: "c", FromKm: d("10"), ToKm: d("30"), CommissionPercentage: d("12")},
	}

	s, ok := selectSlab(slabs, d("10"))
	assert.True(t, ok)
	assert.Equal(t, "a", s.ID, "lower FromKm wins on a shared boundary")

	s, ok = selectSlab(slabs, d("15"))
	assert.True(t, ok)
	assert.Equal(t, "b", s.ID, "equal FromKm falls back to ID order")

	s, ok = selectSlab(slabs, d("25"))
	assert.True(t, ok)
	assert.Equal(t, "c", s.ID)

	_, ok = selectSlab(slabs, d("30.01"))
	assert.False(t, ok)

	_, ok = selectSlab(nil, d("1"))
	assert.False(t, ok)
}
