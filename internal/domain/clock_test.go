package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"14:30", NewTimeOfDay(14, 30), false},
		{"23:59:59", NewTimeOfDay(23, 59), false},
		{"24:00", 0, true},
		{"7pm", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestTimeOfDay_AddClampsToDay(t *testing.T) {
	assert.Equal(t, NewTimeOfDay(13, 45), NewTimeOfDay(14, 0).Add(-15*time.Minute))
	assert.Equal(t, NewTimeOfDay(14, 30), NewTimeOfDay(14, 0).Add(30*time.Minute))
	assert.Equal(t, TimeOfDay(0), NewTimeOfDay(0, 10).Add(-30*time.Minute))
	assert.Equal(t, NewTimeOfDay(23, 59), NewTimeOfDay(23, 50).Add(15*time.Minute))
}

func TestTimeOfDay_Valid(t *testing.T) {
	assert.True(t, TimeOfDay(0).Valid())
	assert.True(t, NewTimeOfDay(23, 59).Valid())
	assert.False(t, TimeOfDay(24*60).Valid())
	assert.False(t, TimeOfDay(-1).Valid())
}

func TestTimeOfDay_JSON(t *testing.T) {
	type payload struct {
		Pickup TimeOfDay `json:"pickup"`
	}

	b, err := json.Marshal(payload{Pickup: NewTimeOfDay(9, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pickup":"09:05"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"pickup":"18:40"}`), &p))
	assert.Equal(t, NewTimeOfDay(18, 40), p.Pickup)

	assert.Error(t, json.Unmarshal([]byte(`{"pickup":"noon"}`), &p))
}

func TestTimeOfDay_SQL(t *testing.T) {
	v, err := NewTimeOfDay(7, 3).Value()
	require.NoError(t, err)
	assert.Equal(t, "07:03:00", v)

	var tod TimeOfDay
	require.NoError(t, tod.Scan([]byte("16:20:00")))
	assert.Equal(t, NewTimeOfDay(16, 20), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 5, 45, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(5, 45), tod)

	assert.Error(t, tod.Scan(42))
}

func TestDates(t *testing.T) {
	ts := time.Date(2026, 10, 18, 23, 10, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), DateOf(ts))

	parsed, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", FormatDate(parsed))

	_, err = ParseDate("28/02/2026")
	assert.Error(t, err)
}
