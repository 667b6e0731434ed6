package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = NewTimeStringFromString("9:30")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), ts)

	ts, err = NewTimeStringFromMinutes(9*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(23*60 + 59)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), ts)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("14:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+45, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("garbage").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), ts)

	ts, err = TimeString("09:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:00"), ts)

	// Выход за пределы суток недопустим
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("09:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("10:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name    string
		a       [2]TimeString
		b       [2]TimeString
		overlap bool
	}{
		{"partial overlap", [2]TimeString{"09:00", "10:00"}, [2]TimeString{"09:30", "10:30"}, true},
		{"containment", [2]TimeString{"09:00", "12:00"}, [2]TimeString{"10:00", "11:00"}, true},
		{"identical", [2]TimeString{"09:00", "10:00"}, [2]TimeString{"09:00", "10:00"}, true},
		{"touching endpoints disjoint", [2]TimeString{"09:00", "10:00"}, [2]TimeString{"10:00", "11:00"}, false},
		{"fully disjoint", [2]TimeString{"09:00", "10:00"}, [2]TimeString{"11:00", "12:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RangesOverlap(tt.a[0], tt.a[1], tt.b[0], tt.b[1])
			require.NoError(t, err)
			assert.Equal(t, tt.overlap, got)

			// Симметрия: порядок аргументов не влияет на результат
			sym, err := RangesOverlap(tt.b[0], tt.b[1], tt.a[0], tt.a[1])
			require.NoError(t, err)
			assert.Equal(t, tt.overlap, sym)
		})
	}

	_, err := RangesOverlap("bad", "10:00", "09:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30"))
	assert.Equal(t, TimeString("09:30"), ts)

	// PostgreSQL TIME возвращает секунды
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 2, 18, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestValue(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
