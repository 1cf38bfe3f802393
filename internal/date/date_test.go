package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-04-09", want: New(2025, time.April, 9)},
		{in: "2024-02-29", want: New(2024, time.February, 29)},
		{in: "2025-02-29", wantErr: true},
		{in: "2025-13-01", wantErr: true},
		{in: "2025-4-9", wantErr: true},
		{in: "not-a-date", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	assert.Equal(t, "2025-03-02", New(2025, time.February, 30).String())
	assert.Equal(t, "2024-12-31", New(2025, time.January, 0).String())
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestYearMonth(t *testing.T) {
	ym, err := NewYearMonth(2025, 4)
	require.NoError(t, err)
	assert.Equal(t, "2025-04", ym.String())
	assert.Equal(t, 30, ym.Days())
	assert.Equal(t, YearMonth{2025, time.March}, ym.Prev())
	assert.Equal(t, YearMonth{2024, time.December}, YearMonth{2025, time.January}.Prev())

	_, err = NewYearMonth(2025, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = NewYearMonth(2025, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	parsed, err := ParseYearMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, parsed.Days())

	_, err = ParseYearMonth("2024-2")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	assert.Equal(t, -1, YearMonth{2024, time.December}.Compare(YearMonth{2025, time.January}))
	assert.Equal(t, 1, YearMonth{2025, time.February}.Compare(YearMonth{2025, time.January}))
	assert.Equal(t, 0, ym.Compare(ym))
}

func TestDateJSON(t *testing.T) {
	d := MustParse("2025-04-15")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"2025-13-01"`), &back))
}
