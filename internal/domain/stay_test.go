package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func TestNewStay(t *testing.T) {
	d := types.MustParseDate

	tests := []struct {
		name       string
		checkIn    types.Date
		checkOut   *types.Date
		wantErr    error
		wantNights []string
		variant    StayVariant
	}{
		{
			name:       "single date becomes one night",
			checkIn:    d("2024-06-01"),
			wantNights: []string{"2024-06-01"},
			variant:    SingleNight,
		},
		{
			name:       "minimum range is one night",
			checkIn:    d("2024-06-01"),
			checkOut:   ptr.Ptr(d("2024-06-02")),
			wantNights: []string{"2024-06-01"},
			variant:    SingleNight,
		},
		{
			name:       "range expands over month boundary",
			checkIn:    d("2024-06-29"),
			checkOut:   ptr.Ptr(d("2024-07-02")),
			wantNights: []string{"2024-06-29", "2024-06-30", "2024-07-01"},
			variant:    RangeStay,
		},
		{
			name:     "checkOut equal to checkIn is rejected",
			checkIn:  d("2024-06-01"),
			checkOut: ptr.Ptr(d("2024-06-01")),
			wantErr:  ErrInvalidStay,
		},
		{
			name:     "checkOut before checkIn is rejected",
			checkIn:  d("2024-06-05"),
			checkOut: ptr.Ptr(d("2024-06-01")),
			wantErr:  ErrInvalidStay,
		},
		{
			name:    "zero checkIn is rejected",
			wantErr: ErrInvalidStay,
		},
		{
			name:     "too long",
			checkIn:  d("2024-01-01"),
			checkOut: ptr.Ptr(d("2024-01-01").AddDays(MaxStayNights + 1)),
			wantErr:  ErrStayTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := NewStay(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, types.DateStrings(stay.Nights()))
			assert.Equal(t, tt.variant, stay.Variant())
		})
	}
}

func TestStay_String(t *testing.T) {
	single := SingleNightStay(types.MustParseDate("2024-06-01"))
	assert.Equal(t, "2024-06-01", single.String())

	rng, err := NewStay(types.MustParseDate("2024-06-01"), ptr.Ptr(types.MustParseDate("2024-06-03")))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01..2024-06-03", rng.String())
}

func TestDateSet(t *testing.T) {
	s := NewDateSet(types.MustParseDate("2024-06-02"), types.MustParseDate("2024-06-01"), types.MustParseDate("2024-06-02"))

	assert.Len(t, s, 2)
	assert.False(t, s.Add(types.MustParseDate("2024-06-01")))
	assert.True(t, s.Add(types.MustParseDate("2024-06-03")))
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, types.DateStrings(s.Sorted()))

	clone := s.Clone()
	clone.Add(types.MustParseDate("2024-06-04"))
	assert.Len(t, s, 3)
}

func TestLocalizedText_In(t *testing.T) {
	text := LocalizedText{LangRU: "Семейный люкс", LangEN: "Family Suite"}

	assert.Equal(t, "Family Suite", text.In(LangEN))
	assert.Equal(t, "Семейный люкс", text.In(LangUZ))
	assert.Equal(t, "Family Suite", LocalizedText{LangEN: "Family Suite"}.In(LangUZ))
	assert.Equal(t, "", LocalizedText{}.In(LangRU))
}

func TestParseStay(t *testing.T) {
	tests := []struct {
		name                    string
		date, checkIn, checkOut string
		want                    string
		wantErr                 bool
	}{
		{name: "single date", date: "2024-06-01", want: "2024-06-01"},
		{name: "range", checkIn: "2024-06-01", checkOut: "2024-06-03", want: "2024-06-01..2024-06-03"},
		{name: "mixed forms", date: "2024-06-01", checkIn: "2024-06-01", wantErr: true},
		{name: "checkIn without checkOut", checkIn: "2024-06-01", wantErr: true},
		{name: "nothing", wantErr: true},
		{name: "bad date", date: "01/06/2024", wantErr: true},
		{name: "impossible date", date: "2024-02-30", wantErr: true},
		{name: "empty range", checkIn: "2024-06-01", checkOut: "2024-06-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := ParseStay(tt.date, tt.checkIn, tt.checkOut)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stay.String())
		})
	}
}
