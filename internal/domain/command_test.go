package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func TestParseDecisionCommand(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantErr      error
		wantAction   CommandAction
		wantRoom     string
		wantCheckIn  string
		wantCheckOut string
	}{
		{name: "single date", text: "/confirm 1 2024-06-01", wantAction: ActionConfirm, wantRoom: "1", wantCheckIn: "2024-06-01"},
		{name: "range", text: "/reject 3 2024-06-01 2024-06-04", wantAction: ActionReject, wantRoom: "3", wantCheckIn: "2024-06-01", wantCheckOut: "2024-06-04"},
		{name: "bot suffix and extra spaces", text: "  /confirm@hotel_bot   2\t2024-06-01 ", wantAction: ActionConfirm, wantRoom: "2", wantCheckIn: "2024-06-01"},
		{name: "upper case", text: "/CONFIRM 1 2024-06-01", wantAction: ActionConfirm, wantRoom: "1", wantCheckIn: "2024-06-01"},
		{name: "missing date", text: "/confirm 1", wantErr: ErrCommandUsage},
		{name: "too many args", text: "/confirm 1 2024-06-01 2024-06-02 2024-06-03", wantErr: ErrCommandUsage},
		{name: "bad date", text: "/confirm 1 01.06.2024", wantErr: ErrCommandUsage},
		{name: "empty range", text: "/confirm 1 2024-06-01 2024-06-01", wantErr: ErrCommandUsage},
		{name: "other command", text: "/start", wantErr: ErrUnknownCommand},
		{name: "not a command", text: "confirm 1 2024-06-01", wantErr: ErrUnknownCommand},
		{name: "empty", text: "", wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseDecisionCommand(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cmd)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, cmd.Action)
			assert.Equal(t, tt.wantRoom, cmd.RoomID)
			assert.Equal(t, tt.wantCheckIn, cmd.CheckIn.String())
			if tt.wantCheckOut == "" {
				assert.Nil(t, cmd.CheckOut)
			} else {
				require.NotNil(t, cmd.CheckOut)
				assert.Equal(t, tt.wantCheckOut, cmd.CheckOut.String())
			}
		})
	}
}

func TestFormatDecisionCommand_RoundTrip(t *testing.T) {
	single := SingleNightStay(types.MustParseDate("2024-06-01"))
	rng, err := NewStay(types.MustParseDate("2024-06-01"), ptr.Ptr(types.MustParseDate("2024-06-05")))
	require.NoError(t, err)

	assert.Equal(t, "/confirm 1 2024-06-01", FormatDecisionCommand(ActionConfirm, "1", single))
	assert.Equal(t, "/reject 1 2024-06-01 2024-06-05", FormatDecisionCommand(ActionReject, "1", rng))

	for _, stay := range []Stay{single, rng} {
		cmd, err := ParseDecisionCommand(FormatDecisionCommand(ActionConfirm, "family-1", stay))
		require.NoError(t, err)
		assert.Equal(t, "family-1", cmd.RoomID)
		assert.Equal(t, stay, cmd.Stay())
	}
}

func TestPendingFilter_Matches(t *testing.T) {
	req := &PendingRequest{
		RoomID: "1",
		Stay:   Stay{CheckIn: types.MustParseDate("2024-06-01"), CheckOut: types.MustParseDate("2024-06-03")},
	}

	assert.True(t, PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01")}.Matches(req))
	assert.True(t, PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01"), CheckOut: ptr.Ptr(types.MustParseDate("2024-06-03"))}.Matches(req))
	assert.False(t, PendingFilter{RoomID: "1", CheckIn: types.MustParseDate("2024-06-01"), CheckOut: ptr.Ptr(types.MustParseDate("2024-06-02"))}.Matches(req))
	assert.False(t, PendingFilter{RoomID: "2", CheckIn: types.MustParseDate("2024-06-01")}.Matches(req))
}
