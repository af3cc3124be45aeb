package reject_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// validateRequest проверяет команду отклонения
func validateRequest(req *Request) error {
	if !validation.IsRoomID(req.RoomID) {
		return fmt.Errorf("%w: invalid roomId %q", ErrInvalidInput, req.RoomID)
	}

	if _, err := domain.NewStay(req.CheckIn, req.CheckOut); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
