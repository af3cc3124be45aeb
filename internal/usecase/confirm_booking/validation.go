package confirm_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/validation"
)

// validateRequest проверяет команду и возвращает интервал, на который она ссылается
func validateRequest(req *Request) (domain.Stay, error) {
	if !validation.IsRoomID(req.RoomID) {
		return domain.Stay{}, fmt.Errorf("%w: invalid roomId %q", ErrInvalidInput, req.RoomID)
	}

	stay, err := domain.NewStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return stay, nil
}

// filter фильтр поиска заявки по команде
func filter(req *Request) domain.PendingFilter {
	return domain.PendingFilter{RoomID: req.RoomID, CheckIn: req.CheckIn, CheckOut: req.CheckOut}
}
