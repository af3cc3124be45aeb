package handlers

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// DecisionRequest тело запроса подтверждения или отклонения заявки.
// Те же поля, что и в текстовой команде администратора.
type DecisionRequest struct {
	RoomID   string `json:"roomId"`
	Date     string `json:"date,omitempty"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
}

// Parse возвращает дату заезда и, для формы с диапазоном, дату выезда
func (r *DecisionRequest) Parse() (types.Date, *types.Date, error) {
	stay, err := domain.ParseStay(r.Date, r.CheckIn, r.CheckOut)
	if err != nil {
		return types.Date{}, nil, err
	}
	if r.Date != "" {
		return stay.CheckIn, nil, nil
	}
	return stay.CheckIn, &stay.CheckOut, nil
}

// DecisionResponse результат решения по заявке
type DecisionResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	RoomID      string   `json:"roomId"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	BookedDates []string `json:"bookedDates,omitempty"`
}

// NewDecisionResponse собирает ответ по заявке и её исходу
func NewDecisionResponse(req *domain.PendingRequest, decision domain.Decision, booked []types.Date) *DecisionResponse {
	resp := &DecisionResponse{
		ID:       req.ID,
		Status:   string(decision),
		RoomID:   req.RoomID,
		Name:     req.Name,
		Phone:    req.Phone,
		CheckIn:  req.Stay.CheckIn.String(),
		CheckOut: req.Stay.CheckOut.String(),
	}
	if len(booked) > 0 {
		resp.BookedDates = types.DateStrings(booked)
	}
	return resp
}
