package submit_booking

import (
	"time"

	submitBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	RoomID   string `json:"roomId"`
	Date     string `json:"date,omitempty"`     // "2024-06-01"
	CheckIn  string `json:"checkIn,omitempty"`  // "2024-06-01"
	CheckOut string `json:"checkOut,omitempty"` // "2024-06-03"
}

// SubmitBookingResponse HTTP response model: заявка принята, бронь не окончательная
type SubmitBookingResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	RoomID    string `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Notified  bool   `json:"adminNotified"`
	CreatedAt string `json:"createdAt"`
	Message   string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() *submitBooking.Request {
	return &submitBooking.Request{
		Name:     r.Name,
		Phone:    r.Phone,
		RoomID:   r.RoomID,
		Date:     r.Date,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		ID:        resp.ID,
		Status:    resp.Status,
		RoomID:    resp.RoomID,
		CheckIn:   resp.Stay.CheckIn.String(),
		CheckOut:  resp.Stay.CheckOut.String(),
		Notified:  resp.Notified,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		Message:   msgAccepted,
	}
}
