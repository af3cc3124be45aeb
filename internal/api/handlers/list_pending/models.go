package list_pending

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/pending/models"
)

// PendingRequestResponse заявка в ответе
type PendingRequestResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	RoomID         string `json:"roomId"`
	CheckIn        string `json:"checkIn"`
	CheckOut       string `json:"checkOut"`
	Nights         int    `json:"nights"`
	ConfirmCommand string `json:"confirmCommand"`
	RejectCommand  string `json:"rejectCommand"`
	CreatedAt      string `json:"createdAt"`
}

// PendingListResponse HTTP response model
type PendingListResponse struct {
	Requests []PendingRequestResponse `json:"requests"`
	Total    int                      `json:"total"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.PendingListResponse) *PendingListResponse {
	out := &PendingListResponse{
		Requests: make([]PendingRequestResponse, 0, len(resp.Requests)),
		Total:    len(resp.Requests),
	}
	for _, req := range resp.Requests {
		out.Requests = append(out.Requests, PendingRequestResponse{
			ID:             req.ID,
			Name:           req.Name,
			Phone:          req.Phone,
			RoomID:         req.RoomID,
			CheckIn:        req.CheckIn,
			CheckOut:       req.CheckOut,
			Nights:         req.Nights,
			ConfirmCommand: req.ConfirmCommand,
			RejectCommand:  req.RejectCommand,
			CreatedAt:      req.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
