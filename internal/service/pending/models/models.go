package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// PendingRequestResponse заявка для администратора
type PendingRequestResponse struct {
	ID             string
	Name           string
	Phone          string
	RoomID         string
	CheckIn        string
	CheckOut       string
	Nights         int
	ConfirmCommand string
	RejectCommand  string
	CreatedAt      time.Time
}

// PendingListResponse список заявок от старых к новым
type PendingListResponse struct {
	Requests []PendingRequestResponse
}

// FromDomainPendingRequest конвертирует доменную заявку в модель ответа
func FromDomainPendingRequest(req *domain.PendingRequest) PendingRequestResponse {
	return PendingRequestResponse{
		ID:             req.ID,
		Name:           req.Name,
		Phone:          req.Phone,
		RoomID:         req.RoomID,
		CheckIn:        req.Stay.CheckIn.String(),
		CheckOut:       req.Stay.CheckOut.String(),
		Nights:         req.Stay.CheckIn.DaysUntil(req.Stay.CheckOut),
		ConfirmCommand: domain.FormatDecisionCommand(domain.ActionConfirm, req.RoomID, req.Stay),
		RejectCommand:  domain.FormatDecisionCommand(domain.ActionReject, req.RoomID, req.Stay),
		CreatedAt:      req.CreatedAt,
	}
}

// FromDomainPendingRequests конвертирует список заявок
func FromDomainPendingRequests(reqs []*domain.PendingRequest) *PendingListResponse {
	resp := &PendingListResponse{Requests: make([]PendingRequestResponse, 0, len(reqs))}
	for _, req := range reqs {
		resp.Requests = append(resp.Requests, FromDomainPendingRequest(req))
	}
	return resp
}
