package search_rooms

import (
	searchRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/search_rooms"
)

// SearchRoomsRequest HTTP request model.
// Либо date, либо checkIn + checkOut.
type SearchRoomsRequest struct {
	Guests   int    `json:"guests"`
	Date     string `json:"date,omitempty"`     // "2024-06-01"
	CheckIn  string `json:"checkIn,omitempty"`  // "2024-06-01"
	CheckOut string `json:"checkOut,omitempty"` // "2024-06-03"
}

// RoomResponse номер в выдаче
type RoomResponse struct {
	ID          string            `json:"id"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Capacity    int               `json:"capacity"`
}

// SearchRoomsResponse HTTP response model
type SearchRoomsResponse struct {
	CheckIn  string         `json:"checkIn"`
	CheckOut string         `json:"checkOut"`
	Rooms    []RoomResponse `json:"rooms"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SearchRoomsRequest) ToUseCaseRequest() *searchRooms.Request {
	return &searchRooms.Request{
		Guests:   r.Guests,
		Date:     r.Date,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRooms.Response) *SearchRoomsResponse {
	rooms := make([]RoomResponse, 0, len(resp.Rooms))
	for _, room := range resp.Rooms {
		rooms = append(rooms, RoomResponse{
			ID:          room.ID,
			Name:        nonNil(room.Name),
			Description: nonNil(room.Description),
			Capacity:    room.Capacity,
		})
	}

	return &SearchRoomsResponse{
		CheckIn:  resp.Stay.CheckIn.String(),
		CheckOut: resp.Stay.CheckOut.String(),
		Rooms:    rooms,
	}
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
