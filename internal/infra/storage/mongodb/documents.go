package mongodb

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// roomDocument документ коллекции rooms. Даты хранятся строками YYYY-MM-DD.
type roomDocument struct {
	ID          string            `bson:"id"`
	Name        map[string]string `bson:"name"`
	Description map[string]string `bson:"description"`
	Capacity    int               `bson:"capacity"`
	BookedDates []string          `bson:"booked_dates"`
	CreatedAt   time.Time         `bson:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

func (d *roomDocument) toDomain() (*domain.Room, error) {
	booked := domain.NewDateSet()
	for _, s := range d.BookedDates {
		date, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		booked.Add(date)
	}

	return &domain.Room{
		ID:          d.ID,
		Name:        domain.LocalizedText(d.Name),
		Description: domain.LocalizedText(d.Description),
		Capacity:    d.Capacity,
		BookedDates: booked,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// pendingDocument документ коллекции pending_requests, _id - UUID строкой
type pendingDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone"`
	RoomID    string    `bson:"room_id"`
	CheckIn   string    `bson:"check_in"`
	CheckOut  string    `bson:"check_out"`
	CreatedAt time.Time `bson:"created_at"`
}

func newPendingDocument(req *domain.PendingRequest) pendingDocument {
	return pendingDocument{
		ID:        req.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		RoomID:    req.RoomID,
		CheckIn:   req.Stay.CheckIn.String(),
		CheckOut:  req.Stay.CheckOut.String(),
		CreatedAt: req.CreatedAt,
	}
}

func (d *pendingDocument) toDomain() (*domain.PendingRequest, error) {
	checkIn, err := types.ParseDate(d.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := types.ParseDate(d.CheckOut)
	if err != nil {
		return nil, err
	}

	return &domain.PendingRequest{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		RoomID:    d.RoomID,
		Stay:      domain.Stay{CheckIn: checkIn, CheckOut: checkOut},
		CreatedAt: d.CreatedAt,
	}, nil
}
