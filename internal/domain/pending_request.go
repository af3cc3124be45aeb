package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// PendingRequest заявка гостя, ожидающая решения администратора.
// После создания не изменяется: подтверждение, отклонение или истечение срока её удаляют.
type PendingRequest struct {
	ID        string
	Name      string
	Phone     string
	RoomID    string
	Stay      Stay
	CreatedAt time.Time
}

// PendingFilter поиск заявки по номеру и дате заезда (ключ, который администратор указывает в команде)
type PendingFilter struct {
	RoomID   string
	CheckIn  types.Date
	CheckOut *types.Date // Уточнение для диапазона (опционально)
}

// Matches проверяет, подходит ли заявка под фильтр
func (f PendingFilter) Matches(req *PendingRequest) bool {
	if req.RoomID != f.RoomID || !req.Stay.CheckIn.Equal(f.CheckIn) {
		return false
	}
	return f.CheckOut == nil || req.Stay.CheckOut.Equal(*f.CheckOut)
}

// Decision исход заявки
type Decision string

const (
	DecisionConfirmed Decision = "confirmed"
	DecisionRejected  Decision = "rejected"
	DecisionExpired   Decision = "expired"
)
