package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// StatusPending статус принятой заявки: бронь еще не окончательная
const StatusPending = "pending"

// Request модель заявки гостя.
// Задается либо Date (одна ночь), либо пара CheckIn/CheckOut.
type Request struct {
	Name     string `validate:"required,min=2,max=100"` // Имя гостя
	Phone    string `validate:"required,phone"`         // Телефон, + и 10-15 цифр
	RoomID   string `validate:"required,room_id"`       // ID номера
	Date     string // Одна ночь (YYYY-MM-DD)
	CheckIn  string // Дата заезда
	CheckOut string // Дата выезда
}

// Response модель ответа: заявка принята и ждет решения администратора
type Response struct {
	ID        string
	RoomID    string
	Stay      domain.Stay
	Status    string
	Notified  bool // Уведомление администратору доставлено сразу
	CreatedAt time.Time
}

// Результаты для метрик
const (
	resultAccepted    = "accepted"
	resultInvalid     = "invalid"
	resultNotFound    = "not_found"
	resultConflict    = "conflict"
	resultUnavailable = "unavailable"

	notificationSent   = "sent"
	notificationQueued = "queued"
	notificationFailed = "failed"
)
