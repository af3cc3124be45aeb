package search_rooms

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// Request модель запроса поиска свободных номеров.
// Задается либо Date (одна ночь), либо пара CheckIn/CheckOut.
type Request struct {
	Guests   int    `validate:"min=1"` // Количество гостей
	Date     string // Одна ночь (YYYY-MM-DD)
	CheckIn  string // Дата заезда
	CheckOut string // Дата выезда (ночь выезда не включается)
}

// Response модель ответа со списком свободных номеров
type Response struct {
	Stay  domain.Stay
	Rooms []Room
}

// Room номер в выдаче поиска
type Room struct {
	ID          string
	Name        domain.LocalizedText
	Description domain.LocalizedText
	Capacity    int
}
