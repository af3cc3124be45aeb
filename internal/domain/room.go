package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// LocalizedText текст на нескольких языках: код языка -> текст
type LocalizedText map[string]string

// In возвращает текст на языке lang, иначе на языке по умолчанию, иначе любой непустой
func (t LocalizedText) In(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t[DefaultLanguage]; ok && s != "" {
		return s
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// DateSet множество забронированных дат номера
type DateSet map[types.Date]struct{}

// NewDateSet создает множество из списка дат (дубликаты схлопываются)
func NewDateSet(dates ...types.Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Contains проверяет наличие даты
func (s DateSet) Contains(d types.Date) bool {
	_, ok := s[d]
	return ok
}

// Add добавляет дату. Возвращает false, если дата уже была в множестве.
func (s DateSet) Add(d types.Date) bool {
	if s.Contains(d) {
		return false
	}
	s[d] = struct{}{}
	return true
}

// Sorted возвращает даты по возрастанию
func (s DateSet) Sorted() []types.Date {
	out := make([]types.Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Clone возвращает независимую копию множества
func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Room номер гостиницы
type Room struct {
	ID          string
	Name        LocalizedText
	Description LocalizedText
	Capacity    int
	BookedDates DateSet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fits проверяет, что номер вмещает указанное количество гостей
func (r *Room) Fits(guests int) bool {
	return r.Capacity >= guests
}

// IsBooked проверяет, что дата уже забронирована
func (r *Room) IsBooked(d types.Date) bool {
	return r.BookedDates.Contains(d)
}
