package domain

// Ограничения бизнес-валидации
const (
	MinGuestNameLength = 2
	MaxGuestNameLength = 100
	MinGuests          = 1
	MaxStayNights      = 60 // ограничивает разворачивание диапазона по дням
	DefaultListLimit   = 50
	MaxListLimit       = 500
)

// Языки локализованных описаний номеров
const (
	LangRU = "ru"
	LangUZ = "uz"
	LangEN = "en"
)

// DefaultLanguage язык, используемый в сообщениях администратору
const DefaultLanguage = LangRU

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"
