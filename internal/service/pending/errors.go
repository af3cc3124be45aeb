package pending

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pending: invalid input data")

	// ErrUnavailable возвращается, когда хранилище недоступно
	ErrUnavailable = errors.New("pending: storage unavailable")
)
