package storage

import "errors"

// Ошибки, общие для всех реализаций хранилищ (PostgreSQL, MongoDB, memory).
// Use case различают по ним NotFound и Conflict; всё остальное считается недоступностью хранилища.
var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("storage: room not found")

	// ErrPendingRequestNotFound возвращается, когда заявка не найдена
	ErrPendingRequestNotFound = errors.New("storage: pending request not found")

	// ErrDateAlreadyBooked возвращается, когда хотя бы одна из дат уже в списке занятых
	ErrDateAlreadyBooked = errors.New("storage: date already booked")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("storage: transaction error")

	// ErrBuildQuery возвращается при ошибке построения запроса
	ErrBuildQuery = errors.New("storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("storage: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата
	ErrScanRow = errors.New("storage: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации полей документа
	ErrEncode = errors.New("storage: failed to encode field")
)
