package mongodb

import "errors"

// ErrConnect возвращается, когда подключиться к MongoDB не удалось за отведенное число попыток
var ErrConnect = errors.New("mongodb: failed to connect")
