package storage

import "errors"

// Ошибки серверного хранилища
var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists возвращается при попытке создать пользователя с занятым username
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrFloorNotFound возвращается, когда этаж не найден
	ErrFloorNotFound = errors.New("floor not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")
)
