package domain

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// AppError представляет доменную ошибку инфраструктуры (хранилища, очереди).
// Ошибки валидации строятся через failure и сюда не попадают.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) PublicCode() failure.ErrorCode {
	return e.Code
}

// PublicMessage — сообщение для клиента, без причины.
func (e *AppError) PublicMessage() string {
	return e.Message
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}
