package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"
	TooManyRequests     failure.ErrorCode = "TooManyRequests"

	// Рынок
	MissingItem        failure.ErrorCode = "MissingItem"
	InvalidQuantity    failure.ErrorCode = "InvalidQuantity"
	InvalidSide        failure.ErrorCode = "InvalidSide"
	InvalidRecentLimit failure.ErrorCode = "InvalidRecentLimit"
	StateLoadFailed    failure.ErrorCode = "StateLoadFailed"
	StateSaveFailed    failure.ErrorCode = "StateSaveFailed"
	LedgerLoadFailed   failure.ErrorCode = "LedgerLoadFailed"
	LedgerAppendFailed failure.ErrorCode = "LedgerAppendFailed"
)
