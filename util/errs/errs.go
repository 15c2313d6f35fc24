package errs

import (
	"errors"
	"fmt"
)

// ErrCode tags a domain error so the HTTP layer can pick a status
// without string matching.
type ErrCode string

const (
	CodeUserNotFound    ErrCode = "USER_NOT_FOUND"
	CodeItemNotFound    ErrCode = "ITEM_NOT_FOUND"
	CodeRequestNotFound ErrCode = "REQUEST_NOT_FOUND"
	CodeBookingNotFound ErrCode = "BOOKING_NOT_FOUND"
	CodeDuplicateEmail  ErrCode = "DUPLICATE_EMAIL"
	CodeNotOwner        ErrCode = "NOT_OWNER"
	CodeWrongUser       ErrCode = "WRONG_USER"
	CodeItemUnavailable ErrCode = "ITEM_UNAVAILABLE"
	CodeInvalidPeriod   ErrCode = "INVALID_PERIOD"
	CodeStatusChanged   ErrCode = "STATUS_CHANGED"
	CodeUnknownState    ErrCode = "UNKNOWN_STATE"
	CodeNotBookedBefore ErrCode = "NOT_BOOKED_BEFORE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() ErrCode { return e.code }

func New(code ErrCode, msg string) error {
	return &codedError{code: code, msg: msg}
}

func Newf(code ErrCode, format string, a ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, a...)}
}

// Code extracts the tag from anywhere in the chain. Untagged errors
// yield the empty code and are treated as internal.
func Code(err error) ErrCode {
	var c interface{ Code() ErrCode }
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}
