package httperr

import "errors"

// Kind classifies a business error for transport mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindCapacity   Kind = "capacity"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Capacity(code string) error {
	return BusinessError{Kind: KindCapacity, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

// KindOf returns the business kind of err, or KindInternal for
// anything that is not a BusinessError.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
