package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
)

// ValidationError carries a caller-facing message and matches ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// validation collects field errors and folds them into one ValidationError.
type validation struct {
	errs *multierror.Error
}

func (v *validation) check(ok bool, format string, args ...interface{}) {
	if !ok {
		v.errs = multierror.Append(v.errs, fmt.Errorf(format, args...))
	}
}

func (v *validation) err() error {
	if v.errs == nil || len(v.errs.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(v.errs.Errors))
	for _, e := range v.errs.Errors {
		msgs = append(msgs, e.Error())
	}
	return &ValidationError{Msg: strings.Join(msgs, "; ")}
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// translate maps GORM errors onto the service taxonomy.
func translate(err error, entity string, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict("%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return conflict("%s is still referenced", entity)
	default:
		return err
	}
}
