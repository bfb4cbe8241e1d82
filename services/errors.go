package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrInvalidAttachmentType = errors.New("attachment type not allowed")
	ErrAttachmentTooLarge    = errors.New("attachment exceeds the 10MB limit")
	ErrDuplicateEmail        = errors.New("email is already registered")
	ErrDuplicatePhone        = errors.New("phone number is already registered")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrInvalidStatus         = errors.New("status must be approved or rejected")
)

// UploadError reports a failed object-store write. Uploads that succeeded
// before it are compensated; the caller sees this error, not the cleanup
// outcome.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for object %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError reports a relational transaction that aborted after the
// object-store writes already succeeded.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// duplicateIdentityError maps a unique-constraint violation to the identity
// field it guards. The constraint is the authoritative duplicate check; the
// pre-flight query in the validation gate can lose a race. Returns nil when
// err is not a duplicate-key error.
func duplicateIdentityError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		if strings.Contains(myErr.Message, "phone") {
			return ErrDuplicatePhone
		}
		return ErrDuplicateEmail
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return nil
}
