// Package uuid wraps github.com/google/uuid so that UUIDs can be bound
// from URI path segments and query strings by gin.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler.
//
// An empty parameter is the Nil UUID, which matches no resource.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return errors.Join(ErrInvalid, err)
	}

	*u = UUID{parsed}
	return nil
}

// IsNil reports whether the UUID is the zero UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}
