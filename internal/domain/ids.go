package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// ID is an opaque 128-bit entity identity, generated at creation time.
type ID uuid.UUID

// NilID is the zero ID, used to mean "no reference" in optional fields.
var NilID ID

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses a canonical UUID string into an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("domain.ParseID: %q: %w", s, err)
	}
	return ID(u), nil
}

// String renders the canonical UUID representation.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero value.
func (id ID) IsNil() bool {
	return id == NilID
}

// Value implements driver.Valuer.
func (id ID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = NilID
		return nil
	case string:
		if v == "" {
			*id = NilID
			return nil
		}
		parsed, err := ParseID(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case []byte:
		return id.Scan(string(v))
	default:
		return fmt.Errorf("domain.ID.Scan: unsupported type %T", src)
	}
}
