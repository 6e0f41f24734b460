package domain

import "github.com/google/uuid"

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// ScanID uniquely identifies a scan.
type ScanID uuid.UUID

// CompanyID uniquely identifies a company owned by a user.
type CompanyID uuid.UUID

// FindingID uniquely identifies a finding attached to a scan.
type FindingID uuid.UUID

// String returns the canonical UUID text form.
func (id ScanID) String() string { return uuid.UUID(id).String() }

// String returns the canonical UUID text form.
func (id CompanyID) String() string { return uuid.UUID(id).String() }

// String returns the canonical UUID text form.
func (id UserID) String() string { return uuid.UUID(id).String() }

// String returns the canonical UUID text form.
func (id FindingID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID as a canonical UUID string so JSON and
// text encoders emit "b60c0f2e-..." rather than a raw byte array.
func (id ScanID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *ScanID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// MarshalText encodes the ID as a canonical UUID string.
func (id CompanyID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *CompanyID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// MarshalText encodes the ID as a canonical UUID string.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *UserID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// MarshalText encodes the ID as a canonical UUID string.
func (id FindingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *FindingID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}
