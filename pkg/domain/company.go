package domain

import "time"

// Company is the quota unit scans are attached to. A user may own several
// companies depending on their plan. Relations to scans and subscriptions are
// id-based foreign keys resolved through storage, never embedded graphs.
type Company struct {
	// ID is the unique identifier of the company.
	ID CompanyID `json:"id"`
	// OwnerUserID identifies the user who registered the company.
	OwnerUserID UserID `json:"ownerUserId"`

	// Name is the display name of the company.
	Name string `json:"name"`

	// CreatedAt is when the company was registered.
	CreatedAt time.Time `json:"createdAt"`
}
