package models

import "time"

// AssetAssignment is one row of the assignment ledger. Rows are created by
// assignAsset, closed by returnAsset and never deleted; at most one row per
// asset may be active at a time.
type AssetAssignment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AssetID         uint       `gorm:"index;not null" json:"asset_id"`
	UserID          uint       `gorm:"index;not null" json:"user_id"`
	AssignedBy      uint       `gorm:"not null" json:"assigned_by"`
	DateAssigned    time.Time  `gorm:"not null" json:"date_assigned"`
	DateReturned    *time.Time `json:"date_returned"`
	ReturnCondition string     `gorm:"size:255" json:"return_condition"`
	Notes           string     `gorm:"type:text" json:"notes"`
	Active          bool       `gorm:"index;not null" json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
}
