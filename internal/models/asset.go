package models

import "time"

// Asset statuses. Assign/return only ever move an asset between available
// and assigned; maintenance and retired are set by administrative override
// and suspend ledger operations until cleared.
const (
	AssetAvailable   = "available"
	AssetAssigned    = "assigned"
	AssetMaintenance = "maintenance"
	AssetRetired     = "retired"
)

// Asset is a trackable physical item. SerialNumber is supplied by the
// caller and unique for all time; TagNumber is issued by the ledger at
// creation and never changes.
type Asset struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Category     string     `gorm:"size:100;index;not null" json:"category"`
	SerialNumber string     `gorm:"size:100;uniqueIndex;not null" json:"serial_number"`
	TagNumber    string     `gorm:"size:100;uniqueIndex;not null" json:"tag_number"`
	Status       string     `gorm:"size:32;index;not null;default:available" json:"status"`
	AssignedTo   *uint      `gorm:"index" json:"assigned_to"`
	AssignedDate *time.Time `json:"assigned_date"`
	ReturnDate   *time.Time `json:"return_date"`
	PurchaseDate *time.Time `json:"purchase_date"`
	PurchaseCost *float64   `json:"purchase_cost"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
