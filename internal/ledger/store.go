package ledger

import (
	"context"
	"errors"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
)

// Store errors. ErrNotFound is returned by lookups that match nothing;
// ErrStale is returned by UpdateAssetStatus when the asset no longer holds
// the expected status (somebody else won the race).
var (
	ErrNotFound = errors.New("record not found")
	ErrStale    = errors.New("asset status changed concurrently")
)

// AssetFilter narrows ListAssets. Zero values mean "no constraint".
type AssetFilter struct {
	Status     string
	Category   string
	AssignedTo uint
	// Search matches name, serial number or tag number, case-insensitive.
	Search string
}

// AssignmentFilter narrows ListAssignments.
type AssignmentFilter struct {
	AssetID    uint
	UserID     uint
	ActiveOnly bool
}

// Store is the persistence port consumed by the ledger Service. Each method
// is individually atomic; multi-step operations are composed inside Transact.
// Implementations must guarantee that mutations inside a single Transact call
// are applied entirely or not at all, and that two Transact calls touching
// the same asset do not interleave.
type Store interface {
	FindAssetByID(ctx context.Context, id uint) (*models.Asset, error)
	FindAssetBySerial(ctx context.Context, serial string) (*models.Asset, error)
	FindAssetByTag(ctx context.Context, tag string) (*models.Asset, error)
	InsertAsset(ctx context.Context, a *models.Asset) error
	// UpdateAssetStatus writes the status, holder and date fields of a,
	// guarded on the asset still holding expect. Returns ErrStale otherwise.
	UpdateAssetStatus(ctx context.Context, a *models.Asset, expect string) error
	DeleteAsset(ctx context.Context, id uint) error
	ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error)

	InsertAssignment(ctx context.Context, rec *models.AssetAssignment) error
	FindActiveAssignmentForAsset(ctx context.Context, assetID uint) (*models.AssetAssignment, error)
	ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.AssetAssignment, error)
	UpdateAssignment(ctx context.Context, rec *models.AssetAssignment) error

	// ReplaceLedger swaps the entire asset register and assignment ledger
	// for the given rows, keeping their ids. Snapshot restore only.
	ReplaceLedger(ctx context.Context, assets []models.Asset, recs []models.AssetAssignment) error

	Transact(ctx context.Context, fn func(Store) error) error
}

// UserDirectory resolves holder ids. The ledger only needs existence and
// the id; account management lives elsewhere.
type UserDirectory interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}
