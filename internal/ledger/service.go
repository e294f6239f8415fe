package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
)

// returnNoteSeparator joins notes appended at return time to whatever was
// recorded at assignment time. Return notes are never silently dropped.
const returnNoteSeparator = "; Return: "

// Service owns asset records and their assignment history. All status
// transitions between available and assigned go through AssignAsset and
// ReturnAsset; nothing else flips those states.
type Service struct {
	store    Store
	users    UserDirectory
	registry string
	now      func() time.Time
}

// New builds a Service on top of a persistence port and a user directory.
// registry is the fixed tag registry key, e.g. "WERK".
func New(store Store, users UserDirectory, registry string) *Service {
	return &Service{
		store:    store,
		users:    users,
		registry: registry,
		now:      time.Now,
	}
}

type CreateAssetInput struct {
	Name         string
	Category     string
	SerialNumber string
	Description  string
	PurchaseDate *time.Time
	PurchaseCost *float64
}

// CreateAsset registers a new asset as available and issues it a unique tag
// number. The serial number must be unique across all assets for all time,
// retired ones included.
func (s *Service) CreateAsset(ctx context.Context, in CreateAssetInput) (*models.Asset, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)

	if in.Name == "" || in.Category == "" || in.SerialNumber == "" {
		return nil, validation(CodeInvalidParam, "name, category and serial number are required")
	}

	asset := &models.Asset{
		Name:         in.Name,
		Category:     in.Category,
		SerialNumber: in.SerialNumber,
		Status:       models.AssetAvailable,
		PurchaseDate: in.PurchaseDate,
		PurchaseCost: in.PurchaseCost,
		Description:  in.Description,
	}

	err := s.store.Transact(ctx, func(tx Store) error {
		_, err := tx.FindAssetBySerial(ctx, in.SerialNumber)
		switch {
		case err == nil:
			return conflict(CodeDuplicateSerial, "asset with serial number %q already exists", in.SerialNumber)
		case !errors.Is(err, ErrNotFound):
			return persistence(err, "look up serial number")
		}

		tag, err := s.issueTag(ctx, tx, in.Category)
		if err != nil {
			return err
		}
		asset.TagNumber = tag

		if err := tx.InsertAsset(ctx, asset); err != nil {
			return persistence(err, "insert asset")
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return asset, nil
}

// issueTag generates tag candidates until one is unused, bounded by
// tagAttempts. Runs inside the caller's transaction so the uniqueness check
// and the insert cannot be split by a concurrent create.
func (s *Service) issueTag(ctx context.Context, tx Store, category string) (string, error) {
	for i := 0; i < tagAttempts; i++ {
		tag := newTagNumber(s.registry, category)
		_, err := tx.FindAssetByTag(ctx, tag)
		if errors.Is(err, ErrNotFound) {
			return tag, nil
		}
		if err != nil {
			return "", persistence(err, "look up tag number")
		}
	}
	return "", conflict(CodeTagExhausted, "could not generate a unique tag number after %d attempts", tagAttempts)
}

// DeleteAsset removes an asset permanently. Assigned assets must be
// returned first; assignment history rows are kept.
func (s *Service) DeleteAsset(ctx context.Context, assetID uint) error {
	err := s.store.Transact(ctx, func(tx Store) error {
		asset, err := tx.FindAssetByID(ctx, assetID)
		if errors.Is(err, ErrNotFound) {
			return notFound(CodeAssetNotFound, "asset %d not found", assetID)
		}
		if err != nil {
			return persistence(err, "look up asset")
		}

		if asset.Status == models.AssetAssigned {
			return conflict(CodeAssetAssigned, "cannot delete assigned asset, return it first")
		}

		if err := tx.DeleteAsset(ctx, assetID); err != nil {
			return persistence(err, "delete asset")
		}
		return nil
	})
	return s.wrap(err)
}

type AssignAssetInput struct {
	AssetID    uint
	UserID     uint
	AssignedBy uint
	Notes      string
}

// AssignAsset hands an available asset to a user: one new active ledger row
// plus the asset flipping to assigned, as a single atomic unit. For any
// asset at most one AssignAsset call can succeed without an intervening
// ReturnAsset.
func (s *Service) AssignAsset(ctx context.Context, in AssignAssetInput) (*models.AssetAssignment, error) {
	if in.AssetID == 0 || in.UserID == 0 || in.AssignedBy == 0 {
		return nil, validation(CodeInvalidParam, "asset id, user id and assigned-by are required")
	}

	if _, err := s.users.FindUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(CodeUserNotFound, "user %d not found", in.UserID)
		}
		return nil, persistence(err, "look up user")
	}

	now := s.now()
	rec := &models.AssetAssignment{
		AssetID:      in.AssetID,
		UserID:       in.UserID,
		AssignedBy:   in.AssignedBy,
		DateAssigned: now,
		Notes:        in.Notes,
		Active:       true,
	}

	err := s.store.Transact(ctx, func(tx Store) error {
		asset, err := tx.FindAssetByID(ctx, in.AssetID)
		if errors.Is(err, ErrNotFound) {
			return notFound(CodeAssetNotFound, "asset %d not found", in.AssetID)
		}
		if err != nil {
			return persistence(err, "look up asset")
		}

		if asset.Status != models.AssetAvailable {
			return conflict(CodeAssetUnavailable, "asset %d is %s, not available for assignment", asset.ID, asset.Status)
		}

		if err := tx.InsertAssignment(ctx, rec); err != nil {
			return persistence(err, "insert assignment record")
		}

		asset.Status = models.AssetAssigned
		asset.AssignedTo = &in.UserID
		asset.AssignedDate = &now
		if err := tx.UpdateAssetStatus(ctx, asset, models.AssetAvailable); err != nil {
			if errors.Is(err, ErrStale) {
				return conflict(CodeAssetUnavailable, "asset %d was assigned concurrently", asset.ID)
			}
			return persistence(err, "update asset status")
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return rec, nil
}

type ReturnAssetInput struct {
	AssetID         uint
	ReturnCondition string
	Notes           string
}

// ReturnAsset closes the single active ledger row for the asset and makes
// the asset available again, atomically. Return notes are appended to the
// row's existing notes, never replacing them.
func (s *Service) ReturnAsset(ctx context.Context, in ReturnAssetInput) error {
	if in.AssetID == 0 {
		return validation(CodeInvalidParam, "asset id is required")
	}

	now := s.now()
	err := s.store.Transact(ctx, func(tx Store) error {
		asset, err := tx.FindAssetByID(ctx, in.AssetID)
		if errors.Is(err, ErrNotFound) {
			return notFound(CodeAssetNotFound, "asset %d not found", in.AssetID)
		}
		if err != nil {
			return persistence(err, "look up asset")
		}

		if asset.Status != models.AssetAssigned {
			return conflict(CodeAssetNotAssigned, "asset %d is %s, not currently assigned", asset.ID, asset.Status)
		}

		rec, err := tx.FindActiveAssignmentForAsset(ctx, asset.ID)
		if errors.Is(err, ErrNotFound) {
			// Assigned asset without an active ledger row: a broken
			// invariant we refuse to paper over.
			return &Error{
				Kind:    KindPersistence,
				Code:    CodeAssignmentNotFound,
				Message: fmt.Sprintf("asset %d is assigned but has no active assignment record", asset.ID),
			}
		}
		if err != nil {
			return persistence(err, "look up active assignment")
		}

		rec.Active = false
		rec.DateReturned = &now
		rec.ReturnCondition = in.ReturnCondition
		if in.Notes != "" {
			if rec.Notes != "" {
				rec.Notes += returnNoteSeparator + in.Notes
			} else {
				rec.Notes = in.Notes
			}
		}
		if err := tx.UpdateAssignment(ctx, rec); err != nil {
			return persistence(err, "update assignment record")
		}

		asset.Status = models.AssetAvailable
		asset.AssignedTo = nil
		asset.AssignedDate = nil
		asset.ReturnDate = &now
		if err := tx.UpdateAssetStatus(ctx, asset, models.AssetAssigned); err != nil {
			if errors.Is(err, ErrStale) {
				return conflict(CodeAssetNotAssigned, "asset %d was returned concurrently", asset.ID)
			}
			return persistence(err, "update asset status")
		}
		return nil
	})
	return s.wrap(err)
}

// OverrideStatus parks an asset in maintenance or retired, or releases it
// back to available. This is the administrative edit path; it refuses to
// touch assigned assets and never fabricates assignment state.
func (s *Service) OverrideStatus(ctx context.Context, assetID uint, status string) error {
	switch status {
	case models.AssetAvailable, models.AssetMaintenance, models.AssetRetired:
	default:
		return validation(CodeInvalidParam, "status must be available, maintenance or retired")
	}

	err := s.store.Transact(ctx, func(tx Store) error {
		asset, err := tx.FindAssetByID(ctx, assetID)
		if errors.Is(err, ErrNotFound) {
			return notFound(CodeAssetNotFound, "asset %d not found", assetID)
		}
		if err != nil {
			return persistence(err, "look up asset")
		}

		if asset.Status == models.AssetAssigned {
			return conflict(CodeAssetAssigned, "cannot override status of an assigned asset, return it first")
		}
		if asset.Status == status {
			return nil
		}

		expect := asset.Status
		asset.Status = status
		if err := tx.UpdateAssetStatus(ctx, asset, expect); err != nil {
			if errors.Is(err, ErrStale) {
				return conflict(CodeAssetUnavailable, "asset %d changed concurrently", asset.ID)
			}
			return persistence(err, "update asset status")
		}
		return nil
	})
	return s.wrap(err)
}

// GetAsset returns a single asset by id.
func (s *Service) GetAsset(ctx context.Context, assetID uint) (*models.Asset, error) {
	asset, err := s.store.FindAssetByID(ctx, assetID)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound(CodeAssetNotFound, "asset %d not found", assetID)
	}
	if err != nil {
		return nil, persistence(err, "look up asset")
	}
	return asset, nil
}

// ListAssets returns assets matching the filter, newest first (created
// date descending, ties broken by id descending) so paging is stable.
func (s *Service) ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	assets, err := s.store.ListAssets(ctx, f)
	if err != nil {
		return nil, persistence(err, "list assets")
	}
	return assets, nil
}

// ListAssignments returns ledger rows matching the filter, newest first.
func (s *Service) ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.AssetAssignment, error) {
	recs, err := s.store.ListAssignments(ctx, f)
	if err != nil {
		return nil, persistence(err, "list assignments")
	}
	return recs, nil
}

// Snapshot returns the full asset register and assignment ledger in one
// consistent view, for backup.
func (s *Service) Snapshot(ctx context.Context) ([]models.Asset, []models.AssetAssignment, error) {
	var (
		assets []models.Asset
		recs   []models.AssetAssignment
	)
	err := s.store.Transact(ctx, func(tx Store) error {
		var err error
		if assets, err = tx.ListAssets(ctx, AssetFilter{}); err != nil {
			return persistence(err, "list assets")
		}
		if recs, err = tx.ListAssignments(ctx, AssignmentFilter{}); err != nil {
			return persistence(err, "list assignments")
		}
		return nil
	})
	if err != nil {
		return nil, nil, s.wrap(err)
	}
	return assets, recs, nil
}

// RestoreLedger replaces the asset register and assignment ledger with a
// snapshot, atomically. Row ids are kept so history references stay valid.
func (s *Service) RestoreLedger(ctx context.Context, assets []models.Asset, recs []models.AssetAssignment) error {
	err := s.store.Transact(ctx, func(tx Store) error {
		if err := tx.ReplaceLedger(ctx, assets, recs); err != nil {
			return persistence(err, "replace ledger")
		}
		return nil
	})
	return s.wrap(err)
}

// wrap makes sure everything leaving the service is a *Error; raw store
// errors become persistence failures.
func (s *Service) wrap(err error) error {
	if err == nil {
		return nil
	}
	if le := AsError(err); le != nil {
		return le
	}
	return persistence(err, "storage operation failed")
}
