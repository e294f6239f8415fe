package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
)

func TestMemoryStore_TransactRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Transact(ctx, func(tx Store) error {
		if err := tx.InsertAsset(ctx, &models.Asset{
			Name:         "Laptop X",
			Category:     "Laptops",
			SerialNumber: "SN-1",
			TagNumber:    "WERK-LT-001",
			Status:       models.AssetAvailable,
		}); err != nil {
			return err
		}
		if err := tx.InsertAssignment(ctx, &models.AssetAssignment{
			AssetID: 1, UserID: 7, AssignedBy: 1, Active: true,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transact error = %v, want %v", err, boom)
	}

	assets, _ := store.ListAssets(ctx, AssetFilter{})
	if len(assets) != 0 {
		t.Errorf("assets after rollback = %d, want 0", len(assets))
	}
	recs, _ := store.ListAssignments(ctx, AssignmentFilter{})
	if len(recs) != 0 {
		t.Errorf("assignments after rollback = %d, want 0", len(recs))
	}
}

func TestMemoryStore_TransactCommits(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Transact(ctx, func(tx Store) error {
		return tx.InsertAsset(ctx, &models.Asset{
			Name:         "Laptop X",
			Category:     "Laptops",
			SerialNumber: "SN-1",
			TagNumber:    "WERK-LT-001",
			Status:       models.AssetAvailable,
		})
	})
	if err != nil {
		t.Fatalf("Transact error = %v", err)
	}

	a, err := store.FindAssetBySerial(ctx, "SN-1")
	if err != nil {
		t.Fatalf("FindAssetBySerial error = %v", err)
	}
	if a.ID == 0 {
		t.Error("id not assigned on insert")
	}
}

func TestMemoryStore_UpdateAssetStatusStale(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := &models.Asset{
		Name:         "Laptop X",
		Category:     "Laptops",
		SerialNumber: "SN-1",
		TagNumber:    "WERK-LT-001",
		Status:       models.AssetAvailable,
	}
	if err := store.InsertAsset(ctx, a); err != nil {
		t.Fatalf("InsertAsset error = %v", err)
	}

	a.Status = models.AssetAssigned
	if err := store.UpdateAssetStatus(ctx, a, models.AssetMaintenance); !errors.Is(err, ErrStale) {
		t.Fatalf("UpdateAssetStatus with wrong expectation = %v, want %v", err, ErrStale)
	}

	got, _ := store.FindAssetByID(ctx, a.ID)
	if got.Status != models.AssetAvailable {
		t.Errorf("status after stale update = %s, want %s", got.Status, models.AssetAvailable)
	}

	if err := store.UpdateAssetStatus(ctx, a, models.AssetAvailable); err != nil {
		t.Fatalf("UpdateAssetStatus error = %v", err)
	}
	got, _ = store.FindAssetByID(ctx, a.ID)
	if got.Status != models.AssetAssigned {
		t.Errorf("status = %s, want %s", got.Status, models.AssetAssigned)
	}
}

func TestMemoryStore_ReadsReturnCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := &models.Asset{
		Name:         "Laptop X",
		Category:     "Laptops",
		SerialNumber: "SN-1",
		TagNumber:    "WERK-LT-001",
		Status:       models.AssetAvailable,
	}
	if err := store.InsertAsset(ctx, a); err != nil {
		t.Fatalf("InsertAsset error = %v", err)
	}

	got, _ := store.FindAssetByID(ctx, a.ID)
	got.Status = models.AssetRetired

	again, _ := store.FindAssetByID(ctx, a.ID)
	if again.Status != models.AssetAvailable {
		t.Error("mutating a returned asset leaked into the store")
	}
}
