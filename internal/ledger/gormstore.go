package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"

	"gorm.io/gorm"
)

// GormStore backs the ledger with the application's SQLite database.
// Transact maps onto a database transaction; SQLite serializes writers, so
// combined with the status-guarded update two concurrent assigns cannot
// both commit.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (g *GormStore) FindAssetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	if err := g.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &a, nil
}

func (g *GormStore) FindAssetBySerial(ctx context.Context, serial string) (*models.Asset, error) {
	var a models.Asset
	if err := g.db.WithContext(ctx).Where("serial_number = ?", serial).First(&a).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &a, nil
}

func (g *GormStore) FindAssetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	var a models.Asset
	if err := g.db.WithContext(ctx).Where("tag_number = ?", tag).First(&a).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &a, nil
}

func (g *GormStore) InsertAsset(ctx context.Context, a *models.Asset) error {
	return g.db.WithContext(ctx).Create(a).Error
}

// UpdateAssetStatus is the compare-and-swap on the asset's status field:
// the write only lands if the row still holds expect.
func (g *GormStore) UpdateAssetStatus(ctx context.Context, a *models.Asset, expect string) error {
	res := g.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ? AND status = ?", a.ID, expect).
		Updates(map[string]interface{}{
			"status":        a.Status,
			"assigned_to":   a.AssignedTo,
			"assigned_date": a.AssignedDate,
			"return_date":   a.ReturnDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

func (g *GormStore) DeleteAsset(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	q := g.db.WithContext(ctx).Model(&models.Asset{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AssignedTo != 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Search != "" {
		needle := fmt.Sprintf("%%%s%%", f.Search)
		q = q.Where("name LIKE ? OR serial_number LIKE ? OR tag_number LIKE ?", needle, needle, needle)
	}

	var assets []models.Asset
	if err := q.Order("created_at DESC, id DESC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (g *GormStore) InsertAssignment(ctx context.Context, rec *models.AssetAssignment) error {
	return g.db.WithContext(ctx).Create(rec).Error
}

func (g *GormStore) FindActiveAssignmentForAsset(ctx context.Context, assetID uint) (*models.AssetAssignment, error) {
	var rec models.AssetAssignment
	err := g.db.WithContext(ctx).
		Where("asset_id = ? AND active = ?", assetID, true).
		First(&rec).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &rec, nil
}

func (g *GormStore) ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.AssetAssignment, error) {
	q := g.db.WithContext(ctx).Model(&models.AssetAssignment{})
	if f.AssetID != 0 {
		q = q.Where("asset_id = ?", f.AssetID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var recs []models.AssetAssignment
	if err := q.Order("date_assigned DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// UpdateAssignment saves the full row. Select("*") forces zero values
// (Active=false, cleared notes) to be written.
func (g *GormStore) UpdateAssignment(ctx context.Context, rec *models.AssetAssignment) error {
	res := g.db.WithContext(ctx).Model(rec).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceLedger deletes both tables and recreates the snapshot rows with
// their original ids. Callers wrap this in Transact.
func (g *GormStore) ReplaceLedger(ctx context.Context, assets []models.Asset, recs []models.AssetAssignment) error {
	db := g.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&models.AssetAssignment{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Asset{}).Error; err != nil {
		return err
	}
	for i := range assets {
		if err := db.Create(&assets[i]).Error; err != nil {
			return err
		}
	}
	for i := range recs {
		if err := db.Create(&recs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormDirectory resolves users from the application database. Inactive
// accounts do not count as assignable holders.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := d.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&u).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &u, nil
}
