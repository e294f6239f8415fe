package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
)

// MemoryStore is the in-process Store implementation. A single mutex
// serializes every mutation, so two Transact calls against the same asset
// can never interleave; on error the pre-transaction state is restored,
// giving the same all-or-nothing behaviour as the SQLite store.
//
// It also implements UserDirectory for deployments that run the ledger
// without the relational database (and for tests).
type MemoryStore struct {
	mu sync.Mutex
	s  memState
}

type memState struct {
	assets      map[uint]*models.Asset
	assignments map[uint]*models.AssetAssignment
	users       map[uint]*models.User
	nextAsset   uint
	nextRecord  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		s: memState{
			assets:      make(map[uint]*models.Asset),
			assignments: make(map[uint]*models.AssetAssignment),
			users:       make(map[uint]*models.User),
			nextAsset:   1,
			nextRecord:  1,
		},
	}
}

// AddUser registers a user in the directory view of the store.
func (m *MemoryStore) AddUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := u
	m.s.users[u.ID] = &cp
}

func (m *MemoryStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memState) clone() memState {
	out := memState{
		assets:      make(map[uint]*models.Asset, len(s.assets)),
		assignments: make(map[uint]*models.AssetAssignment, len(s.assignments)),
		users:       s.users,
		nextAsset:   s.nextAsset,
		nextRecord:  s.nextRecord,
	}
	for id, a := range s.assets {
		cp := *a
		out.assets[id] = &cp
	}
	for id, r := range s.assignments {
		cp := *r
		out.assignments[id] = &cp
	}
	return out
}

// Transact runs fn under the store mutex against an unlocked view. If fn
// fails, every mutation it made is discarded.
func (m *MemoryStore) Transact(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := m.s.clone()
	if err := fn(&memView{s: &m.s}); err != nil {
		m.s = saved
		return err
	}
	return nil
}

func (m *MemoryStore) FindAssetByID(ctx context.Context, id uint) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).FindAssetByID(ctx, id)
}

func (m *MemoryStore) FindAssetBySerial(ctx context.Context, serial string) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).FindAssetBySerial(ctx, serial)
}

func (m *MemoryStore) FindAssetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).FindAssetByTag(ctx, tag)
}

func (m *MemoryStore) InsertAsset(ctx context.Context, a *models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).InsertAsset(ctx, a)
}

func (m *MemoryStore) UpdateAssetStatus(ctx context.Context, a *models.Asset, expect string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).UpdateAssetStatus(ctx, a, expect)
}

func (m *MemoryStore) DeleteAsset(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).DeleteAsset(ctx, id)
}

func (m *MemoryStore) ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).ListAssets(ctx, f)
}

func (m *MemoryStore) InsertAssignment(ctx context.Context, rec *models.AssetAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).InsertAssignment(ctx, rec)
}

func (m *MemoryStore) FindActiveAssignmentForAsset(ctx context.Context, assetID uint) (*models.AssetAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).FindActiveAssignmentForAsset(ctx, assetID)
}

func (m *MemoryStore) ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.AssetAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).ListAssignments(ctx, f)
}

func (m *MemoryStore) UpdateAssignment(ctx context.Context, rec *models.AssetAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).UpdateAssignment(ctx, rec)
}

func (m *MemoryStore) ReplaceLedger(ctx context.Context, assets []models.Asset, recs []models.AssetAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memView{s: &m.s}).ReplaceLedger(ctx, assets, recs)
}

// memView operates on the state without taking the lock; it is only ever
// reached while the owning MemoryStore holds it.
type memView struct {
	s *memState
}

func timeNow() time.Time { return time.Now() }

func (v *memView) Transact(_ context.Context, fn func(Store) error) error {
	// already inside a transaction, no nesting
	return fn(v)
}

func (v *memView) FindAssetByID(_ context.Context, id uint) (*models.Asset, error) {
	a, ok := v.s.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (v *memView) FindAssetBySerial(_ context.Context, serial string) (*models.Asset, error) {
	for _, a := range v.s.assets {
		if a.SerialNumber == serial {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) FindAssetByTag(_ context.Context, tag string) (*models.Asset, error) {
	for _, a := range v.s.assets {
		if a.TagNumber == tag {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) InsertAsset(_ context.Context, a *models.Asset) error {
	a.ID = v.s.nextAsset
	v.s.nextAsset++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = timeNow()
	}
	a.UpdatedAt = a.CreatedAt
	cp := *a
	v.s.assets[a.ID] = &cp
	return nil
}

func (v *memView) UpdateAssetStatus(_ context.Context, a *models.Asset, expect string) error {
	cur, ok := v.s.assets[a.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Status != expect {
		return ErrStale
	}
	cur.Status = a.Status
	cur.AssignedTo = a.AssignedTo
	cur.AssignedDate = a.AssignedDate
	cur.ReturnDate = a.ReturnDate
	cur.UpdatedAt = timeNow()
	return nil
}

func (v *memView) DeleteAsset(_ context.Context, id uint) error {
	if _, ok := v.s.assets[id]; !ok {
		return ErrNotFound
	}
	delete(v.s.assets, id)
	return nil
}

func (v *memView) ListAssets(_ context.Context, f AssetFilter) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(v.s.assets))
	needle := strings.ToLower(f.Search)
	for _, a := range v.s.assets {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.AssignedTo != 0 && (a.AssignedTo == nil || *a.AssignedTo != f.AssignedTo) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.Name), needle) &&
			!strings.Contains(strings.ToLower(a.SerialNumber), needle) &&
			!strings.Contains(strings.ToLower(a.TagNumber), needle) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (v *memView) InsertAssignment(_ context.Context, rec *models.AssetAssignment) error {
	rec.ID = v.s.nextRecord
	v.s.nextRecord++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = timeNow()
	}
	cp := *rec
	v.s.assignments[rec.ID] = &cp
	return nil
}

func (v *memView) FindActiveAssignmentForAsset(_ context.Context, assetID uint) (*models.AssetAssignment, error) {
	for _, r := range v.s.assignments {
		if r.AssetID == assetID && r.Active {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (v *memView) ListAssignments(_ context.Context, f AssignmentFilter) ([]models.AssetAssignment, error) {
	out := make([]models.AssetAssignment, 0, len(v.s.assignments))
	for _, r := range v.s.assignments {
		if f.AssetID != 0 && r.AssetID != f.AssetID {
			continue
		}
		if f.UserID != 0 && r.UserID != f.UserID {
			continue
		}
		if f.ActiveOnly && !r.Active {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateAssigned.Equal(out[j].DateAssigned) {
			return out[i].DateAssigned.After(out[j].DateAssigned)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (v *memView) UpdateAssignment(_ context.Context, rec *models.AssetAssignment) error {
	if _, ok := v.s.assignments[rec.ID]; !ok {
		return ErrNotFound
	}
	cp := *rec
	v.s.assignments[rec.ID] = &cp
	return nil
}

func (v *memView) ReplaceLedger(_ context.Context, assets []models.Asset, recs []models.AssetAssignment) error {
	v.s.assets = make(map[uint]*models.Asset, len(assets))
	v.s.assignments = make(map[uint]*models.AssetAssignment, len(recs))
	v.s.nextAsset = 1
	v.s.nextRecord = 1
	for i := range assets {
		cp := assets[i]
		v.s.assets[cp.ID] = &cp
		if cp.ID >= v.s.nextAsset {
			v.s.nextAsset = cp.ID + 1
		}
	}
	for i := range recs {
		cp := recs[i]
		v.s.assignments[cp.ID] = &cp
		if cp.ID >= v.s.nextRecord {
			v.s.nextRecord = cp.ID + 1
		}
	}
	return nil
}
