package ledger

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	store.AddUser(models.User{ID: 1, Name: "System Administrator", Role: models.RoleAdmin, IsActive: true})
	store.AddUser(models.User{ID: 7, Name: "Jane Smith", Role: models.RoleStaff, IsActive: true})
	store.AddUser(models.User{ID: 8, Name: "Mike Johnson", Role: models.RoleStaff, IsActive: true})
	return New(store, store, "WERK"), store
}

func mustCreate(t *testing.T, svc *Service, name, category, serial string) *models.Asset {
	t.Helper()
	asset, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Name:         name,
		Category:     category,
		SerialNumber: serial,
	})
	if err != nil {
		t.Fatalf("CreateAsset(%q) error = %v, want nil", serial, err)
	}
	return asset
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want code %s", code)
	}
	le := AsError(err)
	if le == nil {
		t.Fatalf("error = %v, not a ledger error, want code %s", err, code)
	}
	if le.Code != code {
		t.Fatalf("error code = %s, want %s", le.Code, code)
	}
}

// checkInvariant asserts status==assigned iff exactly one active record
// exists for the asset.
func checkInvariant(t *testing.T, store *MemoryStore, assetID uint) {
	t.Helper()
	ctx := context.Background()

	asset, err := store.FindAssetByID(ctx, assetID)
	if err != nil {
		t.Fatalf("FindAssetByID(%d) error = %v", assetID, err)
	}

	recs, err := store.ListAssignments(ctx, AssignmentFilter{AssetID: assetID, ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListAssignments error = %v", err)
	}

	assigned := asset.Status == models.AssetAssigned
	if assigned && len(recs) != 1 {
		t.Fatalf("asset %d assigned but %d active records", assetID, len(recs))
	}
	if !assigned && len(recs) != 0 {
		t.Fatalf("asset %d is %s but has %d active records", assetID, asset.Status, len(recs))
	}
	if assigned && asset.AssignedTo == nil {
		t.Fatalf("asset %d assigned but holder is nil", assetID)
	}
	if !assigned && asset.AssignedTo != nil {
		t.Fatalf("asset %d is %s but holder is %d", assetID, asset.Status, *asset.AssignedTo)
	}
}

func TestCreateAsset(t *testing.T) {
	svc, store := newTestService(t)

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	if asset.Status != models.AssetAvailable {
		t.Errorf("status = %s, want %s", asset.Status, models.AssetAvailable)
	}
	if asset.ID == 0 {
		t.Error("id not set")
	}
	if asset.CreatedAt.IsZero() {
		t.Error("created date not set")
	}

	tagRe := regexp.MustCompile(`^WERK-LT-\d{3,4}$`)
	if !tagRe.MatchString(asset.TagNumber) {
		t.Errorf("tag number %q does not match %v", asset.TagNumber, tagRe)
	}

	checkInvariant(t, store, asset.ID)
}

func TestCreateAsset_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []CreateAssetInput{
		{Category: "Laptops", SerialNumber: "SN-1"},
		{Name: "Laptop X", SerialNumber: "SN-1"},
		{Name: "Laptop X", Category: "Laptops"},
		{Name: "  ", Category: "Laptops", SerialNumber: "SN-1"},
	}
	for _, in := range cases {
		_, err := svc.CreateAsset(context.Background(), in)
		wantCode(t, err, CodeInvalidParam)
	}
}

func TestCreateAsset_DuplicateSerial(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	_, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Name:         "Laptop Y",
		Category:     "Laptops",
		SerialNumber: "SN-1",
	})
	wantCode(t, err, CodeDuplicateSerial)
}

func TestCreateAsset_DuplicateSerialOfRetired(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Old Monitor", "Monitor", "SN-RET")
	if err := svc.OverrideStatus(ctx, asset.ID, models.AssetRetired); err != nil {
		t.Fatalf("OverrideStatus error = %v", err)
	}

	// serial uniqueness holds for all time, retired assets included
	_, err := svc.CreateAsset(ctx, CreateAssetInput{
		Name:         "New Monitor",
		Category:     "Monitor",
		SerialNumber: "SN-RET",
	})
	wantCode(t, err, CodeDuplicateSerial)
}

func TestTagNumbers_PairwiseDistinct(t *testing.T) {
	svc, _ := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 60; i++ {
		asset := mustCreate(t, svc, "Laptop", "Laptops", "SN-"+string(rune('A'+i/26))+string(rune('A'+i%26)))
		if seen[asset.TagNumber] {
			t.Fatalf("duplicate tag number issued: %s", asset.TagNumber)
		}
		seen[asset.TagNumber] = true
	}
}

func TestAssignReturn_RoundTrip(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	rec, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1})
	if err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	if !rec.Active {
		t.Error("assignment record not active")
	}
	if rec.DateAssigned.IsZero() {
		t.Error("date assigned not set")
	}

	got, err := svc.GetAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetAsset error = %v", err)
	}
	if got.Status != models.AssetAssigned {
		t.Errorf("status = %s, want %s", got.Status, models.AssetAssigned)
	}
	if got.AssignedTo == nil || *got.AssignedTo != 7 {
		t.Errorf("assigned to = %v, want 7", got.AssignedTo)
	}
	if got.AssignedDate == nil {
		t.Error("assigned date not set")
	}
	checkInvariant(t, store, asset.ID)

	err = svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: asset.ID, ReturnCondition: "Good"})
	if err != nil {
		t.Fatalf("ReturnAsset error = %v", err)
	}

	got, err = svc.GetAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetAsset error = %v", err)
	}
	if got.Status != models.AssetAvailable {
		t.Errorf("status after return = %s, want %s", got.Status, models.AssetAvailable)
	}
	if got.AssignedTo != nil {
		t.Errorf("assigned to after return = %v, want nil", got.AssignedTo)
	}
	if got.AssignedDate != nil {
		t.Error("assigned date not cleared on return")
	}
	if got.ReturnDate == nil {
		t.Error("return date not set")
	}
	checkInvariant(t, store, asset.ID)

	recs, err := svc.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID})
	if err != nil {
		t.Fatalf("ListAssignments error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("assignment records = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Active {
		t.Error("record still active after return")
	}
	if r.DateReturned == nil {
		t.Error("date returned not set")
	}
	if r.ReturnCondition != "Good" {
		t.Errorf("return condition = %q, want %q", r.ReturnCondition, "Good")
	}
}

func TestAssignAsset_AlreadyAssigned(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("first AssignAsset error = %v", err)
	}

	_, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 8, AssignedBy: 1})
	wantCode(t, err, CodeAssetUnavailable)

	// the failed attempt must not have created a second active record
	recs, err := store.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID})
	if err != nil {
		t.Fatalf("ListAssignments error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("assignment records = %d, want 1", len(recs))
	}
	checkInvariant(t, store, asset.ID)
}

func TestReturnAsset_NotAssigned(t *testing.T) {
	svc, _ := newTestService(t)

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	err := svc.ReturnAsset(context.Background(), ReturnAssetInput{AssetID: asset.ID})
	wantCode(t, err, CodeAssetNotAssigned)
}

func TestAssignAsset_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	_, err := svc.AssignAsset(context.Background(), AssignAssetInput{AssetID: asset.ID, UserID: 99, AssignedBy: 1})
	wantCode(t, err, CodeUserNotFound)
}

func TestAssignAsset_UnknownAsset(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AssignAsset(context.Background(), AssignAssetInput{AssetID: 42, UserID: 7, AssignedBy: 1})
	wantCode(t, err, CodeAssetNotFound)
}

func TestReturnAsset_AppendsNotes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1, Notes: "Initial handover"}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	if err := svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: asset.ID, Notes: "screen scratched"}); err != nil {
		t.Fatalf("ReturnAsset error = %v", err)
	}

	recs, _ := svc.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID})
	if len(recs) != 1 {
		t.Fatalf("assignment records = %d, want 1", len(recs))
	}
	want := "Initial handover; Return: screen scratched"
	if recs[0].Notes != want {
		t.Errorf("notes = %q, want %q", recs[0].Notes, want)
	}
}

func TestReturnAsset_NotesWithoutExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	if err := svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: asset.ID, Notes: "fine"}); err != nil {
		t.Fatalf("ReturnAsset error = %v", err)
	}

	recs, _ := svc.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID})
	if recs[0].Notes != "fine" {
		t.Errorf("notes = %q, want %q", recs[0].Notes, "fine")
	}
}

func TestDeleteAsset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if err := svc.DeleteAsset(ctx, asset.ID); err != nil {
		t.Fatalf("DeleteAsset error = %v", err)
	}

	_, err := svc.GetAsset(ctx, asset.ID)
	wantCode(t, err, CodeAssetNotFound)
}

func TestDeleteAsset_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteAsset(context.Background(), 42)
	wantCode(t, err, CodeAssetNotFound)
}

func TestDeleteAsset_CurrentlyAssigned(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}

	err := svc.DeleteAsset(ctx, asset.ID)
	wantCode(t, err, CodeAssetAssigned)

	// asset must be left unmodified
	got, err := svc.GetAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetAsset error = %v", err)
	}
	if got.Status != models.AssetAssigned {
		t.Errorf("status = %s, want %s", got.Status, models.AssetAssigned)
	}
	if got.AssignedTo == nil || *got.AssignedTo != 7 {
		t.Errorf("assigned to = %v, want 7", got.AssignedTo)
	}
	checkInvariant(t, store, asset.ID)
}

func TestDeleteAsset_KeepsAssignmentHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	if err := svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: asset.ID}); err != nil {
		t.Fatalf("ReturnAsset error = %v", err)
	}
	if err := svc.DeleteAsset(ctx, asset.ID); err != nil {
		t.Fatalf("DeleteAsset error = %v", err)
	}

	recs, err := svc.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID})
	if err != nil {
		t.Fatalf("ListAssignments error = %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("history records after delete = %d, want 1", len(recs))
	}
}

func TestOverrideStatus_ParksAsset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	if err := svc.OverrideStatus(ctx, asset.ID, models.AssetMaintenance); err != nil {
		t.Fatalf("OverrideStatus error = %v", err)
	}

	// parked assets can be neither assigned nor returned
	_, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1})
	wantCode(t, err, CodeAssetUnavailable)

	err = svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: asset.ID})
	wantCode(t, err, CodeAssetNotAssigned)

	// release back to available and assignment works again
	if err := svc.OverrideStatus(ctx, asset.ID, models.AssetAvailable); err != nil {
		t.Fatalf("OverrideStatus error = %v", err)
	}
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset after release error = %v", err)
	}
}

func TestOverrideStatus_Rejections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	err := svc.OverrideStatus(ctx, asset.ID, "assigned")
	wantCode(t, err, CodeInvalidParam)

	err = svc.OverrideStatus(ctx, 42, models.AssetRetired)
	wantCode(t, err, CodeAssetNotFound)

	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	err = svc.OverrideStatus(ctx, asset.ID, models.AssetRetired)
	wantCode(t, err, CodeAssetAssigned)
}

func TestListAssets_OrderingAndFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a1 := mustCreate(t, svc, "Laptop A", "Laptops", "SN-1")
	a2 := mustCreate(t, svc, "Monitor B", "Monitor", "SN-2")
	a3 := mustCreate(t, svc, "Laptop C", "Laptops", "SN-3")

	assets, err := svc.ListAssets(ctx, AssetFilter{})
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("assets = %d, want 3", len(assets))
	}
	// newest first, ties broken by id descending
	wantOrder := []uint{a3.ID, a2.ID, a1.ID}
	for i, want := range wantOrder {
		if assets[i].ID != want {
			t.Fatalf("assets[%d].ID = %d, want %d", i, assets[i].ID, want)
		}
	}

	laptops, err := svc.ListAssets(ctx, AssetFilter{Category: "Laptops"})
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(laptops) != 2 {
		t.Errorf("laptops = %d, want 2", len(laptops))
	}

	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: a1.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}
	assigned, err := svc.ListAssets(ctx, AssetFilter{Status: models.AssetAssigned})
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != a1.ID {
		t.Errorf("assigned filter returned %v, want only asset %d", assigned, a1.ID)
	}

	found, err := svc.ListAssets(ctx, AssetFilter{Search: "monitor"})
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(found) != 1 || found[0].ID != a2.ID {
		t.Errorf("search returned %v, want only asset %d", found, a2.ID)
	}
}

func TestAssignAsset_ConcurrentDoubleBooking(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	asset := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	users := []uint{7, 8}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AssignAsset(ctx, AssignAssetInput{AssetID: asset.ID, UserID: users[i], AssignedBy: 1})
		}(i)
	}
	wg.Wait()

	var okCount, unavailable int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		if le := AsError(err); le != nil && le.Code == CodeAssetUnavailable {
			unavailable++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || unavailable != 1 {
		t.Fatalf("successes = %d, unavailable = %d, want exactly one of each", okCount, unavailable)
	}

	recs, err := store.ListAssignments(ctx, AssignmentFilter{AssetID: asset.ID, ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListAssignments error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("active records = %d, want 1", len(recs))
	}
	checkInvariant(t, store, asset.ID)
}

// tagCollisionStore reports every candidate tag as taken, so issuance can
// never succeed.
type tagCollisionStore struct {
	*MemoryStore
	tagLookups int
}

func (s *tagCollisionStore) Transact(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *tagCollisionStore) FindAssetByTag(_ context.Context, tag string) (*models.Asset, error) {
	s.tagLookups++
	return &models.Asset{TagNumber: tag}, nil
}

func TestCreateAsset_TagExhaustion(t *testing.T) {
	store := &tagCollisionStore{MemoryStore: NewMemoryStore()}
	svc := New(store, store, "WERK")
	ctx := context.Background()

	_, err := svc.CreateAsset(ctx, CreateAssetInput{
		Name:         "Laptop X",
		Category:     "Laptops",
		SerialNumber: "SN-1",
	})
	wantCode(t, err, CodeTagExhausted)
	if le := AsError(err); le.Kind != KindConflict {
		t.Errorf("kind = %d, want %d", le.Kind, KindConflict)
	}

	// bounded retry: exactly tagAttempts candidates, then give up
	if store.tagLookups != tagAttempts {
		t.Errorf("tag lookups = %d, want %d", store.tagLookups, tagAttempts)
	}

	assets, _ := store.ListAssets(ctx, AssetFilter{})
	if len(assets) != 0 {
		t.Errorf("assets after failed create = %d, want 0", len(assets))
	}
}

// orphanedAssignmentStore simulates an assigned asset whose active ledger
// row has gone missing.
type orphanedAssignmentStore struct {
	*MemoryStore
}

func (s *orphanedAssignmentStore) Transact(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *orphanedAssignmentStore) FindActiveAssignmentForAsset(_ context.Context, _ uint) (*models.AssetAssignment, error) {
	return nil, ErrNotFound
}

func TestReturnAsset_MissingActiveRecord(t *testing.T) {
	store := &orphanedAssignmentStore{MemoryStore: NewMemoryStore()}
	svc := New(store, store, "WERK")
	ctx := context.Background()

	holder := uint(7)
	if err := store.InsertAsset(ctx, &models.Asset{
		Name:         "Laptop X",
		Category:     "Laptops",
		SerialNumber: "SN-1",
		TagNumber:    "WERK-LT-001",
		Status:       models.AssetAssigned,
		AssignedTo:   &holder,
	}); err != nil {
		t.Fatalf("InsertAsset error = %v", err)
	}

	err := svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: 1, ReturnCondition: "Good"})
	wantCode(t, err, CodeAssignmentNotFound)
	if le := AsError(err); le.Kind != KindPersistence {
		t.Errorf("kind = %d, want %d", le.Kind, KindPersistence)
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a1 := mustCreate(t, svc, "Laptop X", "Laptops", "SN-1")
	a2 := mustCreate(t, svc, "Monitor Y", "Monitor", "SN-2")
	if _, err := svc.AssignAsset(ctx, AssignAssetInput{AssetID: a1.ID, UserID: 7, AssignedBy: 1}); err != nil {
		t.Fatalf("AssignAsset error = %v", err)
	}

	assets, recs, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot error = %v", err)
	}
	if len(assets) != 2 || len(recs) != 1 {
		t.Fatalf("snapshot = %d assets, %d records, want 2 and 1", len(assets), len(recs))
	}

	// diverge from the snapshot
	if err := svc.ReturnAsset(ctx, ReturnAssetInput{AssetID: a1.ID}); err != nil {
		t.Fatalf("ReturnAsset error = %v", err)
	}
	if err := svc.DeleteAsset(ctx, a2.ID); err != nil {
		t.Fatalf("DeleteAsset error = %v", err)
	}
	mustCreate(t, svc, "Keyboard Z", "Peripherals", "SN-3")

	if err := svc.RestoreLedger(ctx, assets, recs); err != nil {
		t.Fatalf("RestoreLedger error = %v", err)
	}

	got, err := svc.ListAssets(ctx, AssetFilter{})
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("assets after restore = %d, want 2", len(got))
	}
	for i := range got {
		if got[i].SerialNumber == "SN-3" {
			t.Error("post-snapshot asset survived restore")
		}
	}

	a, err := svc.GetAsset(ctx, a1.ID)
	if err != nil {
		t.Fatalf("GetAsset error = %v", err)
	}
	if a.Status != models.AssetAssigned || a.AssignedTo == nil || *a.AssignedTo != 7 {
		t.Errorf("restored asset = %s/%v, want assigned to 7", a.Status, a.AssignedTo)
	}
	checkInvariant(t, store, a1.ID)

	if _, err := svc.GetAsset(ctx, a2.ID); err != nil {
		t.Errorf("deleted asset not restored: %v", err)
	}

	// id sequence continues past the restored rows
	a4 := mustCreate(t, svc, "Dock W", "Peripherals", "SN-4")
	if a4.ID <= a2.ID {
		t.Errorf("new asset id %d not beyond restored ids (max %d)", a4.ID, a2.ID)
	}
}
