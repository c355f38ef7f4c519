package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yariga/property-api/internal/domain"
	"github.com/yariga/property-api/internal/repository/sqlite"
	"github.com/yariga/property-api/internal/service"
)

// fakeGateway is a scriptable upload gateway for service tests.
type fakeGateway struct {
	url     string
	err     error
	calls   int
	payload string
}

func (f *fakeGateway) Upload(ctx context.Context, payload string) (string, error) {
	f.calls++
	f.payload = payload
	return f.url, f.err
}

func newTestPropertyService(t *testing.T) (*service.PropertyService, *fakeGateway, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gateway := &fakeGateway{}
	svc := service.NewPropertyService(db.Properties(), db.Users(), gateway)
	return svc, gateway, db
}

func seedOwner(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Owner", Email: email, Avatar: "https://img.example.com/owner.png"}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return u
}

func TestPropertyService_Create_Success(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	owner := seedOwner(t, db, "owner@example.com")
	bystander := seedOwner(t, db, "bystander@example.com")

	p, err := svc.Create(ctx, service.CreatePropertyInput{
		Title:        "Seaside Villa",
		PropertyType: "Villa",
		Location:     "Lisbon",
		Price:        350000,
		Email:        "owner@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected property ID to be assigned")
	}
	if p.CreatorID != owner.ID {
		t.Fatalf("expected creator %s, got %s", owner.ID, p.CreatorID)
	}

	// The id must land in exactly one AllProperties sequence: the owner's.
	gotOwner, err := db.Users().GetByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
	if len(gotOwner.AllProperties) != 1 || gotOwner.AllProperties[0] != p.ID {
		t.Fatalf("expected owner AllProperties [%s], got %v", p.ID, gotOwner.AllProperties)
	}

	gotBystander, err := db.Users().GetByID(ctx, bystander.ID)
	if err != nil {
		t.Fatalf("GetByID bystander: %v", err)
	}
	if len(gotBystander.AllProperties) != 0 {
		t.Fatalf("expected bystander untouched, got %v", gotBystander.AllProperties)
	}
}

func TestPropertyService_Create_UnknownEmail(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "present@example.com")

	_, err := svc.Create(ctx, service.CreatePropertyInput{
		Title: "Orphan",
		Email: "absent@example.com",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// No mutation may have happened.
	count, err := db.Properties().Count(ctx, domain.PropertyQuery{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no properties persisted, got %d", count)
	}
}

func TestPropertyService_Create_MissingEmail(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	_, err := svc.Create(context.Background(), service.CreatePropertyInput{Title: "No Owner"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPropertyService_List_WindowAndTotal(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "list@example.com")
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		if _, err := svc.Create(ctx, service.CreatePropertyInput{Title: title, Email: "list@example.com"}); err != nil {
			t.Fatalf("seed %s: %v", title, err)
		}
	}

	items, total, err := svc.List(ctx, service.ListParams{Start: "1", End: "4"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items in window, got %d", len(items))
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
}

func TestPropertyService_List_EmptyWindowKeepsTotal(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "empty@example.com")
	if _, err := svc.Create(ctx, service.CreatePropertyInput{Title: "Only", Email: "empty@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// end < start clamps to a zero-record page, never a store error.
	items, total, err := svc.List(ctx, service.ListParams{Start: "5", End: "2"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(items))
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
}

func TestPropertyService_Get_NotFound(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPropertyService_Get_ResolvesCreator(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "creator@example.com")
	p, err := svc.Create(ctx, service.CreatePropertyInput{Title: "Resolved", Email: "creator@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Creator == nil || got.Creator.Email != "creator@example.com" {
		t.Fatalf("expected resolved creator, got %+v", got.Creator)
	}
}

func TestPropertyService_Update_UploadsPhoto(t *testing.T) {
	svc, gateway, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "photo@example.com")
	p, err := svc.Create(ctx, service.CreatePropertyInput{Title: "Photogenic", Email: "photo@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	gateway.url = "https://cdn.example.com/hosted.jpg"
	raw := "data:image/png;base64,abc123"
	if err := svc.Update(ctx, p.ID, service.UpdatePropertyInput{Photo: &raw}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gateway.calls != 1 || gateway.payload != raw {
		t.Fatalf("expected one upload of the raw payload, got %d calls with %q", gateway.calls, gateway.payload)
	}

	got, err := db.Properties().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Photo != "https://cdn.example.com/hosted.jpg" {
		t.Fatalf("expected hosted URL stored, got %q", got.Photo)
	}
}

func TestPropertyService_Update_FallsBackToRawPhoto(t *testing.T) {
	svc, gateway, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "fallback@example.com")
	p, err := svc.Create(ctx, service.CreatePropertyInput{Title: "Fallback", Email: "fallback@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Gateway accepts but yields no URL: the raw value is retained.
	gateway.url = ""
	raw := "https://raw.example.com/original.jpg"
	if err := svc.Update(ctx, p.ID, service.UpdatePropertyInput{Photo: &raw}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Properties().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Photo != raw {
		t.Fatalf("expected raw photo retained, got %q", got.Photo)
	}
}

func TestPropertyService_Update_EmptyPhotoClearsWithoutUpload(t *testing.T) {
	svc, gateway, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "clear@example.com")
	p, err := svc.Create(ctx, service.CreatePropertyInput{
		Title: "Cleared",
		Photo: "https://cdn.example.com/old.jpg",
		Email: "clear@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// An empty payload is not an image: the gateway stays out of it and
	// the stored photo is cleared as supplied.
	empty := ""
	if err := svc.Update(ctx, p.ID, service.UpdatePropertyInput{Photo: &empty}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gateway.calls != 0 {
		t.Fatalf("expected no upload for an empty photo, got %d calls", gateway.calls)
	}

	got, err := db.Properties().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Photo != "" {
		t.Fatalf("expected photo cleared, got %q", got.Photo)
	}
}

func TestPropertyService_Update_GatewayErrorFailsUpdate(t *testing.T) {
	svc, gateway, db := newTestPropertyService(t)
	ctx := context.Background()

	seedOwner(t, db, "strict@example.com")
	title := "Before"
	p, err := svc.Create(ctx, service.CreatePropertyInput{Title: title, Email: "strict@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	gateway.err = errors.New("asset host down")
	after := "After"
	raw := "data:image/png;base64,abc123"
	err = svc.Update(ctx, p.ID, service.UpdatePropertyInput{Title: &after, Photo: &raw})
	if err == nil {
		t.Fatal("expected update to fail when the gateway errors")
	}

	got, err := db.Properties().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Before" {
		t.Fatalf("expected no partial update, got title %q", got.Title)
	}
}

func TestPropertyService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	title := "nope"
	err := svc.Update(context.Background(), "missing", service.UpdatePropertyInput{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPropertyService_Delete(t *testing.T) {
	svc, _, db := newTestPropertyService(t)
	ctx := context.Background()

	owner := seedOwner(t, db, "remove@example.com")
	p, err := svc.Create(ctx, service.CreatePropertyInput{Title: "Removable", Email: "remove@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected property gone, got %v", err)
	}

	got, err := db.Users().GetByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
	if len(got.AllProperties) != 0 {
		t.Fatalf("expected id pulled from owner list, got %v", got.AllProperties)
	}
}

func TestPropertyService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
