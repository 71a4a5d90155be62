//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/testhelpers"
)

type uriPathTestContext struct {
	t       *testing.T
	testDB  *testhelpers.TestDB
	repo    UriPathRepository
	defRepo UriDefRepository
}

func setupUriPathTest(t *testing.T) *uriPathTestContext {
	testDB := testhelpers.GetTestDB(t)
	tc := &uriPathTestContext{
		t:       t,
		testDB:  testDB,
		repo:    NewUriPathRepository(testDB.DB),
		defRepo: NewUriDefRepository(testDB.DB),
	}
	testDB.Truncate(t, "uri_defs", "uri_paths")
	return tc
}

func (tc *uriPathTestContext) createParent(ctx context.Context, apiID string) {
	tc.t.Helper()
	def := &models.UriDef{
		APIID:       apiID,
		SiteID:      "SITE01",
		ServiceName: "path-service",
	}
	if err := tc.defRepo.Create(ctx, def); err != nil {
		tc.t.Fatalf("failed to create parent definition: %v", err)
	}
}

func TestUriPathRepository_Create_Success(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-PATH-001")

	path := &models.UriPath{
		APIID:        "API-PATH-001",
		PathOrder:    1,
		PathValue:    "{order_id}",
		IsParamUse:   true,
		ParamName:    "order_id",
		ParamType:    "string",
		ExampleValue: "ORD-42",
	}
	if err := tc.repo.Create(ctx, path); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := tc.repo.Get(ctx, path.ObjID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.IsParamUse {
		t.Error("expected is_param_use to round-trip true")
	}
	if got.ParamName != "order_id" || got.ExampleValue != "ORD-42" {
		t.Errorf("unexpected param fields: %+v", got)
	}
}

func TestUriPathRepository_Create_MissingParent(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	orphan := &models.UriPath{
		APIID:     "API-NO-PARENT",
		PathOrder: 1,
		PathValue: "orders",
	}
	err := tc.repo.Create(ctx, orphan)
	if !errors.Is(err, apperrors.ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey for missing parent, got %v", err)
	}

	// The rejected row must not be persisted.
	count, err := tc.repo.CountByAPIID(ctx, "API-NO-PARENT")
	if err != nil {
		t.Fatalf("CountByAPIID failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no persisted rows, got %d", count)
	}
}

func TestUriPathRepository_Create_DuplicateOrder(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-ORDER-001")

	first := &models.UriPath{APIID: "API-ORDER-001", PathOrder: 1, PathValue: "orders"}
	if err := tc.repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &models.UriPath{APIID: "API-ORDER-001", PathOrder: 1, PathValue: "customers"}
	err := tc.repo.Create(ctx, dup)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate (api_id, path_order), got %v", err)
	}

	// The same order under a different definition is fine.
	tc.createParent(ctx, "API-ORDER-002")
	other := &models.UriPath{APIID: "API-ORDER-002", PathOrder: 1, PathValue: "orders"}
	if err := tc.repo.Create(ctx, other); err != nil {
		t.Fatalf("Create under other definition failed: %v", err)
	}
}

func TestUriPathRepository_ListByAPIID_OrderedByPathOrder(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-SEG-001")
	for _, p := range []struct {
		order int
		value string
	}{
		{3, "{order_id}"},
		{1, "api"},
		{2, "orders"},
	} {
		path := &models.UriPath{APIID: "API-SEG-001", PathOrder: p.order, PathValue: p.value}
		if err := tc.repo.Create(ctx, path); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	paths, err := tc.repo.ListByAPIID(ctx, "API-SEG-001")
	if err != nil {
		t.Fatalf("ListByAPIID failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	for i, want := range []string{"api", "orders", "{order_id}"} {
		if paths[i].PathValue != want {
			t.Errorf("position %d: expected %q, got %q", i, want, paths[i].PathValue)
		}
		if paths[i].PathOrder != i+1 {
			t.Errorf("position %d: expected order %d, got %d", i, i+1, paths[i].PathOrder)
		}
	}
}

func TestUriPathRepository_GetByAPIIDAndOrder(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-LOOKUP-001")
	created := &models.UriPath{APIID: "API-LOOKUP-001", PathOrder: 2, PathValue: "orders"}
	if err := tc.repo.Create(ctx, created); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := tc.repo.GetByAPIIDAndOrder(ctx, "API-LOOKUP-001", 2)
	if err != nil {
		t.Fatalf("GetByAPIIDAndOrder failed: %v", err)
	}
	if got.ObjID != created.ObjID {
		t.Errorf("expected obj_id %q, got %q", created.ObjID, got.ObjID)
	}

	if _, err := tc.repo.GetByAPIIDAndOrder(ctx, "API-LOOKUP-001", 9); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent order, got %v", err)
	}
}

func TestUriPathRepository_ListByUseStatus(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-STAT-001")

	active := &models.UriPath{APIID: "API-STAT-001", PathOrder: 1, PathValue: "orders"}
	if err := tc.repo.Create(ctx, active); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	retired := &models.UriPath{APIID: "API-STAT-001", PathOrder: 2, PathValue: "legacy"}
	retired.UseStatus = models.StatusUnusable
	if err := tc.repo.Create(ctx, retired); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	usable, err := tc.repo.ListByUseStatus(ctx, models.StatusUsable)
	if err != nil {
		t.Fatalf("ListByUseStatus failed: %v", err)
	}
	if len(usable) != 1 || usable[0].PathValue != "orders" {
		t.Errorf("unexpected usable set: %+v", usable)
	}

	unusable, err := tc.repo.ListByUseStatus(ctx, models.StatusUnusable)
	if err != nil {
		t.Fatalf("ListByUseStatus failed: %v", err)
	}
	if len(unusable) != 1 || unusable[0].PathValue != "legacy" {
		t.Errorf("unexpected unusable set: %+v", unusable)
	}
}

func TestUriPathRepository_Update(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-PUPD-001")
	path := &models.UriPath{APIID: "API-PUPD-001", PathOrder: 1, PathValue: "orders"}
	if err := tc.repo.Create(ctx, path); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	path.PathValue = "{order_id}"
	path.IsParamUse = true
	path.ParamName = "order_id"
	path.ParamType = "string"
	if err := tc.repo.Update(ctx, path); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := tc.repo.Get(ctx, path.ObjID)
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if got.PathValue != "{order_id}" || !got.IsParamUse || got.ParamName != "order_id" {
		t.Errorf("update did not persist: %+v", got)
	}
}

func TestUriPathRepository_Delete(t *testing.T) {
	tc := setupUriPathTest(t)
	ctx := context.Background()

	tc.createParent(ctx, "API-PDEL-001")
	path := &models.UriPath{APIID: "API-PDEL-001", PathOrder: 1, PathValue: "orders"}
	if err := tc.repo.Create(ctx, path); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := tc.repo.Delete(ctx, path.ObjID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tc.repo.Get(ctx, path.ObjID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := tc.repo.Delete(ctx, path.ObjID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}
