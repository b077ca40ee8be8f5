package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

type patternFixture struct {
	svc      *PatternService
	patterns *stubPatternRepo
	orders   *stubOrderRepo
	blobs    *stubBlobStore
}

func newPatternFixture(t *testing.T) *patternFixture {
	t.Helper()
	patterns := newStubPatternRepo()
	orders := newStubOrderRepo()
	blobs := newStubBlobStore()
	f := &patternFixture{
		svc:      NewPatternService(patterns, orders, blobs, zerolog.Nop()),
		patterns: patterns,
		orders:   orders,
		blobs:    blobs,
	}
	err := orders.Insert(context.Background(), &domain.Order{
		ID:          "o1",
		OrderNumber: "ORD-o1",
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return f
}

func uploadInput(stage domain.Stage, slot int, content string) ports.UploadPatternInput {
	return ports.UploadPatternInput{
		Stage:    stage,
		Slot:     slot,
		Filename: "pattern.pdf",
		Content:  bytes.NewReader([]byte(content)),
	}
}

func TestUploadPatternRoundTrip(t *testing.T) {
	f := newPatternFixture(t)
	maker := actorWith(domain.RolePatternMaker)

	p, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 1, "pattern bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if p.FileID == "" {
		t.Fatal("file id not assigned")
	}

	dl, err := f.svc.Download(context.Background(), maker, p.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if dl.Filename != "pattern.pdf" {
		t.Errorf("filename: got %q", dl.Filename)
	}
	if string(dl.Content) != "pattern bytes" {
		t.Errorf("content: got %q", dl.Content)
	}
}

func TestUploadZeroLengthFile(t *testing.T) {
	f := newPatternFixture(t)
	maker := actorWith(domain.RolePatternMaker)

	p, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 1, ""))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	dl, err := f.svc.Download(context.Background(), maker, p.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(dl.Content) != 0 {
		t.Errorf("content length: got %d, want 0", len(dl.Content))
	}
}

func TestUploadInvalidSlotRejectedForEveryRole(t *testing.T) {
	f := newPatternFixture(t)

	// Slot validation fires before the role check, so even roles that could
	// never upload see the slot error.
	for _, role := range domain.Roles {
		for _, slot := range []int{0, 6} {
			_, err := f.svc.Upload(context.Background(), actorWith(role), "o1", uploadInput(domain.StageInitial, slot, "x"))
			if !errors.Is(err, domain.ErrInvalidSlot) {
				t.Errorf("role %s slot %d: got %v, want ErrInvalidSlot", role, slot, err)
			}
		}
	}
}

func TestUploadStageRoleGating(t *testing.T) {
	f := newPatternFixture(t)

	tests := []struct {
		role    domain.Role
		stage   domain.Stage
		wantErr error
	}{
		{domain.RolePatternMaker, domain.StageInitial, nil},
		{domain.RolePatternMaker, domain.StageSecond, domain.ErrForbidden},
		{domain.RolePatternMaker, domain.StageApproved, domain.ErrForbidden},
		{domain.RolePatternChecker, domain.StageInitial, domain.ErrForbidden},
		{domain.RolePatternChecker, domain.StageSecond, nil},
		{domain.RolePatternChecker, domain.StageApproved, nil},
		{domain.RoleAdmin, domain.StageInitial, nil},
		{domain.RoleAdmin, domain.StageSecond, nil},
		{domain.RoleOrderUploader, domain.StageInitial, domain.ErrForbidden},
		{domain.RoleGeneralUser, domain.StageApproved, domain.ErrForbidden},
	}

	for _, tt := range tests {
		_, err := f.svc.Upload(context.Background(), actorWith(tt.role), "o1", uploadInput(tt.stage, 1, "x"))
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("role %s stage %s: unexpected error %v", tt.role, tt.stage, err)
			}
		} else if !errors.Is(err, tt.wantErr) {
			t.Errorf("role %s stage %s: got %v, want %v", tt.role, tt.stage, err, tt.wantErr)
		}
	}
}

func TestUploadInvalidStage(t *testing.T) {
	f := newPatternFixture(t)

	_, err := f.svc.Upload(context.Background(), actorWith(domain.RoleAdmin), "o1", uploadInput("third", 1, "x"))
	if !errors.Is(err, domain.ErrInvalidStage) {
		t.Errorf("got %v, want ErrInvalidStage", err)
	}
}

func TestUploadUnknownOrder(t *testing.T) {
	f := newPatternFixture(t)

	_, err := f.svc.Upload(context.Background(), actorWith(domain.RoleAdmin), "ghost", uploadInput(domain.StageInitial, 1, "x"))
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}
}

func TestUploadStampsInitialDateOnce(t *testing.T) {
	f := newPatternFixture(t)
	maker := actorWith(domain.RolePatternMaker)

	if _, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 1, "a")); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	order, _ := f.orders.FindByID(context.Background(), "o1")
	firstDate := order.InitialPatternDate
	if firstDate == "" {
		t.Fatal("initial date not stamped on first upload")
	}

	if _, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 2, "b")); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	order, _ = f.orders.FindByID(context.Background(), "o1")
	if order.InitialPatternDate != firstDate {
		t.Errorf("initial date restamped: %q -> %q", firstDate, order.InitialPatternDate)
	}
}

func TestUploadSlotsAccumulate(t *testing.T) {
	f := newPatternFixture(t)
	maker := actorWith(domain.RolePatternMaker)

	if _, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 3, "first")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := f.svc.Upload(context.Background(), maker, "o1", uploadInput(domain.StageInitial, 3, "second")); err != nil {
		t.Fatalf("upload into same slot: %v", err)
	}

	list, err := f.svc.List(context.Background(), maker, "o1", domain.StageInitial)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("patterns in slot: got %d, want 2", len(list))
	}
}

func TestListFiltersByStage(t *testing.T) {
	f := newPatternFixture(t)
	admin := actorWith(domain.RoleAdmin)

	if _, err := f.svc.Upload(context.Background(), admin, "o1", uploadInput(domain.StageInitial, 1, "a")); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := f.svc.Upload(context.Background(), admin, "o1", uploadInput(domain.StageSecond, 1, "b")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	all, err := f.svc.List(context.Background(), admin, "o1", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all stages: got %d, want 2", len(all))
	}

	second, err := f.svc.List(context.Background(), admin, "o1", domain.StageSecond)
	if err != nil {
		t.Fatalf("list second: %v", err)
	}
	if len(second) != 1 || second[0].Stage != domain.StageSecond {
		t.Errorf("second stage filter: got %d records", len(second))
	}
}

func TestDeletePatternAdminOnly(t *testing.T) {
	f := newPatternFixture(t)
	p, err := f.svc.Upload(context.Background(), actorWith(domain.RoleAdmin), "o1", uploadInput(domain.StageInitial, 1, "x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	for _, role := range []domain.Role{domain.RoleOrderUploader, domain.RolePatternMaker, domain.RolePatternChecker, domain.RoleGeneralUser} {
		if err := f.svc.Delete(context.Background(), actorWith(role), p.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s delete: got %v, want ErrForbidden", role, err)
		}
	}

	if err := f.svc.Delete(context.Background(), actorWith(domain.RoleAdmin), p.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := f.patterns.FindByID(context.Background(), p.ID); !errors.Is(err, domain.ErrPatternNotFound) {
		t.Error("record should be gone")
	}
}

func TestDeletePatternSurvivesBlobFailure(t *testing.T) {
	f := newPatternFixture(t)
	p, err := f.svc.Upload(context.Background(), actorWith(domain.RoleAdmin), "o1", uploadInput(domain.StageInitial, 1, "x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	f.blobs.failDelete = true

	if err := f.svc.Delete(context.Background(), actorWith(domain.RoleAdmin), p.ID); err != nil {
		t.Fatalf("delete should swallow blob failure: %v", err)
	}
	if _, err := f.patterns.FindByID(context.Background(), p.ID); !errors.Is(err, domain.ErrPatternNotFound) {
		t.Error("record should be gone despite blob failure")
	}
}

func TestDownloadUnknownPattern(t *testing.T) {
	f := newPatternFixture(t)

	_, err := f.svc.Download(context.Background(), actorWith(domain.RoleAdmin), "ghost")
	if !errors.Is(err, domain.ErrPatternNotFound) {
		t.Errorf("got %v, want ErrPatternNotFound", err)
	}
}
