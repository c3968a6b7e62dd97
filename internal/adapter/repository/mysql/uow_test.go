package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	membershipDomain "estate-access-service/internal/domain/membership"
	residentDomain "estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/uow"
	"estate-access-service/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates every table the unit of work can touch.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&membershipDomain.Request{}, &residentDomain.Resident{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	requests := NewMembershipRepository(db)
	residents := NewResidentRepository(db)

	requestID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		m := makeRequest(requestID, "12345678")
		m.Status = membershipDomain.StatusApproved
		if err := r.Memberships.Create(ctx, m); err != nil {
			return err
		}
		res := &residentDomain.Resident{
			ResidentName: m.ResidentName,
			NationalID:   m.NationalID,
			PhoneNumber:  m.PhoneNumber,
			Email:        m.Email,
			HouseNumber:  m.HouseNumber,
			CourtName:    m.CourtName,
			RoleName:     m.RoleName,
			DateJoined:   time.Now().UTC(),
			Status:       residentDomain.StatusActive,
		}
		if err := r.Residents.Create(ctx, res); err != nil {
			return err
		}
		m.Status = membershipDomain.StatusSynced
		m.RecordID = &res.ID
		return r.Memberships.Save(ctx, m)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	got, err := requests.GetByRequestID(ctx, requestID)
	if err != nil {
		t.Fatalf("request not visible after commit: %v", err)
	}
	if got.Status != membershipDomain.StatusSynced || got.RecordID == nil {
		t.Fatalf("request not synced: %+v", got)
	}
	if _, err := residents.GetByNationalID(ctx, "12345678"); err != nil {
		t.Fatalf("resident not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	requests := NewMembershipRepository(db)
	residents := NewResidentRepository(db)

	sentinel := errors.New("boom")
	requestID := id.NewID32()

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Memberships.Create(ctx, makeRequest(requestID, "12345678")); err != nil {
			return err
		}
		res := &residentDomain.Resident{
			ResidentName: "Jane Wanjiku",
			NationalID:   "12345678",
			DateJoined:   time.Now().UTC(),
			Status:       residentDomain.StatusActive,
		}
		if err := r.Residents.Create(ctx, res); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel error, got %v", err)
	}

	if _, err := requests.GetByRequestID(ctx, requestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("request leaked past rollback: %v", err)
	}
	if _, err := residents.GetByNationalID(ctx, "12345678"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("resident leaked past rollback: %v", err)
	}
}
