package uowmock

import (
	"context"
	"errors"
	"testing"

	"estate-access-service/internal/domain/uow"
	"estate-access-service/internal/testutil/membershipmock"
)

func TestUoW_Unimplemented(t *testing.T) {
	m := New()
	err := m.WithinTx(context.Background(), func(r uow.Repos) error { return nil })
	if !errors.Is(err, errUnimplemented) {
		t.Fatalf("want errUnimplemented, got %v", err)
	}
}

func TestUoW_Passthrough(t *testing.T) {
	repos := uow.Repos{Memberships: &membershipmock.Repo{}}
	m := Passthrough(repos)

	var got uow.Repos
	err := m.WithinTx(context.Background(), func(r uow.Repos) error {
		got = r
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
	if got.Memberships != repos.Memberships {
		t.Fatalf("repos not passed through")
	}
}

func TestUoW_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	m := Passthrough(uow.Repos{})
	err := m.WithinTx(context.Background(), func(r uow.Repos) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
}
