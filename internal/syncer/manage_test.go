package syncer

import (
	"context"
	"errors"
	"testing"

	"github.com/rickgao/ghostsync/internal/ghostfolio"
	"github.com/rickgao/ghostsync/internal/model"
)

func TestListActivities(t *testing.T) {
	dst := &fakeDestination{
		accounts: []model.Account{{ID: accountID, Name: "Alpaca"}},
		stored: []model.ExistingActivity{
			{ID: "a1", Comment: "alpaca_id=x1"},
			{ID: "a2", Comment: "alpaca_id=x2"},
		},
	}
	s := newTestSyncer(&fakeSource{}, dst, nil)

	acts, err := s.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(acts) != 2 {
		t.Errorf("len(acts) = %d, want 2", len(acts))
	}
}

func TestDeleteActivities(t *testing.T) {
	dst := &fakeDestination{
		accounts: []model.Account{{ID: accountID, Name: "Alpaca"}},
		stored: []model.ExistingActivity{
			{ID: "a1"}, {ID: "a2"}, {ID: "a3"},
		},
	}
	s := newTestSyncer(&fakeSource{}, dst, nil)

	n, err := s.DeleteActivities(context.Background())
	if err != nil {
		t.Fatalf("DeleteActivities() error = %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}
	if len(dst.deleted) != 1 || dst.deleted[0] != accountID {
		t.Errorf("deleted accounts = %v, want [%s]", dst.deleted, accountID)
	}
}

func TestManageNeverCreatesAccount(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Syncer) error
	}{
		{"list", func(s *Syncer) error {
			_, err := s.ListActivities(context.Background())
			return err
		}},
		{"delete", func(s *Syncer) error {
			_, err := s.DeleteActivities(context.Background())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := &fakeDestination{}
			err := tt.run(newTestSyncer(&fakeSource{}, dst, nil))
			if !errors.Is(err, ghostfolio.ErrAccountNotFound) {
				t.Errorf("error = %v, want ErrAccountNotFound", err)
			}
			if len(dst.created) != 0 {
				t.Errorf("created %d accounts, want 0", len(dst.created))
			}
			if len(dst.deleted) != 0 {
				t.Errorf("deleted = %v, want none", dst.deleted)
			}
		})
	}
}
