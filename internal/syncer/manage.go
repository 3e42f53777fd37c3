package syncer

import (
	"context"
	"fmt"

	"github.com/rickgao/ghostsync/internal/model"
)

// ListActivities returns every activity of the configured account.
// The account is never created here.
func (s *Syncer) ListActivities(ctx context.Context) ([]model.ExistingActivity, error) {
	acct, err := s.dst.FindAccountByName(ctx, s.cfg.AccountName)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	acts, err := s.dst.ListActivities(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("listed activities", "account_id", acct.ID, "count", len(acts))
	return acts, nil
}

// DeleteActivities deletes every activity of the configured account and
// returns how many there were.
func (s *Syncer) DeleteActivities(ctx context.Context) (int, error) {
	acct, err := s.dst.FindAccountByName(ctx, s.cfg.AccountName)
	if err != nil {
		return 0, fmt.Errorf("delete activities: %w", err)
	}

	acts, err := s.dst.ListActivities(ctx, acct.ID)
	if err != nil {
		return 0, err
	}

	s.logger.Warn("deleting all activities", "account_id", acct.ID, "count", len(acts))
	if err := s.dst.DeleteActivities(ctx, acct.ID); err != nil {
		return 0, err
	}
	return len(acts), nil
}
