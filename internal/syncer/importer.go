package syncer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/tidwall/pretty"

	"github.com/rickgao/ghostsync/internal/ghostfolio"
	"github.com/rickgao/ghostsync/internal/model"
)

// sortByDate orders activities by date. Activities on the same instant keep
// their fetch order.
func sortByDate(acts []model.ImportActivity) {
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].Date.Before(acts[j].Date)
	})
}

// batches splits acts into consecutive slices of at most size elements.
func batches(acts []model.ImportActivity, size int) [][]model.ImportActivity {
	var out [][]model.ImportActivity
	for start := 0; start < len(acts); start += size {
		end := min(start+size, len(acts))
		out = append(out, acts[start:end])
	}
	return out
}

// importAll sends every batch once, in order. Failures are recorded in rep.
func (s *Syncer) importAll(ctx context.Context, log *slog.Logger, acts []model.ImportActivity, dryRun bool, rep *Report) {
	sortByDate(acts)

	for i, batch := range batches(acts, s.cfg.BatchSize) {
		n := i + 1
		rep.Batches++

		log.Info("importing batch", "batch", n, "size", len(batch), "dry_run", dryRun)
		if log.Enabled(ctx, slog.LevelDebug) {
			if raw, err := json.Marshal(batch); err == nil {
				log.Debug("batch payload", "batch", n, "activities", string(pretty.Pretty(raw)))
			}
		}

		res, err := s.dst.ImportActivities(ctx, batch, dryRun)
		if err != nil {
			rep.FailedBatches = append(rep.FailedBatches, n)
			log.Error("import batch failed",
				"batch", n,
				"size", len(batch),
				"first_date", batch[0].Date,
				"error", err,
			)
			continue
		}

		rep.Imported += len(batch)
		log.Info("imported batch", "batch", n, "accepted", res.Accepted)
	}
}

// updateBalance pushes Alpaca cash to the Ghostfolio account.
func (s *Syncer) updateBalance(ctx context.Context, log *slog.Logger, acct model.Account, rep *Report) {
	bal, err := s.src.FetchAccount(ctx)
	if err != nil {
		log.Error("fetch alpaca account failed, balance not updated", "error", err)
		return
	}
	rep.Cash = bal.Cash
	rep.Equity = bal.Equity

	log.Info("alpaca account",
		"cash", formatAmount(bal.Cash, s.cfg.Currency),
		"equity", formatAmount(bal.Equity, s.cfg.Currency),
	)

	err = s.dst.UpdateAccount(ctx, acct.ID, ghostfolio.AccountInput{
		Name:       s.cfg.AccountName,
		Currency:   s.cfg.Currency,
		Balance:    bal.Cash.InexactFloat64(),
		IsExcluded: acct.IsExcluded,
		PlatformID: s.platformID(acct),
	})
	if err != nil {
		log.Error("update account balance failed", "account_id", acct.ID, "error", err)
		return
	}
	rep.BalanceUpdated = true
}
