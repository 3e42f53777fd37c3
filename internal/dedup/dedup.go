package dedup

import (
	"regexp"

	"github.com/rickgao/ghostsync/internal/model"
)

const tokenPrefix = "alpaca_id="

var tokenRE = regexp.MustCompile(`alpaca_id=(\S+)`)

// Token returns the comment token for an Alpaca activity id.
func Token(id string) string {
	return tokenPrefix + id
}

// Extract returns the id carried by a comment, or "" if there is none.
func Extract(comment string) string {
	m := tokenRE.FindStringSubmatch(comment)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExistingIDs collects the ids of activities already in Ghostfolio.
func ExistingIDs(existing []model.ExistingActivity) map[string]struct{} {
	ids := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		if id := Extract(e.Comment); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Filter returns the candidates whose id is non-empty and not present in
// existing, as import payloads. Order is preserved; a candidate id repeated
// within candidates is kept once.
func Filter(candidates []model.Activity, existing []model.ExistingActivity) []model.ImportActivity {
	seen := ExistingIDs(existing)
	out := make([]model.ImportActivity, 0, len(candidates))

	for _, c := range candidates {
		id := candidateID(c)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, c.Import())
	}
	return out
}

// candidateID reads the id from the comment, the same way existing
// activities are read, so both sides compare the stored token.
func candidateID(c model.Activity) string {
	return Extract(c.Comment)
}
