package journal

import "sort"

// Merge folds candidate trades into an existing ledger and returns the
// new ledger. For each candidate whose ID already exists the old entry
// is replaced with the refreshed one; otherwise the candidate is
// inserted. Manual entries pass through untouched. The input slices
// are not modified.
//
// Merging the same candidates twice yields the same ledger, which is
// what lets reconciliation re-run over overlapping history safely.
func Merge(existing, candidates []Trade) []Trade {
	merged := make([]Trade, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.ID] = i
	}

	for _, c := range candidates {
		i, ok := index[c.ID]
		if !ok {
			index[c.ID] = len(merged)
			merged = append(merged, c)
			continue
		}
		if merged[i].Source == Manual {
			// A synthesized candidate never overwrites a user-authored
			// entry, even on an ID collision.
			continue
		}
		merged[i] = c
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].OpenedAt.Equal(merged[j].OpenedAt) {
			return merged[i].OpenedAt.Before(merged[j].OpenedAt)
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}

// RetireStaleOpen drops synced open records whose instrument is no
// longer live. A flattened position stops appearing in the snapshot, so
// nothing ever targets its (instrument, active) identity again; without
// retirement the old open record would shadow the reconstructed closed
// round trip and the ledger would carry both. Manual entries are never
// retired. Returns the filtered ledger and the number of records
// dropped.
func RetireStaleOpen(trades []Trade, live map[string]bool) ([]Trade, int) {
	out := make([]Trade, 0, len(trades))
	retired := 0
	for _, t := range trades {
		if t.Source == Synced && t.Status == Open && !live[t.Instrument] {
			retired++
			continue
		}
		out = append(out, t)
	}
	return out, retired
}
