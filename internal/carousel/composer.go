package carousel

import "sort"

// Compose fills the fixed slot order from booked candidates, backfilling
// empty positions by cycling the corporate fallback pool. Candidates are
// keyed by their priority-slot name, ranked within each slot by location
// specificity with ties broken by recency, and a booking never wins two
// positions in one rotation. When the fallback pool is empty the paid
// winners repeat instead, so a sold ad is never dropped. The result is
// exactly four items, or empty when there is nothing to show at all.
func Compose(candidates map[string][]Candidate, pool []FallbackAd) ComposeResult {
	for _, group := range candidates {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Specificity != group[j].Specificity {
				return group[i].Specificity > group[j].Specificity
			}
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
	}

	used := make(map[string]bool)
	picked := make([]*Candidate, len(SlotOrder))
	var winners []*Candidate
	for pos, slotName := range SlotOrder {
		for i := range candidates[slotName] {
			c := &candidates[slotName][i]
			if !used[c.BookingID.String()] {
				used[c.BookingID.String()] = true
				picked[pos] = c
				winners = append(winners, c)
				break
			}
		}
	}

	if len(winners) == 0 && len(pool) == 0 {
		return ComposeResult{Items: []DisplayItem{}}
	}

	items := make([]DisplayItem, 0, len(SlotOrder))
	fallbackIdx, winnerIdx := 0, 0
	for pos, slotName := range SlotOrder {
		item := DisplayItem{Position: pos + 1, SlotName: slotName}

		c := picked[pos]
		if c == nil && len(pool) > 0 {
			ad := pool[fallbackIdx%len(pool)]
			fallbackIdx++
			item.ImageURL = ad.ImageURL
			item.LinkURL = ad.LinkURL
			item.IsFallback = true
			items = append(items, item)
			continue
		}
		if c == nil {
			c = winners[winnerIdx%len(winners)]
			winnerIdx++
		}

		id := c.BookingID
		slotID := c.SlotID
		item.ImageURL = c.ImageURL
		item.LinkURL = c.LinkURL
		item.BookingID = &id
		item.SlotID = &slotID
		items = append(items, item)
	}

	return ComposeResult{Items: items}
}
