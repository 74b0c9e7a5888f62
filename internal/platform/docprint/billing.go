package docprint

import "time"

// AggregateBilling groups line items by the calendar date they were billed,
// preserving insertion order within each group and the order in which dates
// first appear. Grouping follows the wall-clock date each item carries, so
// items billed on the same day stay together whatever zone their timestamps
// are in. The grand total sums each item's stored Total field; totals are
// trusted as supplied and are not recomputed from quantity and unit price.
func AggregateBilling(items []LineItem) BillSummary {
	var summary BillSummary
	index := make(map[string]int)

	for _, item := range items {
		key := item.Date.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			y, m, d := item.Date.Date()
			i = len(summary.Groups)
			index[key] = i
			summary.Groups = append(summary.Groups, DateGroup{
				Date: time.Date(y, m, d, 0, 0, 0, 0, item.Date.Location()),
			})
		}
		summary.Groups[i].Items = append(summary.Groups[i].Items, item)
		summary.GrandTotal += item.Total
	}

	return summary
}
