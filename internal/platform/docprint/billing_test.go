package docprint

import (
	"testing"
	"time"
)

func TestAggregateBilling_SingleDayScenario(t *testing.T) {
	day := date(2024, time.May, 2)
	items := []LineItem{
		{Description: "Consultation", Total: 500, Date: day},
		{Description: "Lab Panel", Total: 1200, Date: day},
		{Description: "Dressing", Total: 300, Date: day},
	}

	summary := AggregateBilling(items)

	if len(summary.Groups) != 1 {
		t.Fatalf("expected 1 date group, got %d", len(summary.Groups))
	}
	if len(summary.Groups[0].Items) != 3 {
		t.Fatalf("expected 3 items in group, got %d", len(summary.Groups[0].Items))
	}
	if summary.GrandTotal != 2000 {
		t.Errorf("expected grand total 2000, got %v", summary.GrandTotal)
	}
}

func TestAggregateBilling_PartitionAndOrder(t *testing.T) {
	day1 := date(2024, time.May, 1)
	day2 := date(2024, time.May, 3)
	items := []LineItem{
		{Description: "a", Total: 10, Date: day1},
		{Description: "b", Total: 20, Date: day2},
		{Description: "c", Total: 30, Date: day1},
		{Description: "d", Total: 40, Date: day2},
	}

	summary := AggregateBilling(items)

	if len(summary.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(summary.Groups))
	}

	// Dates appear in first-seen order.
	if !summary.Groups[0].Date.Equal(day1) || !summary.Groups[1].Date.Equal(day2) {
		t.Errorf("groups out of order: %v, %v", summary.Groups[0].Date, summary.Groups[1].Date)
	}

	// Relative order within a group is preserved.
	if summary.Groups[0].Items[0].Description != "a" || summary.Groups[0].Items[1].Description != "c" {
		t.Errorf("day1 group order wrong: %+v", summary.Groups[0].Items)
	}
	if summary.Groups[1].Items[0].Description != "b" || summary.Groups[1].Items[1].Description != "d" {
		t.Errorf("day2 group order wrong: %+v", summary.Groups[1].Items)
	}

	// Partition: every item lands in exactly one group.
	count := 0
	for _, g := range summary.Groups {
		count += len(g.Items)
	}
	if count != len(items) {
		t.Errorf("expected %d items across groups, got %d", len(items), count)
	}

	if summary.GrandTotal != 100 {
		t.Errorf("expected grand total 100, got %v", summary.GrandTotal)
	}
}

func TestAggregateBilling_TrustsStoredTotals(t *testing.T) {
	// The stored total disagrees with quantity * unit price; aggregation must
	// reflect the stored value.
	items := []LineItem{
		{Description: "x", Quantity: 2, UnitPrice: 100, Total: 150, Date: date(2024, time.May, 1)},
	}
	summary := AggregateBilling(items)
	if summary.GrandTotal != 150 {
		t.Errorf("expected stored total 150 to be trusted, got %v", summary.GrandTotal)
	}
}

func TestAggregateBilling_TimeOfDayIgnored(t *testing.T) {
	morning := time.Date(2024, time.May, 1, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2024, time.May, 1, 21, 40, 0, 0, time.UTC)
	items := []LineItem{
		{Description: "a", Total: 1, Date: morning},
		{Description: "b", Total: 2, Date: evening},
	}
	summary := AggregateBilling(items)
	if len(summary.Groups) != 1 {
		t.Errorf("expected one calendar-date group, got %d", len(summary.Groups))
	}
}

func TestAggregateBilling_NonUTCZoneSingleDay(t *testing.T) {
	zone := time.FixedZone("UTC+1", 3600)
	items := []LineItem{
		{Description: "a", Total: 1, Date: time.Date(2024, time.May, 1, 0, 30, 0, 0, zone)},
		{Description: "b", Total: 2, Date: time.Date(2024, time.May, 1, 23, 0, 0, 0, zone)},
	}

	summary := AggregateBilling(items)

	if len(summary.Groups) != 1 {
		t.Fatalf("expected one group for one calendar date, got %d", len(summary.Groups))
	}
	y, m, d := summary.Groups[0].Date.Date()
	if y != 2024 || m != time.May || d != 1 {
		t.Errorf("group labeled %v, expected 1 May 2024", summary.Groups[0].Date)
	}
}

func TestAggregateBilling_CrossZoneWallClockDate(t *testing.T) {
	// Both timestamps read 1 May on their own clocks even though the second
	// is 30 April in UTC.
	items := []LineItem{
		{Description: "a", Total: 1, Date: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)},
		{Description: "b", Total: 2, Date: time.Date(2024, time.May, 1, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))},
	}

	summary := AggregateBilling(items)

	if len(summary.Groups) != 1 {
		t.Fatalf("expected one group for shared wall-clock date, got %d", len(summary.Groups))
	}
	if len(summary.Groups[0].Items) != 2 {
		t.Errorf("expected both items in the group, got %d", len(summary.Groups[0].Items))
	}
}

func TestAggregateBilling_Empty(t *testing.T) {
	summary := AggregateBilling(nil)
	if len(summary.Groups) != 0 || summary.GrandTotal != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
