package stats

import (
	"testing"
	"time"

	"github.com/driverlog/miletracker/internal/models"
)

func tripAt(id int64, start time.Time) models.Trip {
	return models.Trip{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		MonthKey:  models.MonthKeyFor(start),
	}
}

func TestBuildIndexLosslessPartition(t *testing.T) {
	base := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		tripAt(3, base.Add(4*time.Hour)),
		tripAt(1, base),
		tripAt(2, base.Add(2*time.Hour)),
		tripAt(4, base.AddDate(0, 0, 1)),
		tripAt(5, base.AddDate(0, 1, 0)),
		tripAt(6, base.AddDate(1, 0, 0)),
	}

	idx := BuildIndex(trips, time.UTC)

	flat := idx.Flatten()
	if len(flat) != len(trips) {
		t.Fatalf("Flatten() returned %d trips, want %d", len(flat), len(trips))
	}

	seen := make(map[int64]int)
	for _, tr := range flat {
		seen[tr.ID]++
	}
	for _, tr := range trips {
		if seen[tr.ID] != 1 {
			t.Errorf("trip %d appears %d times in flattened index, want exactly once", tr.ID, seen[tr.ID])
		}
	}
}

func TestBuildIndexDayOrdering(t *testing.T) {
	base := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		tripAt(2, base.Add(2*time.Hour)),
		tripAt(1, base),
		tripAt(3, base.Add(5*time.Hour)),
	}

	idx := BuildIndex(trips, time.UTC)

	day := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	bucket := idx.DayTrips(2024, 9, day)
	if len(bucket) != 3 {
		t.Fatalf("day bucket has %d trips, want 3", len(bucket))
	}
	for i := 1; i < len(bucket); i++ {
		if bucket[i].StartTime.Before(bucket[i-1].StartTime) {
			t.Errorf("bucket not sorted ascending at %d: %v before %v", i, bucket[i].StartTime, bucket[i-1].StartTime)
		}
	}
}

func TestBuildIndexStructure(t *testing.T) {
	trips := []models.Trip{
		tripAt(1, time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC)),
		tripAt(2, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)),
	}

	idx := BuildIndex(trips, time.UTC)

	years := idx.Years()
	if len(years) != 2 || years[0] != 2023 || years[1] != 2024 {
		t.Fatalf("Years() = %v, want [2023 2024]", years)
	}
	if months := idx.Months(2023); len(months) != 1 || months[0] != 12 {
		t.Errorf("Months(2023) = %v, want [12]", months)
	}
	if months := idx.Months(2024); len(months) != 1 || months[0] != 1 {
		t.Errorf("Months(2024) = %v, want [1]", months)
	}
}

func TestBuildIndexTimeZoneSplitsDays(t *testing.T) {
	// 2024-09-15 01:30 UTC is still 2024-09-14 in Los Angeles.
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	start := time.Date(2024, 9, 15, 1, 30, 0, 0, time.UTC)
	trips := []models.Trip{tripAt(1, start)}

	utcIdx := BuildIndex(trips, time.UTC)
	laIdx := BuildIndex(trips, la)

	utcDays := utcIdx.Days(2024, 9)
	laDays := laIdx.Days(2024, 9)
	if len(utcDays) != 1 || len(laDays) != 1 {
		t.Fatalf("expected one day bucket each, got %d utc / %d la", len(utcDays), len(laDays))
	}
	if utcDays[0].Day() != 15 {
		t.Errorf("UTC day = %d, want 15", utcDays[0].Day())
	}
	if laDays[0].Day() != 14 {
		t.Errorf("LA day = %d, want 14", laDays[0].Day())
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	idx := BuildIndex(nil, time.UTC)
	if len(idx.Years()) != 0 {
		t.Errorf("Years() on empty index = %v, want none", idx.Years())
	}
	if flat := idx.Flatten(); len(flat) != 0 {
		t.Errorf("Flatten() on empty index = %v, want empty", flat)
	}
}
