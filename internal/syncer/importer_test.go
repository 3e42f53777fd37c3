package syncer

import (
	"testing"
	"time"

	"github.com/rickgao/ghostsync/internal/model"
)

func TestBatches(t *testing.T) {
	tests := []struct {
		n     int
		size  int
		sizes []int
	}{
		{0, 10, nil},
		{1, 10, []int{1}},
		{10, 10, []int{10}},
		{11, 10, []int{10, 1}},
		{25, 10, []int{10, 10, 5}},
	}

	for _, tt := range tests {
		acts := make([]model.ImportActivity, tt.n)
		got := batches(acts, tt.size)
		if len(got) != len(tt.sizes) {
			t.Errorf("batches(%d, %d) = %d batches, want %d", tt.n, tt.size, len(got), len(tt.sizes))
			continue
		}
		for i, b := range got {
			if len(b) != tt.sizes[i] {
				t.Errorf("batches(%d, %d)[%d] size = %d, want %d", tt.n, tt.size, i, len(b), tt.sizes[i])
			}
		}
	}
}

func TestSortByDateStable(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	acts := []model.ImportActivity{
		{Comment: "c", Date: day.AddDate(0, 0, 2)},
		{Comment: "a1", Date: day},
		{Comment: "b", Date: day.AddDate(0, 0, 1)},
		{Comment: "a2", Date: day},
	}

	sortByDate(acts)

	want := []string{"a1", "a2", "b", "c"}
	for i, a := range acts {
		if a.Comment != want[i] {
			t.Errorf("acts[%d] = %q, want %q", i, a.Comment, want[i])
		}
	}
}
