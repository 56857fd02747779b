package store

import (
	"testing"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

func TestDeleteRegion(t *testing.T) {
	s := New().
		SetCell(0, 0, "a").
		SetCell(1, 1, "b").
		SetStyle(2, 2, ToggleBold()).
		SetCell(3, 3, "outside")

	next := s.DeleteRegion(models.NewSelection(2, 2, 0, 0))

	if next.Len() != 1 {
		t.Fatalf("Expected 1 cell left, got %d", next.Len())
	}
	if _, ok := next.Lookup("D4"); !ok {
		t.Error("Expected D4 outside the region to survive")
	}
	if s.Len() != 4 {
		t.Errorf("Original store mutated: %d cells", s.Len())
	}
}

func TestStyleRegion(t *testing.T) {
	s := New().SetCell(0, 0, "a").SetStyle(1, 1, ToggleBold())

	next := s.StyleRegion(models.NewSelection(1, 1, 0, 0), ToggleBold())

	if next.Len() != 3 {
		t.Fatalf("Expected 3 cells, got %d", next.Len())
	}
	a, _ := next.Lookup("A1")
	if a.Value != "a" || a.Style == nil || !a.Style.Bold {
		t.Errorf("Expected A1 to keep its value and turn bold, got %+v", a)
	}
	if _, ok := next.Lookup("B2"); ok {
		t.Error("Expected B2 to be removed once its only style was cleared")
	}
	if cell, ok := next.Lookup("B1"); !ok || !cell.Style.Bold {
		t.Errorf("Expected bold B1, got %+v", cell)
	}
	if s.Len() != 2 {
		t.Errorf("Original store mutated: %d cells", s.Len())
	}
}

func TestCopyRegion(t *testing.T) {
	s := New().SetCell(0, 0, "a").SetCell(0, 2, "c").SetCell(1, 1, "e").SetCell(5, 5, "far")

	cells := s.CopyRegion(models.NewSelection(0, 0, 1, 2))
	if len(cells) != 3 {
		t.Fatalf("Expected 3 cells, got %d", len(cells))
	}
	for i, expected := range []string{"A1", "C1", "B2"} {
		if cells[i].ID != expected {
			t.Errorf("cells[%d] = %s, expected %s", i, cells[i].ID, expected)
		}
	}
}

func TestPasteRegion(t *testing.T) {
	tests := []struct {
		name     string
		origin   models.Address
		expected map[string]string
	}{
		{
			name:     "offset down right",
			origin:   models.Address{Row: 4, Col: 3},
			expected: map[string]string{"D5": "9", "E5": "=B2+1"},
		},
		{
			name:     "offset up left",
			origin:   models.Address{Row: 0, Col: 0},
			expected: map[string]string{"A1": "9", "B1": "=B2+1"},
		},
		{
			name:     "partially off grid",
			origin:   models.Address{Row: 0, Col: -1},
			expected: map[string]string{"A1": "=B2+1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New().SetCell(1, 1, "9").SetCell(1, 2, "=B2+1")
			clip := src.CopyRegion(models.NewSelection(1, 1, 1, 2))

			s := New().PasteRegion(clip, tt.origin, models.Address{Row: 1, Col: 1})
			if s.Len() != len(tt.expected) {
				t.Fatalf("Expected %d cells, got %v", len(tt.expected), s.Cells())
			}
			for label, value := range tt.expected {
				cell, ok := s.Lookup(label)
				if !ok {
					t.Errorf("Expected %s to be pasted", label)
					continue
				}
				if cell.Value != value || cell.ID != label {
					t.Errorf("%s = %+v, expected value %q", label, cell, value)
				}
			}
		})
	}
}

func TestPasteRegionOverwrites(t *testing.T) {
	s := New().SetCell(4, 3, "old").SetStyle(4, 3, ToggleBold())
	clip := []models.Cell{{ID: "B2", Row: 1, Col: 1, Value: "9"}}

	s = s.PasteRegion(clip, models.Address{Row: 4, Col: 3}, models.Address{Row: 1, Col: 1})

	cell, ok := s.Lookup("D5")
	if !ok {
		t.Fatal("Expected D5 after paste")
	}
	if cell.Value != "9" || cell.Style != nil {
		t.Errorf("Expected D5 replaced by pasted cell, got %+v", cell)
	}
}
