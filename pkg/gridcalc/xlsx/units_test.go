package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestUnitConversions(t *testing.T) {
	if got := CharsToPixels(defaultColumnChars); got != 64 {
		t.Errorf("CharsToPixels(default) = %v, expected 64", got)
	}
	if got := PointsToPixels(defaultRowPoints); got != 20 {
		t.Errorf("PointsToPixels(default) = %v, expected 20", got)
	}
	if got := PixelsToPoints(40); got != 30 {
		t.Errorf("PixelsToPoints(40) = %v, expected 30", got)
	}
	if got := CharsToPixels(PixelsToChars(140)); got != 140 {
		t.Errorf("width round trip = %v, expected 140", got)
	}
}

func TestDimensionsRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	widths := map[int]float64{1: 140, 3: 35}
	heights := map[int]float64{0: 40, 2: 32}
	if err := WriteDimensions(f, "Sheet1", widths, heights); err != nil {
		t.Fatalf("WriteDimensions failed: %v", err)
	}
	f.SetCellValue("Sheet1", "E5", "x")

	tmpFile := filepath.Join(t.TempDir(), "dims.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	gotWidths, gotHeights, err := ReadDimensions(f2, "Sheet1", 5, 5)
	if err != nil {
		t.Fatalf("ReadDimensions failed: %v", err)
	}
	if len(gotWidths) != 2 || gotWidths[1] != 140 || gotWidths[3] != 35 {
		t.Errorf("widths = %v, expected %v", gotWidths, widths)
	}
	if len(gotHeights) != 2 || gotHeights[0] != 40 || gotHeights[2] != 32 {
		t.Errorf("heights = %v, expected %v", gotHeights, heights)
	}
}
