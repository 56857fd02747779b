// Package xlsx reads and writes sheet states as xlsx worksheets.
package xlsx

import "math"

// PixelsPerChar is the pixel width of one character of the default font,
// the unit xlsx uses for column widths.
const PixelsPerChar = 7

// PointsPerPixel is the number of points per pixel at 96 DPI.
// 1 inch = 72 points, and at 96 DPI, 1 inch = 96 pixels.
const PointsPerPixel = 0.75

const (
	// defaultColumnChars is the column width excelize reports for columns
	// without a custom width.
	defaultColumnChars = 9.140625
	// defaultRowPoints is the row height excelize reports for rows without
	// a custom height.
	defaultRowPoints = 15
)

// CharsToPixels converts an xlsx column width to pixels.
func CharsToPixels(chars float64) float64 {
	return math.Round(chars * PixelsPerChar)
}

// PixelsToChars converts a pixel width to an xlsx column width.
func PixelsToChars(px float64) float64 {
	return px / PixelsPerChar
}

// PointsToPixels converts a row height in points to pixels.
func PointsToPixels(pt float64) float64 {
	return math.Round(pt / PointsPerPixel)
}

// PixelsToPoints converts a pixel height to points.
func PixelsToPoints(px float64) float64 {
	return px * PointsPerPixel
}
