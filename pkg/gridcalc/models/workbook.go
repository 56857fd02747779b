package models

// WorkbookData represents workbook-level container with per-sheet state.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists sheets in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its state.
	Sheets map[string]SheetState `json:"sheets"`
}
