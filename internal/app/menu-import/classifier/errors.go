package menu_classifier

import "errors"

var (
	ErrInsufficientData = errors.New("insufficient data: the sheet needs at least a header and one item row")
	ErrColumnDetection  = errors.New("column detection failed: ensure your file has Name and Price columns")
	ErrEmptyExtraction  = errors.New("no menu items found: every row was empty or looked like a header")
)
