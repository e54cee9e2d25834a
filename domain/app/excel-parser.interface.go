package app

type ExcelParserService interface {
	Parse(file []byte) (*ParsedSheet, error)
}
