package dtos

type ColumnScoreResponse struct {
	Column int            `json:"column"`
	Header string         `json:"header"`
	Scores map[string]int `json:"scores"`
}

type ExcelInspectResponse struct {
	SheetName  string                `json:"sheet_name"`
	UsableRows int                   `json:"usable_rows"`
	Header     []string              `json:"header"`
	Columns    []ColumnScoreResponse `json:"columns"`
	Assignment map[string]int        `json:"assignment,omitempty"`
	Error      string                `json:"error,omitempty"`
}
