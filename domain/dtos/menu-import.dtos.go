package dtos

type MenuImportPreviewRequest struct {
	BranchId string `form:"branch_id" json:"branch_id" validate:"required"`
}

type MenuItemSearchRequest struct {
	Query    string `query:"q" json:"q" validate:"required"`
	BranchId string `query:"branch_id" json:"branch_id"`
	Limit    int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

// MenuImportJob is the queue message for an unattended import. File is base64
// in JSON.
type MenuImportJob struct {
	JobId           uint64         `json:"job_id" validate:"required"`
	BranchId        string         `json:"branch_id" validate:"required"`
	Filename        string         `json:"filename"`
	File            []byte         `json:"file" validate:"required"`
	AutoConfirm     bool           `json:"auto_confirm"`
	ExpectedMapping map[string]int `json:"expected_mapping"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Stage     string `json:"stage,omitempty"`
	Validated *int   `json:"validated,omitempty"`
}
