package order

// QueryOrdersModel represents filter parameters for listing orders.
type QueryOrdersModel struct {
	SubjectID *int64 `json:"subjectId,omitempty"`
	StatusID  *int   `json:"statusId,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
