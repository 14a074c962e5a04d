package dto

type ReportRow struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	Rendered  string `json:"rendered"`
}
