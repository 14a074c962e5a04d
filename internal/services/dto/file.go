package dto

import "encoding/json"

type FileResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UploadDate  string `json:"upload_date"`
	Update      string `json:"update"`
	IsNew       bool   `json:"is_new"`
}

type CheckResponse struct {
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	Result    json.RawMessage `json:"result"`
}

type DetailFileResponse struct {
	ID       string          `json:"id"`
	FileName string          `json:"file_name"`
	Update   string          `json:"update"`
	Status   string          `json:"status"`
	Checks   []CheckResponse `json:"checks"`
}
