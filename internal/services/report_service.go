package services

import (
	"encoding/json"
	"strings"

	"codecheck_backend/internal/repositories"
	"codecheck_backend/internal/services/dto"
	"codecheck_backend/internal/utils"
	"codecheck_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const noResults = "No results"

type ReportService interface {
	ListReports(db *gorm.DB) ([]dto.ReportRow, error)
}

type ReportServiceImpl struct {
	checkRepo repositories.CheckRepository
}

func NewReportService(checkRepo repositories.CheckRepository) ReportService {
	return &ReportServiceImpl{checkRepo: checkRepo}
}

func (s *ReportServiceImpl) ListReports(db *gorm.DB) ([]dto.ReportRow, error) {
	checks, err := s.checkRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.ReportRow, 0, len(checks))
	for i := range checks {
		check := &checks[i]

		fileName := ""
		if check.File != nil {
			fileName = utils.FormatFilename(check.File.FileName)
		}

		rows = append(rows, dto.ReportRow{
			ID:        check.ID,
			FileName:  fileName,
			Status:    string(check.Status),
			CreatedAt: formatDateTime(check.CreatedAt),
			Rendered:  RenderResult(check.Result),
		})
	}

	return rows, nil
}

// RenderResult formats a stored result payload for display. Each entry of
// the "comment" list becomes a "<label> -> <message>" line. Anything that
// does not parse, or has no comments, renders as the placeholder.
func RenderResult(data []byte) string {
	if len(data) == 0 {
		return noResults
	}

	var payload struct {
		Comment []map[string]string `json:"comment"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return noResults
	}

	var lines []string
	for _, comment := range payload.Comment {
		for label, message := range comment {
			lines = append(lines, label+" -> "+message)
		}
	}

	if len(lines) == 0 {
		return noResults
	}
	return strings.Join(lines, "\n")
}
