package handlers

import (
	"codecheck_backend/internal/services"
	"codecheck_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth   *AuthHandler
	File   *FileHandler
	Check  *CheckHandler
	Report *ReportHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:   NewAuthHandler(base, sc.AuthService),
		File:   NewFileHandler(base, sc.FileService),
		Check:  NewCheckHandler(base, sc.CheckService),
		Report: NewReportHandler(base, sc.ReportService),
	}
}
