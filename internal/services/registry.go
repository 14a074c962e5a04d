package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService         AuthService
	FileService         FileService
	CheckService        CheckService
	NotificationService NotificationService
	ReportService       ReportService
}
