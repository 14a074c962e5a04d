package repositories

import (
	"errors"

	"codecheck_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCheckNotFound = errors.New("check not found")

type CheckRepository interface {
	// GetOrCreateByFile returns the file's existing check or creates a
	// fresh one. A file has at most one current check record.
	GetOrCreateByFile(db *gorm.DB, fileID string) (*models.CodeCheck, error)
	Update(db *gorm.DB, check *models.CodeCheck) error
	FindAll(db *gorm.DB) ([]models.CodeCheck, error)
	FindPendingNotification(db *gorm.DB) ([]models.CodeCheck, error)
}

type CheckRepositoryImpl struct{}

func NewCheckRepository() CheckRepository {
	return &CheckRepositoryImpl{}
}

func (r *CheckRepositoryImpl) GetOrCreateByFile(db *gorm.DB, fileID string) (*models.CodeCheck, error) {
	var check models.CodeCheck
	err := db.Where(models.CodeCheck{FileID: fileID}).
		Attrs(models.CodeCheck{Status: models.CheckStatusProgress}).
		FirstOrCreate(&check).Error
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func (r *CheckRepositoryImpl) Update(db *gorm.DB, check *models.CodeCheck) error {
	return db.Save(check).Error
}

func (r *CheckRepositoryImpl) FindAll(db *gorm.DB) ([]models.CodeCheck, error) {
	var checks []models.CodeCheck
	err := db.Preload("File").Find(&checks).Error
	return checks, err
}

// FindPendingNotification returns verified checks whose owner has not been
// emailed yet, with the file and its owner preloaded for the send.
func (r *CheckRepositoryImpl) FindPendingNotification(db *gorm.DB) ([]models.CodeCheck, error) {
	var checks []models.CodeCheck
	err := db.Preload("File").Preload("File.User").
		Where("status = ? AND is_sent = ?", models.CheckStatusVerified, false).
		Find(&checks).Error
	return checks, err
}
