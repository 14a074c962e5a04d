package repositories

import (
	"errors"

	"codecheck_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository interface {
	Create(db *gorm.DB, file *models.UploadedFile) error
	FindByID(db *gorm.DB, id string) (*models.UploadedFile, error)
	FindByIDWithChecks(db *gorm.DB, id string) (*models.UploadedFile, error)
	FindByUser(db *gorm.DB, userID string) ([]models.UploadedFile, error)
	FindNew(db *gorm.DB) ([]models.UploadedFile, error)
	Update(db *gorm.DB, file *models.UploadedFile) error
	Delete(db *gorm.DB, id string) error
}

type FileRepositoryImpl struct{}

func NewFileRepository() FileRepository {
	return &FileRepositoryImpl{}
}

func (r *FileRepositoryImpl) Create(db *gorm.DB, file *models.UploadedFile) error {
	return db.Create(file).Error
}

func (r *FileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	err := db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) FindByIDWithChecks(db *gorm.DB, id string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	err := db.Preload("Checks").First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := db.Where("user_id = ?", userID).Find(&files).Error
	return files, err
}

// FindNew returns the files still awaiting a check.
func (r *FileRepositoryImpl) FindNew(db *gorm.DB) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := db.Where("is_new = ?", true).Find(&files).Error
	return files, err
}

func (r *FileRepositoryImpl) Update(db *gorm.DB, file *models.UploadedFile) error {
	return db.Save(file).Error
}

// Delete removes the file record and its check history.
func (r *FileRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Delete(&models.CodeCheck{}, "file_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&models.UploadedFile{}, "id = ?", id).Error
}
