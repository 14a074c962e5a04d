package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"codecheck_backend/internal/config"
	"codecheck_backend/internal/models"
	"codecheck_backend/internal/repositories"
	"codecheck_backend/internal/services/dto"
	"codecheck_backend/internal/storage"
	"codecheck_backend/internal/utils"
	"codecheck_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FileService interface {
	Upload(ctx context.Context, db *gorm.DB, userID string, header *multipart.FileHeader, description string) (*dto.FileResponse, error)
	ListByOwner(db *gorm.DB, userID string) ([]dto.FileResponse, error)
	GetDetail(db *gorm.DB, userID, fileID string) (*dto.DetailFileResponse, error)
	Overwrite(ctx context.Context, db *gorm.DB, userID, fileID string, header *multipart.FileHeader, description string) (*dto.FileResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, fileID string) error
}

type FileServiceImpl struct {
	fileRepo repositories.FileRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewFileService(fileRepo repositories.FileRepository, storage storage.Storage, cfg *config.Config) FileService {
	return &FileServiceImpl{
		fileRepo: fileRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// Upload stores the file under a timestamped per-user path and creates the
// record with IsNew=true so the next scan picks it up.
func (s *FileServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID string, header *multipart.FileHeader, description string) (*dto.FileResponse, error) {
	if err := s.validateUpload(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to read uploaded file: " + err.Error())
	}
	defer src.Close()

	storedPath := utils.UserFilePath(userID, filepath.Base(header.Filename), time.Now())
	if err := s.storage.Save(ctx, storedPath, src); err != nil {
		return nil, apperrors.InternalError(err)
	}

	file := &models.UploadedFile{
		UserID:      userID,
		Path:        storedPath,
		FileName:    utils.FormatFilename(filepath.Base(storedPath)),
		Description: description,
		Status:      "success",
		IsNew:       true,
	}

	if err := s.fileRepo.Create(db, file); err != nil {
		// Record failed, do not leave the blob orphaned
		_ = s.storage.Delete(ctx, storedPath)
		return nil, apperrors.InternalError(err)
	}

	return fileToResponse(file), nil
}

func (s *FileServiceImpl) ListByOwner(db *gorm.DB, userID string) ([]dto.FileResponse, error) {
	files, err := s.fileRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.FileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, *fileToResponse(&files[i]))
	}
	return responses, nil
}

func (s *FileServiceImpl) GetDetail(db *gorm.DB, userID, fileID string) (*dto.DetailFileResponse, error) {
	file, err := s.findOwned(db, userID, fileID, true)
	if err != nil {
		return nil, err
	}

	detail := &dto.DetailFileResponse{
		ID:       file.ID,
		FileName: utils.FormatFilename(file.FileName),
		Update:   formatDateTime(file.UpdatedAt),
		Status:   file.Status,
		Checks:   make([]dto.CheckResponse, 0, len(file.Checks)),
	}

	for _, check := range file.Checks {
		detail.Checks = append(detail.Checks, dto.CheckResponse{
			Status:    string(check.Status),
			CreatedAt: formatDateTime(check.CreatedAt),
			Result:    json.RawMessage(check.Result),
		})
	}

	return detail, nil
}

// Overwrite replaces the stored content in place. The record keeps its
// identity and check history; only the blob, description and update
// timestamp change.
func (s *FileServiceImpl) Overwrite(ctx context.Context, db *gorm.DB, userID, fileID string, header *multipart.FileHeader, description string) (*dto.FileResponse, error) {
	file, err := s.findOwned(db, userID, fileID, false)
	if err != nil {
		return nil, err
	}

	if header != nil {
		if err := s.validateUpload(header); err != nil {
			return nil, err
		}

		src, err := header.Open()
		if err != nil {
			return nil, apperrors.NewBadRequestError("failed to read uploaded file: " + err.Error())
		}
		defer src.Close()

		oldPath := file.Path
		storedPath := utils.UserFilePath(userID, filepath.Base(header.Filename), time.Now())
		if err := s.storage.Save(ctx, storedPath, src); err != nil {
			return nil, apperrors.InternalError(err)
		}

		file.Path = storedPath
		file.FileName = utils.FormatFilename(filepath.Base(storedPath))

		if oldPath != storedPath {
			_ = s.storage.Delete(ctx, oldPath)
		}
	}

	file.Description = description

	if err := s.fileRepo.Update(db, file); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return fileToResponse(file), nil
}

func (s *FileServiceImpl) Delete(ctx context.Context, db *gorm.DB, userID, fileID string) error {
	file, err := s.findOwned(db, userID, fileID, false)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(db, file.ID); err != nil {
		return apperrors.InternalError(err)
	}

	_ = s.storage.Delete(ctx, file.Path)
	return nil
}

// findOwned fetches a file and enforces the ownership gate: a missing id
// is 404, somebody else's file is 403.
func (s *FileServiceImpl) findOwned(db *gorm.DB, userID, fileID string, withChecks bool) (*models.UploadedFile, error) {
	var file *models.UploadedFile
	var err error
	if withChecks {
		file, err = s.fileRepo.FindByIDWithChecks(db, fileID)
	} else {
		file, err = s.fileRepo.FindByID(db, fileID)
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrFileNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if file.UserID != userID {
		return nil, apperrors.ErrNotFileOwner
	}

	return file, nil
}

func (s *FileServiceImpl) validateUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range s.cfg.Upload.AllowedExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.ErrInvalidFileExtension
	}

	if header.Size > s.cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	return nil
}

func fileToResponse(file *models.UploadedFile) *dto.FileResponse {
	return &dto.FileResponse{
		ID:          file.ID,
		FileName:    utils.FormatFilename(file.FileName),
		Description: file.Description,
		Status:      file.Status,
		UploadDate:  formatDateTime(file.CreatedAt),
		Update:      formatDateTime(file.UpdatedAt),
		IsNew:       file.IsNew,
	}
}
