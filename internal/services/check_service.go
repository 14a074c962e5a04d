package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codecheck_backend/internal/jobs"
	"codecheck_backend/internal/lint"
	"codecheck_backend/internal/logger"
	"codecheck_backend/internal/models"
	"codecheck_backend/internal/repositories"
	"codecheck_backend/internal/storage"
	"codecheck_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CheckService interface {
	// RunCheck lints one file and records the outcome on its CodeCheck.
	RunCheck(ctx context.Context, db *gorm.DB, file *models.UploadedFile) (*models.CodeCheck, error)

	// ScanNewFiles checks every file still flagged new, then triggers the
	// notifier exactly once.
	ScanNewFiles(ctx context.Context, db *gorm.DB) error

	// RequestRecheck enqueues a check of one file on behalf of its owner.
	RequestRecheck(ctx context.Context, db *gorm.DB, userID, fileID string) error
}

type CheckServiceImpl struct {
	fileRepo  repositories.FileRepository
	checkRepo repositories.CheckRepository
	storage   storage.Storage
	runner    lint.Runner
	notifier  NotificationService
	submitter jobs.Submitter
}

func NewCheckService(
	fileRepo repositories.FileRepository,
	checkRepo repositories.CheckRepository,
	storage storage.Storage,
	runner lint.Runner,
	notifier NotificationService,
	submitter jobs.Submitter,
) CheckService {
	return &CheckServiceImpl{
		fileRepo:  fileRepo,
		checkRepo: checkRepo,
		storage:   storage,
		runner:    runner,
		notifier:  notifier,
		submitter: submitter,
	}
}

// RunCheck copies the stored content into a disposable temp directory, runs
// the lint tool against the copy and persists the result. The copy shields
// the run from a concurrent overwrite of the same file; the directory is
// removed on every path.
//
// On success the check is Verified and the file leaves the "new" set. A
// deadline hit or tool/parse failure is recorded on the check (Timeout or
// Failed, with the error detail as the payload) and the file stays new so
// the next scheduled scan retries it.
func (s *CheckServiceImpl) RunCheck(ctx context.Context, db *gorm.DB, file *models.UploadedFile) (*models.CodeCheck, error) {
	check, err := s.checkRepo.GetOrCreateByFile(db, file.ID)
	if err != nil {
		return nil, err
	}

	out, runErr := s.lintIsolated(ctx, file)

	if runErr != nil {
		return check, s.recordFailure(db, check, runErr)
	}

	findings, parseErr := lint.ParseOutput(out)
	if parseErr != nil {
		return check, s.recordFailure(db, check, parseErr)
	}

	payload, err := findingsPayload(findings)
	if err != nil {
		return check, s.recordFailure(db, check, err)
	}

	check.Status = models.CheckStatusVerified
	check.Result = payload
	if err := s.checkRepo.Update(db, check); err != nil {
		return check, err
	}

	file.IsNew = false
	if err := s.fileRepo.Update(db, file); err != nil {
		return check, err
	}

	return check, nil
}

func (s *CheckServiceImpl) ScanNewFiles(ctx context.Context, db *gorm.DB) error {
	files, err := s.fileRepo.FindNew(db)
	if err != nil {
		return fmt.Errorf("fetch new files: %w", err)
	}

	logger.CtxInfo(ctx, "Scan started", "files", len(files))

	// Each file gets its own failure boundary: one bad file must not
	// starve the rest of the batch.
	for i := range files {
		file := &files[i]
		if _, err := s.RunCheck(ctx, db, file); err != nil {
			logger.CtxWithError(ctx, "Check failed", err, "file_id", file.ID, "file_name", file.FileName)
		}
	}

	if err := s.submitNotify(db); err != nil {
		logger.CtxWithError(ctx, "Failed to enqueue notification job", err)
	}

	return nil
}

func (s *CheckServiceImpl) RequestRecheck(ctx context.Context, db *gorm.DB, userID, fileID string) error {
	file, err := s.fileRepo.FindByID(db, fileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFileNotFound) {
			return apperrors.ErrFileNotFound
		}
		return apperrors.InternalError(err)
	}

	if file.UserID != userID {
		return apperrors.ErrNotFileOwner
	}

	err = s.submitter.Submit("recheck-file", func(jobCtx context.Context) {
		if _, err := s.RunCheck(jobCtx, db, file); err != nil {
			logger.CtxWithError(jobCtx, "Recheck failed", err, "file_id", file.ID)
			return
		}
		if err := s.submitNotify(db); err != nil {
			logger.CtxWithError(jobCtx, "Failed to enqueue notification job", err)
		}
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *CheckServiceImpl) submitNotify(db *gorm.DB) error {
	return s.submitter.Submit("send-reports", func(jobCtx context.Context) {
		s.notifier.SendPendingReports(jobCtx, db)
	})
}

// lintIsolated copies the file into a fresh temp dir and runs the tool on
// the copy.
func (s *CheckServiceImpl) lintIsolated(ctx context.Context, file *models.UploadedFile) (string, error) {
	src, err := s.storage.Get(ctx, file.Path)
	if err != nil {
		return "", fmt.Errorf("read stored file: %w", err)
	}
	defer src.Close()

	tempDir, err := os.MkdirTemp("", "codecheck-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempPath := filepath.Join(tempDir, filepath.Base(file.Path))
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create temp copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write temp copy: %w", err)
	}
	dst.Close()

	return s.runner.Run(ctx, tempPath)
}

func (s *CheckServiceImpl) recordFailure(db *gorm.DB, check *models.CodeCheck, cause error) error {
	status := models.CheckStatusFailed
	if apperrors.Is(cause, lint.ErrTimedOut) {
		status = models.CheckStatusTimeout
	}

	detail, _ := json.Marshal(map[string]string{"error": cause.Error()})
	check.Status = status
	check.Result = detail

	if err := s.checkRepo.Update(db, check); err != nil {
		return fmt.Errorf("record check failure: %w (original: %v)", err, cause)
	}
	return cause
}

// findingsPayload builds the stored result: an ordered list of single-entry
// mappings keyed by a "line N" label. Duplicate lines stay separate entries.
func findingsPayload(findings []lint.Finding) ([]byte, error) {
	comments := make([]map[string]string, 0, len(findings))
	for _, f := range findings {
		comments = append(comments, map[string]string{f.Label(): f.Message})
	}

	return json.Marshal(map[string]interface{}{"comment": comments})
}
