package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"codecheck_backend/internal/jobs"
	"codecheck_backend/internal/models"
	"codecheck_backend/internal/repositories"

	"gorm.io/gorm"
)

type fakeFileRepo struct {
	files   map[string]*models.UploadedFile
	newList []models.UploadedFile
	updated []models.UploadedFile
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.UploadedFile)}
}

func (r *fakeFileRepo) add(file *models.UploadedFile) {
	r.files[file.ID] = file
}

func (r *fakeFileRepo) Create(db *gorm.DB, file *models.UploadedFile) error {
	r.files[file.ID] = file
	return nil
}

func (r *fakeFileRepo) FindByID(db *gorm.DB, id string) (*models.UploadedFile, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, repositories.ErrFileNotFound
	}
	return file, nil
}

func (r *fakeFileRepo) FindByIDWithChecks(db *gorm.DB, id string) (*models.UploadedFile, error) {
	return r.FindByID(db, id)
}

func (r *fakeFileRepo) FindByUser(db *gorm.DB, userID string) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	for _, f := range r.files {
		if f.UserID == userID {
			files = append(files, *f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) FindNew(db *gorm.DB) ([]models.UploadedFile, error) {
	return r.newList, nil
}

func (r *fakeFileRepo) Update(db *gorm.DB, file *models.UploadedFile) error {
	r.files[file.ID] = file
	r.updated = append(r.updated, *file)
	return nil
}

func (r *fakeFileRepo) Delete(db *gorm.DB, id string) error {
	delete(r.files, id)
	return nil
}

type fakeCheckRepo struct {
	mu      sync.Mutex
	byFile  map[string]*models.CodeCheck
	pending []models.CodeCheck
	updated []models.CodeCheck

	updateErr error

	// When set, FindPendingNotification derives the pending set from the
	// stored checks instead of returning the static list, resolving the
	// file the way the preload would.
	resolveFile func(fileID string) *models.UploadedFile
}

func newFakeCheckRepo() *fakeCheckRepo {
	return &fakeCheckRepo{byFile: make(map[string]*models.CodeCheck)}
}

func (r *fakeCheckRepo) GetOrCreateByFile(db *gorm.DB, fileID string) (*models.CodeCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if check, ok := r.byFile[fileID]; ok {
		return check, nil
	}
	check := &models.CodeCheck{FileID: fileID, Status: models.CheckStatusProgress}
	check.ID = "check-for-" + fileID
	r.byFile[fileID] = check
	return check, nil
}

func (r *fakeCheckRepo) Update(db *gorm.DB, check *models.CodeCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.byFile[check.FileID] = check
	r.updated = append(r.updated, *check)
	return nil
}

func (r *fakeCheckRepo) FindAll(db *gorm.DB) ([]models.CodeCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var checks []models.CodeCheck
	for _, c := range r.byFile {
		checks = append(checks, *c)
	}
	return checks, nil
}

func (r *fakeCheckRepo) FindPendingNotification(db *gorm.DB) ([]models.CodeCheck, error) {
	if r.resolveFile == nil {
		return r.pending, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var checks []models.CodeCheck
	for _, c := range r.byFile {
		if c.Status == models.CheckStatusVerified && !c.IsSent {
			check := *c
			check.File = r.resolveFile(c.FileID)
			checks = append(checks, check)
		}
	}
	return checks, nil
}

// fakeStorage serves every path from one in-memory payload and records
// writes and deletes.
type fakeStorage struct {
	content string
	getErr  error
	saveErr error

	saved   []string
	deleted []string
}

func (s *fakeStorage) Save(ctx context.Context, path string, reader io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, path)
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	return true, nil
}

// fakeRunner returns canned output keyed by the copied file's basename, or
// the default pair when no entry matches.
type fakeRunner struct {
	out    string
	err    error
	outFor map[string]string
	errFor map[string]error

	paths []string
}

func (r *fakeRunner) Run(ctx context.Context, path string) (string, error) {
	r.paths = append(r.paths, path)

	base := filepath.Base(path)
	if err, ok := r.errFor[base]; ok {
		return "", err
	}
	if out, ok := r.outFor[base]; ok {
		return out, nil
	}
	return r.out, r.err
}

// fakeSubmitter records submissions and, when inline is set, runs each job
// synchronously.
type fakeSubmitter struct {
	inline    bool
	submitErr error
	names     []string
}

func (s *fakeSubmitter) Submit(name string, job jobs.Job) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.names = append(s.names, name)
	if s.inline {
		job(context.Background())
	}
	return nil
}

func (s *fakeSubmitter) count(name string) int {
	n := 0
	for _, got := range s.names {
		if got == name {
			n++
		}
	}
	return n
}

type fakeNotifier struct {
	calls int
}

func (n *fakeNotifier) SendPendingReports(ctx context.Context, db *gorm.DB) {
	n.calls++
}

type fakeEmailProvider struct {
	sent    []sentMail
	failFor map[string]error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (p *fakeEmailProvider) Send(to, subject, body string) error {
	if err, ok := p.failFor[to]; ok {
		return err
	}
	p.sent = append(p.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
