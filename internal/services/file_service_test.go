package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"codecheck_backend/internal/config"
	"codecheck_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedExtensions = []string{".py"}
	return cfg
}

// makeFileHeader builds a real multipart header the way gin would hand it
// to the service.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestUpload_Success(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	st := &fakeStorage{}
	svc := NewFileService(fileRepo, st, uploadConfig())

	header := makeFileHeader(t, "script.py", "import os\n")

	resp, err := svc.Upload(context.Background(), nil, "u1", header, "my script")
	require.NoError(t, err)

	assert.Equal(t, "script.py", resp.FileName, "display name has no timestamp prefix")
	assert.Equal(t, "my script", resp.Description)
	assert.True(t, resp.IsNew)

	require.Len(t, st.saved, 1)
	assert.True(t, strings.HasPrefix(st.saved[0], "files/user_u1/"))
	assert.True(t, strings.HasSuffix(st.saved[0], "_script.py"))
}

func TestUpload_RejectsExtension(t *testing.T) {
	t.Parallel()

	svc := NewFileService(newFakeFileRepo(), &fakeStorage{}, uploadConfig())
	header := makeFileHeader(t, "notes.txt", "hello")

	_, err := svc.Upload(context.Background(), nil, "u1", header, "")
	require.ErrorIs(t, err, apperrors.ErrInvalidFileExtension)
}

func TestUpload_RejectsOversize(t *testing.T) {
	t.Parallel()

	cfg := uploadConfig()
	cfg.Upload.MaxSize = 4
	svc := NewFileService(newFakeFileRepo(), &fakeStorage{}, cfg)

	header := makeFileHeader(t, "big.py", "0123456789")

	_, err := svc.Upload(context.Background(), nil, "u1", header, "")
	require.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestGetDetail_OwnershipGate(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	svc := NewFileService(fileRepo, &fakeStorage{}, uploadConfig())

	file := testFile("f1", "owner")
	fileRepo.add(file)

	_, err := svc.GetDetail(nil, "owner", "missing")
	require.ErrorIs(t, err, apperrors.ErrFileNotFound)

	_, err = svc.GetDetail(nil, "intruder", "f1")
	require.ErrorIs(t, err, apperrors.ErrNotFileOwner)

	detail, err := svc.GetDetail(nil, "owner", "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1.py", detail.FileName)
}

func TestOverwrite_ReplacesBlobKeepsIdentity(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	st := &fakeStorage{}
	svc := NewFileService(fileRepo, st, uploadConfig())

	file := testFile("f1", "u1")
	file.IsNew = false
	oldPath := file.Path
	fileRepo.add(file)

	header := makeFileHeader(t, "fixed.py", "x = 1\n")

	resp, err := svc.Overwrite(context.Background(), nil, "u1", "f1", header, "second attempt")
	require.NoError(t, err)

	assert.Equal(t, "f1", resp.ID, "record identity survives an overwrite")
	assert.Equal(t, "fixed.py", resp.FileName)
	assert.Equal(t, "second attempt", resp.Description)
	assert.False(t, resp.IsNew, "overwriting does not requeue the file by itself")

	require.Len(t, st.saved, 1)
	assert.Contains(t, st.deleted, oldPath, "the replaced blob is removed")
}

func TestOverwrite_DescriptionOnly(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	st := &fakeStorage{}
	svc := NewFileService(fileRepo, st, uploadConfig())

	file := testFile("f1", "u1")
	oldPath := file.Path
	fileRepo.add(file)

	resp, err := svc.Overwrite(context.Background(), nil, "u1", "f1", nil, "new description")
	require.NoError(t, err)

	assert.Equal(t, "new description", resp.Description)
	assert.Empty(t, st.saved)
	assert.Equal(t, oldPath, fileRepo.files["f1"].Path)
}

func TestDelete_RemovesRecordAndBlob(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	st := &fakeStorage{}
	svc := NewFileService(fileRepo, st, uploadConfig())

	file := testFile("f1", "u1")
	fileRepo.add(file)

	require.NoError(t, svc.Delete(context.Background(), nil, "u1", "f1"))

	_, ok := fileRepo.files["f1"]
	assert.False(t, ok)
	assert.Contains(t, st.deleted, file.Path)
}

func TestDelete_NotOwner(t *testing.T) {
	t.Parallel()

	fileRepo := newFakeFileRepo()
	svc := NewFileService(fileRepo, &fakeStorage{}, uploadConfig())

	fileRepo.add(testFile("f1", "owner"))

	err := svc.Delete(context.Background(), nil, "intruder", "f1")
	require.ErrorIs(t, err, apperrors.ErrNotFileOwner)

	_, ok := fileRepo.files["f1"]
	assert.True(t, ok, "a foreign file must not be deleted")
}
