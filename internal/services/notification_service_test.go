package services

import (
	"context"
	"errors"
	"testing"

	"codecheck_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingCheck(id, email string, result string) models.CodeCheck {
	user := &models.User{Email: email}
	file := &models.UploadedFile{User: user}
	check := models.CodeCheck{
		FileID: "file-" + id,
		File:   file,
		Status: models.CheckStatusVerified,
		Result: []byte(result),
	}
	check.ID = id
	return check
}

func TestSendPendingReports_SendsAndMarksSent(t *testing.T) {
	t.Parallel()

	checkRepo := newFakeCheckRepo()
	checkRepo.pending = []models.CodeCheck{
		pendingCheck("c1", "owner@example.com", `{"comment":[{"line 3":"F401 'os' imported but unused"}]}`),
	}
	provider := &fakeEmailProvider{}
	svc := NewNotificationService(checkRepo, provider)

	svc.SendPendingReports(context.Background(), nil)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "owner@example.com", provider.sent[0].to)
	assert.Equal(t, "Verification Report", provider.sent[0].subject)
	assert.Contains(t, provider.sent[0].body, "File verification results: ")
	assert.Contains(t, provider.sent[0].body, "line 3")

	require.Len(t, checkRepo.updated, 1)
	assert.True(t, checkRepo.updated[0].IsSent)
}

func TestSendPendingReports_FailedSendStaysUnsent(t *testing.T) {
	t.Parallel()

	checkRepo := newFakeCheckRepo()
	checkRepo.pending = []models.CodeCheck{
		pendingCheck("c1", "broken@example.com", `{}`),
	}
	provider := &fakeEmailProvider{
		failFor: map[string]error{"broken@example.com": errors.New("smtp refused")},
	}
	svc := NewNotificationService(checkRepo, provider)

	svc.SendPendingReports(context.Background(), nil)

	assert.Empty(t, provider.sent)
	assert.Empty(t, checkRepo.updated, "a failed send must not be marked sent")
}

func TestSendPendingReports_ContinuesPastFailure(t *testing.T) {
	t.Parallel()

	checkRepo := newFakeCheckRepo()
	checkRepo.pending = []models.CodeCheck{
		pendingCheck("c1", "broken@example.com", `{}`),
		pendingCheck("c2", "fine@example.com", `{}`),
	}
	provider := &fakeEmailProvider{
		failFor: map[string]error{"broken@example.com": errors.New("smtp refused")},
	}
	svc := NewNotificationService(checkRepo, provider)

	svc.SendPendingReports(context.Background(), nil)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "fine@example.com", provider.sent[0].to)

	require.Len(t, checkRepo.updated, 1)
	assert.Equal(t, "c2", checkRepo.updated[0].ID)
}

func TestSendPendingReports_SkipsOrphanedCheck(t *testing.T) {
	t.Parallel()

	orphan := models.CodeCheck{Status: models.CheckStatusVerified}
	orphan.ID = "c1"

	checkRepo := newFakeCheckRepo()
	checkRepo.pending = []models.CodeCheck{orphan}
	provider := &fakeEmailProvider{}
	svc := NewNotificationService(checkRepo, provider)

	svc.SendPendingReports(context.Background(), nil)

	assert.Empty(t, provider.sent)
	assert.Empty(t, checkRepo.updated)
}
