package services

import (
	"context"
	"fmt"

	"codecheck_backend/internal/email"
	"codecheck_backend/internal/logger"
	"codecheck_backend/internal/repositories"

	"gorm.io/gorm"
)

const reportSubject = "Verification Report"

type NotificationService interface {
	// SendPendingReports emails every verified-and-unsent check to its
	// file's owner and marks it sent.
	SendPendingReports(ctx context.Context, db *gorm.DB)
}

type NotificationServiceImpl struct {
	checkRepo repositories.CheckRepository
	provider  email.Provider
}

func NewNotificationService(checkRepo repositories.CheckRepository, provider email.Provider) NotificationService {
	return &NotificationServiceImpl{
		checkRepo: checkRepo,
		provider:  provider,
	}
}

// SendPendingReports resolves each recipient through the file's owner at
// send time, so an email change between check and notification is picked
// up. A failed send is logged and skipped; the record stays unsent and is
// retried on the next run.
func (s *NotificationServiceImpl) SendPendingReports(ctx context.Context, db *gorm.DB) {
	checks, err := s.checkRepo.FindPendingNotification(db)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch pending notifications", err)
		return
	}

	for i := range checks {
		check := &checks[i]

		if check.File == nil || check.File.User == nil {
			logger.CtxWarn(ctx, "Check has no resolvable owner, skipping", "check_id", check.ID)
			continue
		}

		to := check.File.User.Email
		body := fmt.Sprintf("File verification results: %s", string(check.Result))

		if err := s.provider.Send(to, reportSubject, body); err != nil {
			logger.CtxWithError(ctx, "Failed to send report email", err, "check_id", check.ID, "to", to)
			continue
		}

		check.IsSent = true
		if err := s.checkRepo.Update(db, check); err != nil {
			logger.CtxWithError(ctx, "Failed to mark check as sent", err, "check_id", check.ID)
			continue
		}

		logger.CtxInfo(ctx, "Report email sent", "check_id", check.ID, "to", to)
	}
}
