package workers

import (
	"context"
	"fmt"

	"codecheck_backend/internal/jobs"
	"codecheck_backend/internal/logger"
	"codecheck_backend/internal/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ScanWorker submits the daily new-file scan on a cron schedule. The scan
// itself runs on the job queue, so a slow batch never delays the scheduler.
type ScanWorker struct {
	db           *gorm.DB
	checkService services.CheckService
	submitter    jobs.Submitter
	schedule     string

	cron *cron.Cron
}

func NewScanWorker(db *gorm.DB, checkService services.CheckService, submitter jobs.Submitter, schedule string) *ScanWorker {
	return &ScanWorker{
		db:           db,
		checkService: checkService,
		submitter:    submitter,
		schedule:     schedule,
	}
}

// Start registers the schedule and launches the cron loop. The loop stops
// when the parent context is cancelled.
func (w *ScanWorker) Start(ctx context.Context) error {
	w.cron = cron.New()

	if _, err := w.cron.AddFunc(w.schedule, w.submitScan); err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	logger.Info("Scan worker started", "schedule", w.schedule)

	go func() {
		<-ctx.Done()
		stopCtx := w.cron.Stop()
		<-stopCtx.Done()
		logger.Info("Scan worker stopped")
	}()

	return nil
}

func (w *ScanWorker) submitScan() {
	err := w.submitter.Submit("scan-new-files", func(jobCtx context.Context) {
		if err := w.checkService.ScanNewFiles(jobCtx, w.db); err != nil {
			logger.WorkerLog("workers", "scan-new-files", err)
		}
	})
	if err != nil {
		logger.WorkerLog("workers", "scan-new-files", err)
	}
}
