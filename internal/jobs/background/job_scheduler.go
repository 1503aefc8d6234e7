package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/config"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/jobs"
)

// JobScheduler owns the periodic background work: the stock alert scan
// runs on the configured interval, with singleton mode so a slow scan
// never overlaps the next one.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.StockAlertService
	cfg       *config.AuditConfig
	jobsByKey map[string]gocron.Job
}

func NewJobScheduler(alertSvc *jobs.StockAlertService, cfg *config.AuditConfig) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		cfg:       cfg,
		jobsByKey: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	interval := time.Duration(js.cfg.Alerts.ScanIntervalMin) * time.Minute

	alertJob, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.runAlertScan, context.Background()),
		gocron.WithName("stock-alert-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stock alert job: %v", err)
	} else {
		js.jobsByKey["stock-alerts"] = alertJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByKey))
}

func (js *JobScheduler) runAlertScan(ctx context.Context) error {
	staleAfter := time.Duration(js.cfg.Alerts.StaleAuditHours) * time.Hour
	return js.alertSvc.RunScan(ctx, js.cfg.Alerts.LowStockThreshold, staleAfter)
}

// JobStatus reports the registered job names. The set is fixed at
// construction, so no locking is needed here.
func (js *JobScheduler) JobStatus() map[string]interface{} {
	names := make([]string, 0, len(js.jobsByKey))
	for name := range js.jobsByKey {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobsByKey),
		"jobs":       names,
	}
}
