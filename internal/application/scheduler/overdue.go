package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
)

// legacyDateFloor marks the oldest plausible record date. Rows before it
// carry zero or garbled timestamps from the legacy desktop import.
var legacyDateFloor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// OverdueScanner runs the nightly receivables scan. It logs overdue credit
// bills and data quality problems, then prunes expired idempotency keys.
type OverdueScanner struct {
	cronScheduler   *cron.Cron
	saleRepo        repository.SaleRepository
	analyticsRepo   repository.AnalyticsRepository
	settingsRepo    repository.SettingsRepository
	idempotencyRepo repository.IdempotencyRepository
	spec            string
}

// NewOverdueScanner creates the scanner with the given cron expression.
// Expressions use seconds granularity, e.g. "0 0 1 * * *" for 1:00 AM daily.
func NewOverdueScanner(
	spec string,
	saleRepo repository.SaleRepository,
	analyticsRepo repository.AnalyticsRepository,
	settingsRepo repository.SettingsRepository,
	idempotencyRepo repository.IdempotencyRepository,
) *OverdueScanner {
	return &OverdueScanner{
		cronScheduler:   cron.New(cron.WithSeconds()),
		saleRepo:        saleRepo,
		analyticsRepo:   analyticsRepo,
		settingsRepo:    settingsRepo,
		idempotencyRepo: idempotencyRepo,
		spec:            spec,
	}
}

// Start schedules the nightly scan and starts the cron loop.
func (s *OverdueScanner) Start() error {
	_, err := s.cronScheduler.AddFunc(s.spec, func() {
		log.Println("Running nightly receivables scan")
		s.runScan()
	})
	if err != nil {
		return fmt.Errorf("error scheduling receivables scan: %w", err)
	}

	s.cronScheduler.Start()
	log.Printf("Receivables scan scheduled with cron expression %q", s.spec)

	return nil
}

// Stop terminates the scheduler. Running jobs finish first.
func (s *OverdueScanner) Stop() {
	if s.cronScheduler != nil {
		ctx := s.cronScheduler.Stop()
		<-ctx.Done()
		log.Println("Receivables scan scheduler stopped")
	}
}

// runScan executes the scan and logs the morning report.
func (s *OverdueScanner) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	graceDays := 30
	alertsOn := true
	if settings, err := s.settingsRepo.Get(ctx); err != nil {
		log.Printf("Receivables scan: failed to load settings: %v", err)
	} else if settings != nil {
		graceDays = settings.OverdueDays
		alertsOn = settings.OverdueAlerts
	}

	if alertsOn {
		s.reportOverdue(ctx, graceDays)
		s.reportDataQuality(ctx)
	}

	if err := s.idempotencyRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Receivables scan: idempotency cleanup failed: %v", err)
	}
}

// reportOverdue logs unsettled bills that have aged past the grace window
// and bills with an explicitly breached due date.
func (s *OverdueScanner) reportOverdue(ctx context.Context, graceDays int) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -graceDays)

	overdue, err := s.saleRepo.ListOverdueUnsettled(ctx, cutoff)
	if err != nil {
		log.Printf("Receivables scan: overdue query failed: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Printf("Receivables scan: no unsettled bills older than %d days", graceDays)
	} else {
		total := decimal.Zero
		for _, sale := range overdue {
			total = total.Add(sale.Outstanding())
		}
		log.Printf("Receivables scan: %d unsettled bills older than %d days, %s outstanding",
			len(overdue), graceDays, total.StringFixed(2))

		// Oldest ten are enough for the morning report
		for i, sale := range overdue {
			if i >= 10 {
				log.Printf("  ... and %d more", len(overdue)-10)
				break
			}
			ageDays := int(now.Sub(sale.CreatedAt).Hours() / 24)
			log.Printf("  %s  %s (%s)  outstanding %s  %d days old",
				sale.InvoiceNo, sale.CustomerName, sale.CustomerPhone,
				sale.Outstanding().StringFixed(2), ageDays)
		}
	}

	dueBreached, err := s.analyticsRepo.CountOverdueSales(ctx, now)
	if err != nil {
		log.Printf("Receivables scan: due-date query failed: %v", err)
		return
	}
	if dueBreached > 0 {
		log.Printf("Receivables scan: %d bills past their due date", dueBreached)
	}
}

// reportDataQuality logs rows the statement builder would flag: paid
// amounts with no matching payment records, and timestamps that predate
// the shop.
func (s *OverdueScanner) reportDataQuality(ctx context.Context) {
	mismatches, err := s.analyticsRepo.GetPaidMismatches(ctx, 20)
	if err != nil {
		log.Printf("Receivables scan: mismatch query failed: %v", err)
	} else if len(mismatches) > 0 {
		log.Printf("Receivables scan: %d bills where amount_paid differs from payment records", len(mismatches))
		for _, m := range mismatches {
			log.Printf("  %s (%s): amount_paid %s, payments %s",
				m.InvoiceNo, m.CustomerPhone,
				m.AmountPaid.StringFixed(2), m.PaymentSum.StringFixed(2))
		}
	}

	zeroDated, err := s.analyticsRepo.CountSalesBefore(ctx, legacyDateFloor)
	if err != nil {
		log.Printf("Receivables scan: legacy date query failed: %v", err)
	} else if zeroDated > 0 {
		log.Printf("Receivables scan: %d bills dated before %s; statements estimate their dates",
			zeroDated, legacyDateFloor.Format("2006-01-02"))
	}
}
