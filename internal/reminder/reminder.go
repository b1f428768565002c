// Package reminder は復習期限の来た語彙があることを学習者にメールで知らせます。
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/store"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// メール本文に並べる語彙の数
const previewItems = 5

// Reminder は定期的に RunOnce を実行するジョブです
type Reminder struct {
	db          *gorm.DB
	learnerRepo repository.LearnerRepository
	store       store.Store
	mailer      service.Mailer
	cfg         config.ReminderConfig
	loc         *time.Location
	cron        *gocron.Scheduler
	logger      *slog.Logger
}

func New(db *gorm.DB, learnerRepo repository.LearnerRepository, st store.Store, mailer service.Mailer, cfg config.ReminderConfig, logger *slog.Logger) (*Reminder, error) {
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("reminder: load location %q: %w", cfg.Location, err)
	}
	if cfg.StartHour < 0 || cfg.EndHour > 24 || cfg.StartHour >= cfg.EndHour {
		return nil, fmt.Errorf("reminder: invalid hours window %d-%d", cfg.StartHour, cfg.EndHour)
	}
	return &Reminder{
		db:          db,
		learnerRepo: learnerRepo,
		store:       st,
		mailer:      mailer,
		cfg:         cfg,
		loc:         loc,
		cron:        gocron.NewScheduler(loc),
		logger:      logger.With("component", "reminder"),
	}, nil
}

// Start は cfg.Every ごとのジョブを登録して非同期に開始します
func (r *Reminder) Start() error {
	_, err := r.cron.Every(r.cfg.Every).SingletonMode().WaitForSchedule().Do(func() {
		ctx := middleware.WithLogger(context.Background(), r.logger)
		if _, err := r.RunOnce(ctx, time.Now()); err != nil {
			r.logger.Error("Reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminder: schedule job: %w", err)
	}
	r.cron.StartAsync()
	r.logger.Info("Reminder scheduler started",
		"every", r.cfg.Every.String(),
		"window", fmt.Sprintf("%02d:00-%02d:00", r.cfg.StartHour, r.cfg.EndHour),
		"location", r.loc.String(),
	)
	return nil
}

func (r *Reminder) Stop() {
	r.cron.Stop()
	r.logger.Info("Reminder scheduler stopped")
}

// RunOnce は now の時点で通知対象の学習者にメールを送り、送信した件数を返します。
// 通知時間帯の外では何もしません。同じ学習者には 1 日 1 通までです
func (r *Reminder) RunOnce(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLogger(ctx)
	local := now.In(r.loc)
	if h := local.Hour(); h < r.cfg.StartHour || h >= r.cfg.EndHour {
		logger.Debug("Outside reminder hours, skipping", "hour", h)
		return 0, nil
	}
	today := srs.DateOf(local)

	learners, err := r.learnerRepo.FindReminderRecipients(ctx, r.db, today)
	if err != nil {
		return 0, fmt.Errorf("reminder: find recipients: %w", err)
	}

	sent := 0
	for _, l := range learners {
		lg := logger.With("learner_id", l.LearnerID.String())

		due, err := r.dueItems(ctx, l.LearnerID, today)
		if err != nil {
			lg.Error("Failed to load review state for reminder", "error", err)
			continue
		}
		if len(due) == 0 {
			continue
		}

		subject, body := r.message(l.Name, due)
		if err := r.mailer.Send(ctx, l.Email, subject, body); err != nil {
			lg.Error("Failed to send reminder", "error", err)
			continue
		}
		if err := r.learnerRepo.MarkReminded(ctx, r.db, l.LearnerID, today); err != nil {
			lg.Error("Failed to mark learner as reminded", "error", err)
			continue
		}
		sent++
	}

	logger.Info("Reminder run finished", "candidates", len(learners), "sent", sent, "day", srs.FormatDate(today))
	return sent, nil
}

func (r *Reminder) dueItems(ctx context.Context, learnerID uuid.UUID, today time.Time) ([]string, error) {
	records, err := r.store.Load(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return srs.DueItems(srs.Records(records), today), nil
}

func (r *Reminder) message(name string, due []string) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Salve %s,\n\n%d vocabulary item(s) are due for review today:\n", name, len(due))
	for i, id := range due {
		if i == previewItems {
			fmt.Fprintf(&b, "  ... and %d more\n", len(due)-previewItems)
			break
		}
		fmt.Fprintf(&b, "  - %s\n", id)
	}
	if r.cfg.AppURL != "" {
		fmt.Fprintf(&b, "\nContinue at %s\n", r.cfg.AppURL)
	}
	return fmt.Sprintf("Macrobius: %d item(s) due for review", len(due)), b.String()
}
