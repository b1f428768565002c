//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/middleware"
)

// Mailer は学習者へのメール送信 (歓迎メール・復習リマインダー) に使います
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
// LogMailer は送信せずにログへ出すだけの開発用実装です
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(ctx context.Context, cfg *config.Config) (Mailer, error) {
	logger := middleware.GetLogger(ctx)
	switch cfg.Mailer.Type {
	case "ses":
		logger.Info("Initializing SES mailer...", "region", cfg.SES.Region)
		m, err := NewSESMailer(ctx, &cfg.SES)
		if err != nil {
			return nil, fmt.Errorf("NewMailer: %w", err)
		}
		return m, nil
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
