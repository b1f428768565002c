//go:generate mockery --name LearnerService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LearnerService は学習者の登録・認証・設定を扱います
type LearnerService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Learner, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetLearner(ctx context.Context, learnerID uuid.UUID) (*model.Learner, error)
	UpdatePreferences(ctx context.Context, learnerID uuid.UUID, req *model.UpdatePreferencesRequest) (*model.Learner, error)
}

type learnerService struct {
	db          *gorm.DB
	learnerRepo repository.LearnerRepository
	mailer      Mailer
	cfg         *config.Config
	now         func() time.Time
}

func NewLearnerService(db *gorm.DB, learnerRepo repository.LearnerRepository, mailer Mailer, cfg *config.Config) LearnerService {
	return &learnerService{
		db:          db,
		learnerRepo: learnerRepo,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Register は新しい学習者を登録し、歓迎メールを送ります。メール送信の失敗は登録を取り消しません
func (s *learnerService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var newLearner *model.Learner

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Emailでの重複チェック
		_, err := s.learnerRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		// Nameでの重複チェック
		_, err = s.learnerRepo.FindByName(ctx, tx, req.Name)
		if err == nil {
			logger.Warn("Learner name already exists", "name", req.Name)
			return model.NewAppError("DUPLICATE_NAME", "This name is already taken.", "name", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check name existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
		}

		locale := req.Locale
		if locale == "" {
			locale = model.LocaleGerman
		}
		learner := &model.Learner{
			LearnerID:    uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			Locale:       locale,
		}

		if err := s.learnerRepo.Create(ctx, tx, learner); err != nil {
			// チェック後に別リクエストが同じ値で登録した場合
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during learner creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_ENTRY", "The name or email address is already registered.", "name,email", model.ErrConflict)
			}
			logger.Error("Failed to create learner in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the learner.", "", err)
		}
		newLearner = learner
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendWelcomeEmail(ctx, newLearner); err != nil {
		logger.Warn("Failed to send welcome email", "error", err, "learner_id", newLearner.LearnerID)
	}

	logger.Info("Learner registered", "learner_id", newLearner.LearnerID, "email", newLearner.Email)
	return newLearner, nil
}

// Login は学習者を認証し、JWTを返します
func (s *learnerService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	learner, err := s.learnerRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: learner not found")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "Incorrect email address or password.", "", model.ErrUnauthorized)
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(learner.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "learner_id", learner.LearnerID)
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "Incorrect email address or password.", "", model.ErrUnauthorized)
	}

	now := s.now()
	claims := &model.JWTCustomClaims{
		Locale: learner.Locale,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.AppName,
			Subject:   learner.LearnerID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "learner_id", learner.LearnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to issue the access token.", "", err)
	}

	logger.Info("Login successful", "learner_id", learner.LearnerID)
	return &model.LoginResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.JWT.AccessTokenTTL / time.Second),
	}, nil
}

// GetLearner は指定されたIDの学習者を取得します
func (s *learnerService) GetLearner(ctx context.Context, learnerID uuid.UUID) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	learner, err := s.learnerRepo.FindByID(ctx, s.db, learnerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Learner not found", "learner_id", learnerID.String())
			return nil, model.NewAppError("LEARNER_NOT_FOUND", "Learner not found.", "", model.ErrNotFound)
		}
		logger.Error("Error finding learner by ID", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return learner, nil
}

// UpdatePreferences は表示言語と通知設定を部分更新します
func (s *learnerService) UpdatePreferences(ctx context.Context, learnerID uuid.UUID, req *model.UpdatePreferencesRequest) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID.String())

	updates := make(map[string]interface{})
	if req.Locale != nil {
		updates["locale"] = *req.Locale
	}
	if req.ReminderEnabled != nil {
		updates["reminder_enabled"] = *req.ReminderEnabled
	}

	var updated *model.Learner
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.learnerRepo.Update(ctx, tx, learnerID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEARNER_NOT_FOUND", "Learner not found.", "", model.ErrNotFound)
			}
			logger.Error("Failed to update learner preferences", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update preferences.", "", err)
		}
		learner, err := s.learnerRepo.FindByID(ctx, tx, learnerID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("LEARNER_NOT_FOUND", "Learner not found.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update preferences.", "", err)
		}
		updated = learner
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Learner preferences updated", "fields", len(updates))
	return updated, nil
}

func (s *learnerService) sendWelcomeEmail(ctx context.Context, learner *model.Learner) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Salve %s,\n\nyour Macrobius vocabulary trainer is ready.", learner.Name)
	if url := s.cfg.Reminder.AppURL; url != "" {
		fmt.Fprintf(&b, "\nStart your first session at %s", url)
	}
	return s.mailer.Send(ctx, learner.Email, "Welcome to Macrobius", b.String())
}
