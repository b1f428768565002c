package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository/mocks"
	"macrobius_srs/internal/service"
	servicemocks "macrobius_srs/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テスト用のDB (トランザクションの開始にだけ使う) ---
func setupTestDB(t interface{ Fatalf(string, ...interface{}) }) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database for service testing: %v", err)
	}
	return db
}

type LearnerServiceTestSuite struct {
	suite.Suite

	mockLearnerRepo *mocks.LearnerRepository
	mockMailer      *servicemocks.Mailer
	cfg             *config.Config
	learnerService  service.LearnerService
}

func (s *LearnerServiceTestSuite) SetupTest() {
	s.mockLearnerRepo = new(mocks.LearnerRepository)
	s.mockMailer = new(servicemocks.Mailer)
	s.cfg = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
		Reminder: config.ReminderConfig{AppURL: "https://macrobius.example"},
	}
	s.learnerService = service.NewLearnerService(setupTestDB(s.T()), s.mockLearnerRepo, s.mockMailer, s.cfg)
}

func TestLearnerService(t *testing.T) {
	suite.Run(t, new(LearnerServiceTestSuite))
}

func (s *LearnerServiceTestSuite) TestRegister() {
	req := &model.RegisterRequest{Name: "macrobius", Email: "macrobius@example.com", Password: "saturnalia"}

	testCases := []struct {
		name        string
		setupMocks  func()
		wantErrCode string
		wantErrIs   error
	}{
		{
			name: "正常系: 登録して歓迎メールを送る",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("FindByName", mock.Anything, mock.Anything, req.Name).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(l *model.Learner) bool {
					return l.Name == req.Name && l.Locale == model.LocaleGerman &&
						bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(req.Password)) == nil
				})).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, req.Email, "Welcome to Macrobius", mock.AnythingOfType("string")).Return(nil).Once()
			},
		},
		{
			name: "正常系: メール送信の失敗では登録を取り消さない",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("FindByName", mock.Anything, mock.Anything, req.Name).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Learner")).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, req.Email, mock.Anything, mock.Anything).Return(errors.New("ses down")).Once()
			},
		},
		{
			name: "異常系: メールアドレスの重複",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(&model.Learner{}, nil).Once()
			},
			wantErrCode: "DUPLICATE_EMAIL",
			wantErrIs:   model.ErrConflict,
		},
		{
			name: "異常系: 名前の重複",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("FindByName", mock.Anything, mock.Anything, req.Name).Return(&model.Learner{}, nil).Once()
			},
			wantErrCode: "DUPLICATE_NAME",
			wantErrIs:   model.ErrConflict,
		},
		{
			name: "異常系: 作成時の競合",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("FindByName", mock.Anything, mock.Anything, req.Name).Return(nil, model.ErrNotFound).Once()
				s.mockLearnerRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
			},
			wantErrCode: "DUPLICATE_ENTRY",
			wantErrIs:   model.ErrConflict,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			learner, err := s.learnerService.Register(context.Background(), req)

			if tc.wantErrCode != "" {
				s.Require().Error(err)
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal(tc.wantErrCode, appErr.Detail.Code)
				s.ErrorIs(err, tc.wantErrIs)
				s.Nil(learner)
			} else {
				s.Require().NoError(err)
				s.NotEqual(uuid.Nil, learner.LearnerID)
				s.Equal(req.Email, learner.Email)
			}
			s.mockLearnerRepo.AssertExpectations(s.T())
			s.mockMailer.AssertExpectations(s.T())
		})
	}
}

func (s *LearnerServiceTestSuite) TestLogin() {
	hash, err := bcrypt.GenerateFromPassword([]byte("saturnalia"), bcrypt.MinCost)
	s.Require().NoError(err)
	learner := &model.Learner{LearnerID: uuid.New(), Email: "macrobius@example.com", PasswordHash: string(hash), Locale: "la"}

	testCases := []struct {
		name        string
		password    string
		setupMocks  func()
		wantErrCode string
	}{
		{
			name:     "正常系",
			password: "saturnalia",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, learner.Email).Return(learner, nil).Once()
			},
		},
		{
			name:     "異常系: パスワード不一致",
			password: "wrong-password",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, learner.Email).Return(learner, nil).Once()
			},
			wantErrCode: "AUTHENTICATION_FAILED",
		},
		{
			name:     "異常系: 学習者が存在しない",
			password: "saturnalia",
			setupMocks: func() {
				s.mockLearnerRepo.On("FindByEmail", mock.Anything, mock.Anything, learner.Email).Return(nil, model.ErrNotFound).Once()
			},
			wantErrCode: "AUTHENTICATION_FAILED",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			resp, err := s.learnerService.Login(context.Background(), &model.LoginRequest{Email: learner.Email, Password: tc.password})

			if tc.wantErrCode != "" {
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal(tc.wantErrCode, appErr.Detail.Code)
				s.ErrorIs(err, model.ErrUnauthorized)
				return
			}

			s.Require().NoError(err)
			s.Equal("Bearer", resp.TokenType)
			s.Equal(int64(15*60), resp.ExpiresIn)

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(s.cfg.JWT.SecretKey), nil
			})
			s.Require().NoError(err)
			s.True(token.Valid)
			s.Equal(learner.LearnerID.String(), claims.Subject)
			s.Equal("la", claims.Locale)
			s.mockLearnerRepo.AssertExpectations(s.T())
		})
	}
}

func (s *LearnerServiceTestSuite) TestGetLearner() {
	id := uuid.New()
	s.mockLearnerRepo.On("FindByID", mock.Anything, mock.Anything, id).Return(nil, model.ErrNotFound).Once()

	_, err := s.learnerService.GetLearner(context.Background(), id)
	var appErr *model.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("LEARNER_NOT_FOUND", appErr.Detail.Code)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *LearnerServiceTestSuite) TestUpdatePreferences() {
	id := uuid.New()
	locale := "en"
	enabled := true
	s.mockLearnerRepo.On("Update", mock.Anything, mock.Anything, id, map[string]interface{}{
		"locale":           "en",
		"reminder_enabled": true,
	}).Return(nil).Once()
	s.mockLearnerRepo.On("FindByID", mock.Anything, mock.Anything, id).
		Return(&model.Learner{LearnerID: id, Locale: "en", ReminderEnabled: true}, nil).Once()

	got, err := s.learnerService.UpdatePreferences(context.Background(), id, &model.UpdatePreferencesRequest{
		Locale:          &locale,
		ReminderEnabled: &enabled,
	})
	s.Require().NoError(err)
	s.Equal("en", got.Locale)
	s.True(got.ReminderEnabled)
	s.mockLearnerRepo.AssertExpectations(s.T())
}
