package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"macrobius_srs/internal/handlers"
	"macrobius_srs/internal/model"
	svc_mocks "macrobius_srs/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLearnerHandler_Register(t *testing.T) {
	learner := &model.Learner{
		LearnerID:    uuid.New(),
		Name:         "aurelius",
		Email:        "aurelius@example.com",
		PasswordHash: "secret-hash",
		Locale:       model.LocaleGerman,
		CreatedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	validReq := &model.RegisterRequest{Name: "aurelius", Email: "aurelius@example.com", Password: "password123"}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.LearnerService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 登録成功",
			body: validReq,
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("Register", mock.Anything, validReq).Return(learner, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: メールアドレスの形式が不正",
			body:           &model.RegisterRequest{Name: "aurelius", Email: "not-an-email", Password: "password123"},
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 不正なJSON",
			body:           `{"name":`,
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: 重複",
			body: validReq,
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("Register", mock.Anything, validReq).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "Email is already registered.", "email", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "DUPLICATE_EMAIL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewLearnerService(t)
			tt.setupMock(mockService)
			handler := handlers.NewLearnerHandler(mockService)

			req := newJSONRequest(t, http.MethodPost, "/api/v1/learners", tt.body).WithContext(anonymousContext())
			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErrorCode(t, rr.Body.Bytes()))
				return
			}
			assert.Contains(t, rr.Body.String(), `"learner_id":"`+learner.LearnerID.String()+`"`)
			assert.NotContains(t, rr.Body.String(), "secret-hash")
		})
	}
}

func TestLearnerHandler_Login(t *testing.T) {
	validReq := &model.LoginRequest{Email: "aurelius@example.com", Password: "password123"}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.LearnerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: トークンを返す",
			body: validReq,
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("Login", mock.Anything, validReq).
					Return(&model.LoginResponse{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"tok"`,
		},
		{
			name: "異常系: 認証失敗",
			body: validReq,
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("Login", mock.Anything, validReq).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password.", "", model.ErrUnauthorized)).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "AUTHENTICATION_FAILED",
		},
		{
			name:           "異常系: パスワードなし",
			body:           `{"email":"aurelius@example.com"}`,
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewLearnerService(t)
			tt.setupMock(mockService)
			handler := handlers.NewLearnerHandler(mockService)

			req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login", tt.body).WithContext(anonymousContext())
			rr := httptest.NewRecorder()
			handler.Login(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestLearnerHandler_GetMe(t *testing.T) {
	learnerID := uuid.New()

	tests := []struct {
		name           string
		ctx            context.Context
		setupMock      func(m *svc_mocks.LearnerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系",
			ctx:  learnerContext(learnerID),
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("GetLearner", mock.Anything, learnerID).
					Return(&model.Learner{LearnerID: learnerID, Name: "aurelius", Locale: model.LocaleLatin}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"locale":"la"`,
		},
		{
			name:           "異常系: 未認証",
			ctx:            anonymousContext(),
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "UNAUTHORIZED",
		},
		{
			name: "異常系: サービスエラー",
			ctx:  learnerContext(learnerID),
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("GetLearner", mock.Anything, learnerID).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewLearnerService(t)
			tt.setupMock(mockService)
			handler := handlers.NewLearnerHandler(mockService)

			req := newJSONRequest(t, http.MethodGet, "/api/v1/me", nil).WithContext(tt.ctx)
			rr := httptest.NewRecorder()
			handler.GetMe(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestLearnerHandler_UpdateMe(t *testing.T) {
	learnerID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.LearnerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: 通知を有効化",
			body: `{"reminder_enabled":true}`,
			setupMock: func(m *svc_mocks.LearnerService) {
				m.On("UpdatePreferences", mock.Anything, learnerID, &model.UpdatePreferencesRequest{ReminderEnabled: ptr(true)}).
					Return(&model.Learner{LearnerID: learnerID, Locale: model.LocaleGerman, ReminderEnabled: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reminder_enabled":true`,
		},
		{
			name:           "異常系: 未対応の言語",
			body:           `{"locale":"fr"}`,
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 未知のフィールド",
			body:           `{"email":"x@example.com"}`,
			setupMock:      func(m *svc_mocks.LearnerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "INVALID_REQUEST_BODY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := svc_mocks.NewLearnerService(t)
			tt.setupMock(mockService)
			handler := handlers.NewLearnerHandler(mockService)

			req := newJSONRequest(t, http.MethodPatch, "/api/v1/me", tt.body).WithContext(learnerContext(learnerID))
			rr := httptest.NewRecorder()
			handler.UpdateMe(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}
