package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"macrobius_srs/internal/handlers"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	svc_mocks "macrobius_srs/internal/service/mocks"
	"macrobius_srs/internal/srs"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type routerFixture struct {
	router     *chi.Mux
	learner    *svc_mocks.LearnerService
	vocabulary *svc_mocks.VocabularyService
	review     *svc_mocks.ReviewService
}

func newRouterFixture(t *testing.T) *routerFixture {
	f := &routerFixture{
		router:     chi.NewRouter(),
		learner:    svc_mocks.NewLearnerService(t),
		vocabulary: svc_mocks.NewVocabularyService(t),
		review:     svc_mocks.NewReviewService(t),
	}
	f.router.Use(middleware.RequestLogger(discardLogger))
	handlers.RegisterRoutes(f.router, handlers.Handlers{
		Learner:    handlers.NewLearnerHandler(f.learner),
		Vocabulary: handlers.NewVocabularyHandler(f.vocabulary),
		Review:     handlers.NewReviewHandler(f.review),
	}, middleware.DevLearnerContextMiddleware)
	return f
}

func TestRegisterRoutes(t *testing.T) {
	learnerID := uuid.New()

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		withLearner    bool
		setupMock      func(f *routerFixture)
		expectedStatus int
	}{
		{
			name:   "公開: ログインは認証不要",
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   &model.LoginRequest{Email: "a@example.com", Password: "password123"},
			setupMock: func(f *routerFixture) {
				f.learner.On("Login", mock.Anything, mock.Anything).Return(&model.LoginResponse{AccessToken: "tok"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "保護: 学習者IDなしは 401",
			method:         http.MethodGet,
			path:           "/api/v1/reviews/due",
			setupMock:      func(f *routerFixture) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "保護: stats は item_id として扱わない",
			method:      http.MethodGet,
			path:        "/api/v1/reviews/stats?as_of=2024-03-05",
			withLearner: true,
			setupMock: func(f *routerFixture) {
				f.review.On("GetStats", mock.Anything, learnerID, date(2024, 3, 5)).
					Return(&model.StatsResponse{Summary: srs.Summary{}, KnownItems: []string{}, DifficultItems: []string{}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "保護: DELETE はリセット",
			method:      http.MethodDelete,
			path:        "/api/v1/reviews/convivium",
			withLearner: true,
			setupMock: func(f *routerFixture) {
				f.review.On("ResetItem", mock.Anything, learnerID, "convivium").
					Return(&model.ReviewRecordResponse{ItemID: "convivium"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "保護: 語彙の取得",
			method:      http.MethodGet,
			path:        "/api/v1/vocabulary/convivium",
			withLearner: true,
			setupMock: func(f *routerFixture) {
				f.vocabulary.On("GetItem", mock.Anything, "convivium").
					Return(&model.VocabularyItem{ItemID: "convivium"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "未定義のメソッド",
			method:         http.MethodPatch,
			path:           "/api/v1/reviews/state",
			withLearner:    true,
			setupMock:      func(f *routerFixture) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			tt.setupMock(f)

			req := newJSONRequest(t, tt.method, tt.path, tt.body)
			if tt.withLearner {
				req.Header.Set(middleware.LearnerHeader, learnerID.String())
			}
			rr := httptest.NewRecorder()
			f.router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
		})
	}
}
