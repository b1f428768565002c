//go:build integration

// api_integration_test.go
// PostgreSQL コンテナを起動し、マイグレーションからAPIまでを通しで確認します。
// 実行: go test -tags integration ./internal/handlers/...
package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/handlers"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/store"
	"macrobius_srs/migrations"

	"github.com/go-chi/chi/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=macrobius_srs",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	// devcontainer から動かす場合は TEST_DB_HOST=host.docker.internal
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}
	dbURL := fmt.Sprintf("postgres://user:secret@%s:%s/macrobius_srs?sslmode=disable", host, resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = repository.NewDB(dbURL, logger)
		return errRetry
	}); err != nil {
		pool.Purge(resource)
		log.Fatalf("Could not connect to PostgreSQL container: %s", err)
	}

	if err := migrateUp("pgx5://user:secret@" + host + ":" + resource.GetPort("5432/tcp") + "/macrobius_srs?sslmode=disable"); err != nil {
		pool.Purge(resource)
		log.Fatalf("Could not migrate database: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

func migrateUp(url string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func newIntegrationRouter(t *testing.T) *chi.Mux {
	t.Helper()
	require.NotNil(t, testDB)

	cfg := &config.Config{
		App: config.AppConfig{ReviewLimit: 20, NewItemsPerSession: 10, TrendWindow: 5},
		JWT: config.JWTConfig{SecretKey: "integration", AccessTokenTTL: time.Hour},
	}
	learnerRepo := repository.NewGormLearnerRepository()
	vocabRepo := repository.NewGormVocabularyRepository()
	recordStore := store.NewGormStore(testDB, repository.NewGormRecordRepository())
	scheduler, err := srs.NewScheduler(srs.Config{})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(discardLogger))
	handlers.RegisterRoutes(r, handlers.Handlers{
		Learner:    handlers.NewLearnerHandler(service.NewLearnerService(testDB, learnerRepo, &service.LogMailer{}, cfg)),
		Vocabulary: handlers.NewVocabularyHandler(service.NewVocabularyService(testDB, vocabRepo)),
		Review:     handlers.NewReviewHandler(service.NewReviewService(testDB, recordStore, vocabRepo, scheduler, cfg)),
	}, middleware.DevLearnerContextMiddleware)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, learnerID string) *httptest.ResponseRecorder {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	if learnerID != "" {
		req.Header.Set(middleware.LearnerHeader, learnerID)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req.WithContext(context.Background()))
	return rr
}

func TestReviewFlow_Integration(t *testing.T) {
	r := newIntegrationRouter(t)
	suffix := time.Now().Format("150405.000000")

	// 学習者登録
	rr := doRequest(t, r, http.MethodPost, "/api/v1/learners", &model.RegisterRequest{
		Name:     "aurelius-" + suffix,
		Email:    "aurelius-" + suffix + "@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var learner model.LearnerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &learner))
	learnerID := learner.LearnerID.String()

	// 語彙登録
	text := "convivium " + suffix
	rr = doRequest(t, r, http.MethodPost, "/api/v1/vocabulary", &model.CreateVocabularyRequest{Text: text, GlossEN: "banquet"}, learnerID)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var item model.VocabularyItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))

	// 初回の復習
	rr = doRequest(t, r, http.MethodPost, "/api/v1/reviews/"+item.ItemID, `{"quality":5,"reviewed_on":"2024-03-01"}`, learnerID)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var result model.ReviewResultResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "2024-03-02", result.Record.DueDate)
	assert.Equal(t, 1, result.Record.RepetitionCount)
	assert.InDelta(t, 2.6, result.Record.EasinessFactor, 1e-9)

	// 翌日に期限
	rr = doRequest(t, r, http.MethodGet, "/api/v1/reviews/due?as_of=2024-03-01", nil, learnerID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	rr = doRequest(t, r, http.MethodGet, "/api/v1/reviews/due?as_of=2024-03-02", nil, learnerID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"item_id":"`+item.ItemID+`"`)

	// エクスポートしたものをそのまま戻す
	rr = doRequest(t, r, http.MethodGet, "/api/v1/reviews/state", nil, learnerID)
	require.Equal(t, http.StatusOK, rr.Code)
	exported := rr.Body.String()
	rr = doRequest(t, r, http.MethodPut, "/api/v1/reviews/state", exported, learnerID)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"imported":1}`, rr.Body.String())

	// リセット
	rr = doRequest(t, r, http.MethodDelete, "/api/v1/reviews/"+item.ItemID, nil, learnerID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"review_history":[]`)

	// 存在しない語彙
	rr = doRequest(t, r, http.MethodPost, "/api/v1/reviews/nusquam-"+suffix, `{"quality":3}`, learnerID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestConcurrentFirstReviews_Integration(t *testing.T) {
	r := newIntegrationRouter(t)
	suffix := time.Now().Format("150405.000000")

	rr := doRequest(t, r, http.MethodPost, "/api/v1/learners", &model.RegisterRequest{
		Name:     "symmachus-" + suffix,
		Email:    "symmachus-" + suffix + "@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var learner model.LearnerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &learner))
	learnerID := learner.LearnerID.String()

	rr = doRequest(t, r, http.MethodPost, "/api/v1/vocabulary", &model.CreateVocabularyRequest{Text: "saturnalia " + suffix, GlossEN: "festival of Saturn"}, learnerID)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var item model.VocabularyItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))

	// まだ行が無い語彙に同時に送る
	const submissions = 8
	reqs := make([]*http.Request, submissions)
	for i := range reqs {
		req := newJSONRequest(t, http.MethodPost, "/api/v1/reviews/"+item.ItemID, `{"quality":4,"reviewed_on":"2024-03-01"}`)
		req.Header.Set(middleware.LearnerHeader, learnerID)
		reqs[i] = req.WithContext(context.Background())
	}
	codes := make([]int, submissions)
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i, req)
	}
	wg.Wait()
	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, "submission %d", i)
	}

	rr = doRequest(t, r, http.MethodGet, "/api/v1/reviews/"+item.ItemID, nil, learnerID)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var record model.ReviewRecordResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Len(t, record.ReviewHistory, submissions)
	assert.Equal(t, submissions, record.RepetitionCount)
}
