// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newJSONRequest はボディ付きのリクエストを作ります。string はそのまま送ります
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req, err := http.NewRequest(method, target, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// learnerContext は認証済みの学習者と、ログを捨てるロガーを持つコンテキストを返します
func learnerContext(learnerID uuid.UUID) context.Context {
	ctx := middleware.WithLogger(context.Background(), discardLogger)
	return middleware.WithLearnerID(ctx, learnerID)
}

func anonymousContext() context.Context {
	return middleware.WithLogger(context.Background(), discardLogger)
}

// withURLParam は chi の URL パラメータをコンテキストに設定します
func withURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

// decodeErrorCode はエラーレスポンスの error.code を取り出します
func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "body: %s", string(body))
	return errResp.Error.Code
}

func ptr[T any](v T) *T {
	return &v
}
