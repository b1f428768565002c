// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"macrobius_srs/internal/model"
	"macrobius_srs/internal/webutil"

	"github.com/google/uuid"
)

// LearnerHeader は開発時に学習者IDを渡すヘッダーです。
const LearnerHeader = "X-Learner-ID"

// DevLearnerContextMiddleware は開発時用ミドルウェアです (auth.enabled=false のときのみ使う)。
// X-Learner-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// DBでの存在チェックは行いません。
func DevLearnerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		learnerIDStr := r.Header.Get(LearnerHeader)
		if learnerIDStr == "" {
			logger.Warn("[DEV AUTH] X-Learner-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-Learner-ID header is required.", "", model.ErrUnauthorized))
			return
		}

		learnerID, err := uuid.Parse(learnerIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-Learner-ID format", "value", learnerIDStr)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-Learner-ID must be a UUID.", "", model.ErrUnauthorized))
			return
		}

		logger.Debug("[DEV AUTH] Learner ID set to context (no validation)", "learner_id", learnerID)
		ctx := WithLearnerID(r.Context(), learnerID)
		ctx = WithLogger(ctx, logger.With("learner_id", learnerID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
