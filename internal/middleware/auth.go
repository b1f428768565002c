package middleware

import (
	"context"
	"net/http"
	"strings"

	"macrobius_srs/internal/model"
	"macrobius_srs/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// sub クレームの学習者IDをコンテキストにセットします。
func JWTAuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Fields(authHeader)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header must be 'Bearer <token>'.", "", model.ErrUnauthorized))
				return
			}

			// 署名アルゴリズムは HS256 のみ許可。exp も検証される
			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "The access token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			learnerID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", claims.Subject, "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "The access token does not identify a learner.", "", model.ErrUnauthorized))
				return
			}

			ctx := WithLearnerID(r.Context(), learnerID)
			ctx = WithLogger(ctx, logger.With("learner_id", learnerID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLearnerID は学習者IDを格納したコンテキストを返します。
func WithLearnerID(ctx context.Context, learnerID uuid.UUID) context.Context {
	return context.WithValue(ctx, model.LearnerIDKey, learnerID)
}

// GetLearnerIDFromContext は認証ミドルウェアがセットした学習者IDを取得します。
func GetLearnerIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.LearnerIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアを通っていないリクエスト
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Learner is not authenticated.", "", model.ErrUnauthorized)
	}
	return value, nil
}
