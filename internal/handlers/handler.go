package handlers

import (
	"net/http"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/webutil"

	"github.com/google/uuid"
)

// requireLearnerID はコンテキストから学習者IDを取り出します。無ければ 401 を書いて false を返します
func requireLearnerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	logger := middleware.GetLogger(r.Context())
	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", "error", err)
		webutil.HandleError(w, logger, err)
		return uuid.Nil, false
	}
	return learnerID, true
}

// decodeAndValidate はJSONボディを読み取り、validate タグで検証します
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		return err
	}
	return webutil.ValidateStruct(dst)
}
