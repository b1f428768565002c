package handlers

import (
	"net/http"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/webutil"
)

type LearnerHandler struct {
	service service.LearnerService
}

func NewLearnerHandler(s service.LearnerService) *LearnerHandler {
	return &LearnerHandler{service: s}
}

// Register は新しい学習者を登録します
func (h *LearnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid registration request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	learner, err := h.service.Register(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Registration request successful", "learner_id", learner.LearnerID.String())
	webutil.RespondWithJSON(w, http.StatusCreated, learner.ToResponse(), logger)
}

// Login は学習者を認証し、JWTを返します
func (h *LearnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid login request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	loginResponse, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// サービス層でログは出力済み
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, loginResponse, logger)
}

func (h *LearnerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	learner, err := h.service.GetLearner(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, learner.ToResponse(), logger)
}

// UpdateMe は表示言語と通知設定を部分更新します
func (h *LearnerHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	var req model.UpdatePreferencesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid preferences request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	learner, err := h.service.UpdatePreferences(r.Context(), learnerID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, learner.ToResponse(), logger)
}
