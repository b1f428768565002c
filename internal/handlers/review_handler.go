// internal/handlers/review_handler.go
package handlers

import (
	"net/http"
	"time"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	service service.ReviewService
	now     func() time.Time
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s, now: time.Now}
}

// GetDueItems は ?as_of=YYYY-MM-DD (省略時は今日) に復習対象の語彙を返します
func (h *ReviewHandler) GetDueItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}
	asOf, err := h.dateParam(r, "as_of")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	items, err := h.service.GetDueItems(r.Context(), learnerID, asOf)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.DueItemResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

func (h *ReviewHandler) GetNewItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetNewItems(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.VocabularyItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

// SubmitReview は 1 回分の復習結果 {quality, reviewed_on?} を記録します
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "item_id")

	var req model.SubmitReviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid review request", "error", err, "item_id", itemID)
		webutil.HandleError(w, logger, err)
		return
	}

	reviewedOn := h.now()
	if req.ReviewedOn != "" {
		d, err := srs.ParseDate(req.ReviewedOn)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", err.Error(), "reviewed_on", model.ErrInvalidInput))
			return
		}
		reviewedOn = d
	}

	result, err := h.service.SubmitReview(r.Context(), learnerID, itemID, *req.Quality, reviewedOn)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ReviewHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetRecord(r.Context(), learnerID, chi.URLParam(r, "item_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, record, logger)
}

// ResetItem は語彙の学習状態を初期化します
func (h *ReviewHandler) ResetItem(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	record, err := h.service.ResetItem(r.Context(), learnerID, chi.URLParam(r, "item_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, record, logger)
}

func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}
	asOf, err := h.dateParam(r, "as_of")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	stats, err := h.service.GetStats(r.Context(), learnerID, asOf)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// ExportState は macrobius_srs_data 形式の JSON をそのまま返します
func (h *ReviewHandler) ExportState(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	data, err := h.service.ExportState(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Error writing state response", "error", err, "learner_id", learnerID.String())
	}
}

// ImportState はボディの macrobius_srs_data で学習者の状態を置き換えます
func (h *ReviewHandler) ImportState(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	learnerID, ok := requireLearnerID(w, r)
	if !ok {
		return
	}

	data, err := webutil.ReadBody(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	n, err := h.service.ImportState(r.Context(), learnerID, data)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"imported": n}, logger)
}

func (h *ReviewHandler) dateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return srs.DateOf(h.now()), nil
	}
	d, err := srs.ParseDate(v)
	if err != nil {
		return time.Time{}, model.NewAppError("INVALID_QUERY", name+" must be a date (YYYY-MM-DD).", name, model.ErrInvalidInput)
	}
	return d, nil
}
