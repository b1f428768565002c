// internal/handlers/vocabulary_handler.go
package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/service"
	"macrobius_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxUploadBytes   = 10 << 20
)

type VocabularyHandler struct {
	service service.VocabularyService
}

func NewVocabularyHandler(s service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{service: s}
}

type vocabularyListResponse struct {
	Items  []*model.VocabularyItem `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

func (h *VocabularyHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	params, err := parseListParams(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	items, total, err := h.service.ListItems(r.Context(), params)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.VocabularyItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyListResponse{
		Items:  items,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}, logger)
}

func (h *VocabularyHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.CreateVocabularyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid vocabulary request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, item, logger)
}

func (h *VocabularyHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item, logger)
}

// ImportItems は multipart の file フィールドで受け取った CSV / Excel を取り込みます。
// 形式は ?format= か、無ければファイルの拡張子で判断します
func (h *VocabularyHandler) ImportItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Expected a multipart form with a 'file' field.", "file", model.ErrInvalidInput))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "The 'file' field is missing.", "file", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	}
	logger = logger.With("filename", header.Filename, "format", format)

	result, err := h.service.ImportItems(r.Context(), file, format)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func parseListParams(r *http.Request) (model.ListVocabularyParams, error) {
	params := model.ListVocabularyParams{Limit: defaultListLimit}
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			return params, model.NewAppError("INVALID_QUERY", "limit must be between 1 and 500.", "limit", model.ErrInvalidInput)
		}
		params.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return params, model.NewAppError("INVALID_QUERY", "offset must be a non-negative integer.", "offset", model.ErrInvalidInput)
		}
		params.Offset = n
	}
	return params, nil
}
