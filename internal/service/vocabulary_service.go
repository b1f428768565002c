//go:generate mockery --name VocabularyService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"macrobius_srs/internal/importer"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const maxItemIDLength = 128

var ligatures = strings.NewReplacer("æ", "ae", "Æ", "Ae", "œ", "oe", "Œ", "Oe")

type VocabularyService interface {
	CreateItem(ctx context.Context, req *model.CreateVocabularyRequest) (*model.VocabularyItem, error)
	GetItem(ctx context.Context, itemID string) (*model.VocabularyItem, error)
	ListItems(ctx context.Context, params model.ListVocabularyParams) ([]*model.VocabularyItem, int64, error)
	ImportItems(ctx context.Context, r io.Reader, format string) (*model.ImportResult, error)
}

type vocabularyService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
}

func NewVocabularyService(db *gorm.DB, vocabRepo repository.VocabularyRepository) VocabularyService {
	return &vocabularyService{db: db, vocabRepo: vocabRepo}
}

func (s *vocabularyService) CreateItem(ctx context.Context, req *model.CreateVocabularyRequest) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)

	item := &model.VocabularyItem{
		ItemID:  strings.TrimSpace(req.ItemID),
		Text:    strings.TrimSpace(req.Text),
		GlossEN: strings.TrimSpace(req.GlossEN),
		GlossDE: strings.TrimSpace(req.GlossDE),
		Source:  strings.TrimSpace(req.Source),
	}
	if item.Text == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "text must not be blank.", "text", model.ErrInvalidInput)
	}
	if item.ItemID == "" {
		item.ItemID = Slugify(item.Text)
	}
	if item.ItemID == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Could not derive an item_id from the text.", "item_id", model.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.vocabRepo.ExistsByText(ctx, tx, item.Text)
		if err != nil {
			logger.Error("Error checking vocabulary text existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the vocabulary item.", "", err)
		}
		if exists {
			logger.Warn("Vocabulary text already exists", "text", item.Text)
			return model.NewAppError("DUPLICATE_TEXT", "This text is already in the vocabulary.", "text", model.ErrConflict)
		}
		if err := s.vocabRepo.Create(ctx, tx, item); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_ITEM_ID", "This item_id is already in use.", "item_id", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the vocabulary item.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Vocabulary item created", "item_id", item.ItemID)
	return item, nil
}

func (s *vocabularyService) GetItem(ctx context.Context, itemID string) (*model.VocabularyItem, error) {
	item, err := s.vocabRepo.FindByID(ctx, s.db, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ITEM_NOT_FOUND", "Vocabulary item not found.", "item_id", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error finding vocabulary item", "error", err, "item_id", itemID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the vocabulary item.", "", err)
	}
	return item, nil
}

func (s *vocabularyService) ListItems(ctx context.Context, params model.ListVocabularyParams) ([]*model.VocabularyItem, int64, error) {
	items, total, err := s.vocabRepo.List(ctx, s.db, params)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing vocabulary items", "error", err)
		return nil, 0, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list vocabulary.", "", err)
	}
	return items, total, nil
}

// ImportItems はファイルの各行を語彙として登録します。既存の item_id やテキストは読み飛ばします。
// 行ごとに独立して登録するので、途中の行が失敗しても他の行は登録されます
func (s *vocabularyService) ImportItems(ctx context.Context, r io.Reader, format string) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx).With("format", format)

	parsed, err := importer.Read(r, format)
	if err != nil {
		logger.Warn("Failed to read vocabulary file", "error", err)
		return nil, model.NewAppError("INVALID_FILE", err.Error(), "file", model.ErrInvalidInput)
	}

	result := &model.ImportResult{Errors: parsed.Errors}
	for _, row := range parsed.Rows {
		item, err := s.CreateItem(ctx, &model.CreateVocabularyRequest{
			ItemID:  row.ItemID,
			Text:    row.Text,
			GlossEN: row.GlossEN,
			GlossDE: row.GlossDE,
			Source:  row.Source,
		})
		switch {
		case err == nil:
			logger.Debug("Imported vocabulary row", "row", row.Line, "item_id", item.ItemID)
			result.Created++
		case errors.Is(err, model.ErrConflict):
			result.Skipped++
		case errors.Is(err, model.ErrInvalidInput):
			msg := err.Error()
			var appErr *model.AppError
			if errors.As(err, &appErr) {
				msg = appErr.Detail.Message
			}
			result.Errors = append(result.Errors, model.ImportRowError{Row: row.Line, Message: msg})
		default:
			return nil, err
		}
	}

	logger.Info("Vocabulary import finished",
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

// Slugify はラテン語の表記から item_id を作ります (例: "Somnium Scipiōnis" -> "somnium-scipionis")
func Slugify(text string) string {
	text = ligatures.Replace(text)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}

	slug := b.String()
	if len(slug) > maxItemIDLength {
		slug = strings.TrimRight(slug[:maxItemIDLength], "-")
	}
	return slug
}
