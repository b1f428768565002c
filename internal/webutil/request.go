package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"macrobius_srs/internal/model"
)

// maxBodyBytes はJSONボディの上限 (state のインポートも含む)
const maxBodyBytes = 4 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラーにします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return model.NewAppError("INVALID_REQUEST_BODY", fmt.Sprintf("Field '%s' has the wrong type.", typeErr.Field), typeErr.Field, model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return nil
}

// ReadBody はボディをそのまま読み取ります (上限付き)
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, model.NewAppError("INVALID_REQUEST_BODY", "Request body could not be read.", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	if len(data) > maxBodyBytes {
		return nil, model.NewAppError("REQUEST_TOO_LARGE", "Request body is too large.", "", model.ErrInvalidInput)
	}
	return data, nil
}
