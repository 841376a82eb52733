package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/logger"
)

var validate = validator.New()

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeValidation:        http.StatusBadRequest,
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeForbidden:         http.StatusForbidden,
	domain.CodeUnauthorized:      http.StatusUnauthorized,
	domain.CodeInvalidTransition: http.StatusBadRequest,
	domain.CodeSignatureMismatch: http.StatusBadRequest,
	domain.CodeAlreadyConfirmed:  http.StatusConflict,
	domain.CodeGateway:           http.StatusBadGateway,
	domain.CodeInternal:          http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	} else {
		logger.Error("Unhandled error", "error", err)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// decodeJSON decodes the request body into dst and validates it against its
// struct tags. All failures surface as VALIDATION errors.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Errf(domain.CodeValidation, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return domain.Errf(domain.CodeValidation, "invalid request: %s", err.Error())
	}
	return nil
}
