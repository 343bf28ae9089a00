package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error  string                    `json:"error"`
	Code   string                    `json:"code"`
	Fields []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// decodeJSON reads a size-limited JSON body. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeInvalidJSON(w http.ResponseWriter, err error) {
	writeErrorResponse(w, http.StatusBadRequest, "invalid_json", "invalid JSON body: "+err.Error())
}

// writeUsecaseError maps usecase errors onto HTTP statuses. Anything it does
// not recognise is logged and reported as a 500 without details.
func writeUsecaseError(w http.ResponseWriter, log *zap.Logger, err error) {
	var verrs usecase.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  verrs.Error(),
			Code:   "validation_failed",
			Fields: verrs,
		})
		return
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	code := "internal_error"
	var te *usecase.TechnicalError
	if errors.As(err, &te) && te.Code != "" {
		code = te.Code
	}
	log.Error("request failed", zap.String("code", code), zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, code, "internal server error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeLeadNotFound, usecase.CodeContentNotFound, usecase.CodeTemplateNotFound:
		return http.StatusNotFound
	case usecase.CodeProductIncomplete:
		return http.StatusConflict
	case usecase.CodeMailNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// ContentResponse adds the editor's length feedback to a content item.
type ContentResponse struct {
	entity.GeneratedContent
	Chars     int  `json:"chars"`
	OverLimit bool `json:"over_limit"`
}

func newContentResponse(c entity.GeneratedContent) ContentResponse {
	return ContentResponse{
		GeneratedContent: c,
		Chars:            c.BodyChars(),
		OverLimit:        c.OverLimit(),
	}
}

func newContentResponses(cs []entity.GeneratedContent) []ContentResponse {
	out := make([]ContentResponse, len(cs))
	for i, c := range cs {
		out[i] = newContentResponse(c)
	}
	return out
}
