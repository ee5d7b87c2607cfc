package helpers

import (
	"encoding/json"
	"net/http"

	"clubhub/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
// Domain failures reuse the domain.ErrorKind names so clients see one vocabulary.
const (
	ErrCodeBadRequest          = "bad_request"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeNotFound            = string(domain.KindNotFound)
	ErrCodeInternalError       = "internal_error"
	ErrCodeValidation          = string(domain.KindValidation)
	ErrCodePermissionDenied    = string(domain.KindPermissionDenied)
	ErrCodeOwnerProtected      = string(domain.KindOwnerProtected)
	ErrCodeAlreadyMember       = string(domain.KindAlreadyMember)
	ErrCodeDuplicateInvitation = string(domain.KindDuplicateInvitation)
	ErrCodeInvitationExpired   = string(domain.KindInvitationExpired)
	ErrCodeUnavailable         = string(domain.KindUnavailable)
	ErrCodeClubExists          = string(domain.KindClubExists)
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:          http.StatusBadRequest,
	domain.KindPermissionDenied:    http.StatusForbidden,
	domain.KindOwnerProtected:      http.StatusForbidden,
	domain.KindNotFound:            http.StatusNotFound,
	domain.KindAlreadyMember:       http.StatusConflict,
	domain.KindDuplicateInvitation: http.StatusConflict,
	domain.KindInvitationExpired:   http.StatusGone,
	domain.KindClubExists:          http.StatusConflict,
	domain.KindUnavailable:         http.StatusServiceUnavailable,
}

// WriteDomainError maps a membership error to its HTTP status, using the
// error kind as the code. It reports false, writing nothing, when err is not
// a known domain error.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	kind := domain.ErrorKindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		return false
	}
	msg := err.Error()
	if kind == domain.KindUnavailable {
		// The wrapped cause is a storage detail.
		msg = domain.ErrUnavailable.Error()
	}
	WriteJSONError(w, status, string(kind), msg)
	return true
}
