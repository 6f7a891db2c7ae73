// Package response writes the API envelope shared by every endpoint:
//
//	{"statusCode":200,"isSuccess":true,"result":{...},"errorMessages":[]}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/validate"
)

// Envelope is the body of every API response.
type Envelope struct {
	StatusCode    int         `json:"statusCode"`
	IsSuccess     bool        `json:"isSuccess"`
	Result        interface{} `json:"result"`
	ErrorMessages []string    `json:"errorMessages"`
}

// Write sends env with the given HTTP status.
func Write(w http.ResponseWriter, status int, env Envelope) {
	if env.ErrorMessages == nil {
		env.ErrorMessages = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env) //nolint:errcheck
}

// OK sends a 200 success envelope.
func OK(w http.ResponseWriter, result interface{}) {
	Write(w, http.StatusOK, Envelope{StatusCode: http.StatusOK, IsSuccess: true, Result: result})
}

// Created sends a 201 success envelope.
func Created(w http.ResponseWriter, result interface{}) {
	Write(w, http.StatusCreated, Envelope{StatusCode: http.StatusCreated, IsSuccess: true, Result: result})
}

// Error sends a failure envelope with the given messages.
func Error(w http.ResponseWriter, status int, messages ...string) {
	Write(w, status, Envelope{StatusCode: status, IsSuccess: false, ErrorMessages: messages})
}

// Fail converts a service error into a failure envelope. Server-side
// failures are logged with their cause on the request logger.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	Error(w, status, apperr.MessagesOf(err)...)
}

// ValidationError sends a 400 listing one message per invalid field,
// sorted by field name.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	Error(w, http.StatusBadRequest, FieldMessages(errs)...)
}

// FieldMessages flattens a field → message map in field order.
func FieldMessages(errs map[string]string) []string {
	return validate.Messages(errs)
}
