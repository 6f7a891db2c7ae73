package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]int{"id": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"statusCode":200,"isSuccess":true,"result":{"id":1},"errorMessages":[]}`, rec.Body.String())
}

func TestFailUsesErrorKind(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/order/9", nil)
	response.Fail(rec, req, apperr.NotFound("Order not found"))

	env := decode(t, rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.False(t, env.IsSuccess)
	assert.Nil(t, env.Result)
	assert.Equal(t, []string{"Order not found"}, env.ErrorMessages)
}

func TestFailHidesUnclassifiedCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order", nil)
	response.Fail(rec, req, errors.New("pq: relation does not exist"))

	env := decode(t, rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []string{"Internal server error"}, env.ErrorMessages)
}

func TestValidationErrorIsSortedBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{
		"password": "The password field is required.",
		"email":    "The email field is required.",
	})

	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"The email field is required.", "The password field is required."}, env.ErrorMessages)
}
