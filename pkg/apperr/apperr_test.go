package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hpfoods/hpfoods-api/pkg/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("x"), http.StatusBadRequest},
		{apperr.CredentialConflict("x"), http.StatusBadRequest},
		{apperr.InvalidCredentials(), http.StatusBadRequest},
		{apperr.BadRequest("x"), http.StatusBadRequest},
		{apperr.InvalidArgument("x"), http.StatusBadRequest},
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.Persistence("x", errors.New("db down")), http.StatusInternalServerError},
		{apperr.Signing(errors.New("no key")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apperr.StatusOf(tc.err), tc.err.Error())
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("menu: %w", apperr.NotFound("Menu item not found"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrBadRequest)
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := errors.New("constraint failed")
	err := apperr.Persistence("Could not create order", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestMessagesOfHidesUnclassifiedErrors(t *testing.T) {
	assert.Equal(t, []string{"Internal server error"}, apperr.MessagesOf(errors.New("sql: secret detail")))
	assert.Equal(t, []string{"Invalid credentials"}, apperr.MessagesOf(apperr.InvalidCredentials()))
}
