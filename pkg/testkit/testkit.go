// Package testkit holds fixtures shared by package tests: a migrated
// SQLite database, a temp-dir image disk and envelope assertions.
package testkit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/database/migrations"
	"github.com/hpfoods/hpfoods-api/pkg/database"
	"github.com/hpfoods/hpfoods-api/pkg/storage"
)

// DB opens a fresh SQLite file under t.TempDir with every migration applied.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migrations.Run(context.Background(), db))
	return db
}

// Disk returns a local disk rooted in a temp dir.
func Disk(t *testing.T) *storage.Local {
	t.Helper()

	d, err := storage.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return d
}

// Envelope mirrors the JSON body every endpoint returns.
type Envelope struct {
	StatusCode    int             `json:"statusCode"`
	IsSuccess     bool            `json:"isSuccess"`
	Result        json.RawMessage `json:"result"`
	ErrorMessages []string        `json:"errorMessages"`
}

// DecodeEnvelope checks the HTTP status and decodes the body. The
// envelope's statusCode must agree with the HTTP status.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) Envelope {
	t.Helper()

	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	assert.Equal(t, status, env.StatusCode)
	assert.Equal(t, status < 400, env.IsSuccess)
	return env
}

// Result decodes the envelope result into dest.
func Result(t *testing.T, env Envelope, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Result, dest), "result: %s", string(env.Result))
}
