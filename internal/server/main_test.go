package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"microblog/internal/config"
	"microblog/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app    *fiber.App
	server *Server
	db     *gorm.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T, debug bool) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Port:                 "0",
		Env:                  "test",
		Debug:                debug,
		MediaDir:             t.TempDir(),
		MediaURLPrefix:       "/images",
		MediaMaxUploadSizeMB: 1,
	}
	db := testutil.NewSQLiteDB(t)
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	return &testEnv{app: s.NewApp(), server: s, db: db, cfg: cfg}
}

// do sends a request and decodes the JSON response body into a map.
func (e *testEnv) do(t *testing.T, method, path, apiKey string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}
	return e.send(t, req)
}

func (e *testEnv) upload(t *testing.T, apiKey, contentType string, content []byte) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/medias", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(APIKeyHeader, apiKey)
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
