package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshelf/internal/database"
	"fileshelf/internal/logging"
)

type fileEnvelope struct {
	Success bool `json:"success"`
	Data    File `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T, maxSize int64) (*gin.Engine, afero.Fs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:upload_handler_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&File{}))

	fs := afero.NewMemMapFs()
	svc := NewService(NewRepository(db), NewBlobDirectory(fs), logging.Discard(), Options{})
	h := NewHandler(svc, testDir, maxSize, logging.Discard())

	r := gin.New()
	RegisterRoutes(r, h)
	return r, fs
}

func multipartRequest(t *testing.T, method, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) fileEnvelope {
	t.Helper()
	var env fileEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestUploadUpdateDeleteFlow(t *testing.T) {
	r, fs := setupTestRouter(t, 0)

	rr := serve(r, multipartRequest(t, http.MethodPost, "/files", "notes.txt", []byte("first")))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeEnvelope(t, rr).Data
	assert.Regexp(t, `_notes\.txt$`, created.Filename)

	got, err := afero.ReadFile(fs, created.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	path := fmt.Sprintf("/files/%d", created.ID)
	rr = serve(r, multipartRequest(t, http.MethodPut, path, "notes2.txt", []byte("second")))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeEnvelope(t, rr).Data
	assert.Equal(t, created.ID, updated.ID)
	assert.NotEqual(t, created.FilePath, updated.FilePath)

	rr = serve(r, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, updated, decodeEnvelope(t, rr).Data)

	rr = serve(r, httptest.NewRequest(http.MethodGet, path+"/content", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "second", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "notes2.txt")

	rr = serve(r, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"deleted"}`, rr.Body.String())

	rr = serve(r, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUploadRootAlias(t *testing.T) {
	r, _ := setupTestRouter(t, 0)

	rr := serve(r, multipartRequest(t, http.MethodPost, "/", "scan.png", []byte("\x89PNG")))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestUploadRejectsInvalidType(t *testing.T) {
	r, fs := setupTestRouter(t, 0)

	rr := serve(r, multipartRequest(t, http.MethodPost, "/files", "virus.exe", []byte("MZ")))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_FILE_TYPE", env.Error.Code)

	exists, err := afero.DirExists(fs, testDir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUploadWithoutFile(t *testing.T) {
	r, _ := setupTestRouter(t, 0)

	rr := serve(r, httptest.NewRequest(http.MethodPost, "/files", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadTooLarge(t *testing.T) {
	r, _ := setupTestRouter(t, 4)

	rr := serve(r, multipartRequest(t, http.MethodPost, "/files", "big.txt", []byte("12345")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestUnknownAndInvalidIDs(t *testing.T) {
	r, _ := setupTestRouter(t, 0)

	cases := []struct {
		req  *http.Request
		code int
	}{
		{multipartRequest(t, http.MethodPut, "/files/99", "a.txt", []byte("a")), http.StatusNotFound},
		{httptest.NewRequest(http.MethodDelete, "/files/99", nil), http.StatusNotFound},
		{httptest.NewRequest(http.MethodGet, "/files/99/content", nil), http.StatusNotFound},
		{httptest.NewRequest(http.MethodDelete, "/files/abc", nil), http.StatusBadRequest},
		{httptest.NewRequest(http.MethodGet, "/files/0", nil), http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := serve(r, tc.req)
		assert.Equal(t, tc.code, rr.Code, "%s %s", tc.req.Method, tc.req.URL.Path)
	}
}

func TestListFiles(t *testing.T) {
	r, _ := setupTestRouter(t, 0)

	for _, name := range []string{"a.txt", "b.pdf"} {
		rr := serve(r, multipartRequest(t, http.MethodPost, "/files", name, []byte(name)))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/files", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data []File `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}
