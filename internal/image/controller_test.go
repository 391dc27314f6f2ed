package image

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/dto"
)

const testMaxUpload = 5 * 1024 * 1024

func newTestController(t *testing.T) *Controller {
	return NewModule(config.ImagesConfig{
		UploadDir:      t.TempDir(),
		PublicPath:     "/uploads",
		MaxUploadBytes: testMaxUpload,
	}, zap.NewNop())
}

func newTestImageRouter(c *Controller) chi.Router {
	r := chi.NewRouter()
	r.Get("/admin/images", c.ListImages)
	r.Post("/admin/images/upload", c.UploadImage)
	r.Delete("/admin/images/{filename}", c.DeleteImage)
	return r
}

func multipartUpload(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadImage_AcceptsJPEGAndListsIt(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	payload := bytes.Repeat([]byte("j"), 1024*1024)
	body, contentType := multipartUpload(t, "jacket.jpg", "image/jpeg", payload)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.UploadImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, strings.HasPrefix(resp.Image.Name, "jacket-"))
	assert.Equal(t, int64(len(payload)), resp.Image.Size)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/images", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.ListImagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Images, 1)
	assert.Equal(t, resp.Image.Name, list.Images[0].Name)
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	payload := bytes.Repeat([]byte("x"), 6*1024*1024)
	body, contentType := multipartUpload(t, "huge.jpg", "image/jpeg", payload)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_RejectsNonImageContentType(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	body, contentType := multipartUpload(t, "script.jpg", "application/octet-stream", []byte("#!/bin/sh"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	traceID, _ := resp["traceId"].(string)
	assert.NotEmpty(t, traceID)
}

func TestUploadImage_RejectsDisallowedExtension(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	body, contentType := multipartUpload(t, "vector.svg", "image/svg+xml", []byte("<svg/>"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_MissingField(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteImage_NotFound(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/images/absent.jpg", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteImage_RemovesUploadedFile(t *testing.T) {
	c := newTestController(t)
	router := newTestImageRouter(c)

	body, contentType := multipartUpload(t, "temp.png", "image/png", []byte("png bytes"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.UploadImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/images/"+resp.Image.Name, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/images", nil))
	var list dto.ListImagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Images)
}
