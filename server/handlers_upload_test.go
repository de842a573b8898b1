package server

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`

type memMediaStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemMediaStore() *memMediaStore {
	return &memMediaStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memMediaStore) PutMedia(ctx context.Context, key, contentType string, body []byte) error {
	m.objects[key] = body
	m.types[key] = contentType
	return nil
}

func multipartRequest(t *testing.T, target, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(uploadFormField, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

func TestHandleUploadSVG(t *testing.T) {
	ms := newMemMediaStore()
	w := serve(handleUpload(testLogger(), ms), multipartRequest(t, "/upload", "Logo Mark.svg", []byte(testSVG), nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res UploadResponse
	decodeResponse(t, w, &res)
	assert.True(t, strings.HasPrefix(res.Key, "media/svg/"), res.Key)
	assert.True(t, strings.HasSuffix(res.Key, "_logo-mark.svg"), res.Key)
	assert.Equal(t, "image/svg+xml", res.ContentType)
	assert.Equal(t, []byte(testSVG), ms.objects[res.Key])
}

func TestHandleUploadRaster(t *testing.T) {
	ms := newMemMediaStore()
	w := serve(handleUpload(testLogger(), ms), multipartRequest(t, "/upload", "front.png", testPNG(t), nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res UploadResponse
	decodeResponse(t, w, &res)
	assert.True(t, strings.HasPrefix(res.Key, "media/raster/"), res.Key)
	assert.Equal(t, 4, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, "image/png", ms.types[res.Key])
}

func TestHandleUploadRejects(t *testing.T) {
	w := serve(handleUpload(testLogger(), nil), multipartRequest(t, "/upload", "a.svg", []byte(testSVG), nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	ms := newMemMediaStore()
	w = serve(handleUpload(testLogger(), ms), multipartRequest(t, "/upload", "notes.txt", []byte("hello there"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")
	w = serve(handleUpload(testLogger(), ms), r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ms.objects)
}

func TestHandleIconPost(t *testing.T) {
	mock, q := newMock(t)
	mock.ExpectQuery("name: CreateIcon").
		WithArgs("pool", testSVG).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "svg"}).AddRow(int64(3), "pool", testSVG))

	w := serve(handleIconPost(testLogger(), q), multipartRequest(t, "/icon", "pool.svg", []byte(testSVG), nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(handleIconPost(testLogger(), q), multipartRequest(t, "/icon", "pool.png", testPNG(t), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
