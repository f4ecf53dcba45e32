package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"athar/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloud struct {
	folder, publicID string
	kind             cloudinary.Kind
	size             int
}

func (f *fakeCloud) Upload(ctx context.Context, file io.Reader, kind cloudinary.Kind, folder, publicID string) (*cloudinary.UploadResult, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.folder, f.publicID, f.kind, f.size = folder, publicID, kind, len(b)
	return &cloudinary.UploadResult{URL: "https://res.cloudinary.com/demo/" + string(kind) + "/upload/" + folder + "/" + publicID + ".jpg"}, nil
}

func (f *fakeCloud) DeleteByURL(ctx context.Context, url string) error { return nil }

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cloud := &fakeCloud{}
	h := NewUploadHandler(cloud, "Athar")
	r := gin.New()
	r.POST("/upload/image", h.UploadImage)
	r.POST("/upload/video", h.UploadVideo)

	body, ct := multipartBody(t, "photo.PNG", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload/image", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, cloudinary.KindImage, cloud.kind)
	assert.Equal(t, "Athar/posts/0", cloud.folder)
	assert.True(t, strings.HasPrefix(cloud.publicID, "image_"))
	assert.Equal(t, len("png-bytes"), cloud.size)
	assert.Contains(t, w.Body.String(), "res.cloudinary.com")

	// Wrong extension for the endpoint.
	body, ct = multipartBody(t, "photo.png", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/upload/video", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/upload/image", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
