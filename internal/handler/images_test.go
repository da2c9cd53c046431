package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRouter(maxUploadBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// The size guard runs before the service is touched, so no service is
	// needed to exercise it.
	h := handler.NewImagesHandler(nil, maxUploadBytes)
	r.POST("/v1/images", h.Upload)
	return r
}

func multipartFile(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_BodyOverLimitReturns413(t *testing.T) {
	r := uploadRouter(64)

	body, contentType := multipartFile(t, "file", "big.png", bytes.Repeat([]byte("x"), 1024))
	req := httptest.NewRequest("POST", "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file exceeds the upload size limit", resp.Detail)
}

func TestUpload_MissingFileFieldReturns400(t *testing.T) {
	r := uploadRouter(1024)

	body, contentType := multipartFile(t, "attachment", "small.png", []byte("tiny"))
	req := httptest.NewRequest("POST", "/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "multipart field 'file' is required", resp.Detail)
}
