package handler

import (
	"errors"
	"net/http"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/apierror"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/service"

	"github.com/gin-gonic/gin"
)

type ImagesHandler struct {
	svc            service.ImageService
	maxUploadBytes int64
}

func NewImagesHandler(svc service.ImageService, maxUploadBytes int64) *ImagesHandler {
	return &ImagesHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// Upload POST /v1/images
// Accepts a single multipart file under the "file" field and returns the
// public URL of the stored blob. The image stays provisional until attached
// to a product.
func (h *ImagesHandler) Upload(c *gin.Context) {
	// Reject oversized bodies before reading them into memory.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// MaxBytesReader trips while the multipart form is parsed, so an
		// oversized body surfaces here rather than as a read error later.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, apierror.New("file exceeds the upload size limit"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New("multipart field 'file' is required"))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("file exceeds the upload size limit"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("failed to read uploaded file"))
		return
	}
	defer f.Close()

	resp, err := h.svc.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpload), errors.Is(err, service.ErrBadImageType):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrBlobUnavailable):
			c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
		case errors.Is(err, service.ErrBlobUpload):
			c.JSON(http.StatusBadGateway, apierror.New(service.ErrBlobUpload.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("image upload failed"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Attach POST /v1/products/:id/images
func (h *ImagesHandler) Attach(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AttachImagesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Attach(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrImageNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrImageClaimed):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/images?url=...
// Always responds with the typed outcome so callers know whether the blob is
// actually gone, was never there, or could not be reached.
func (h *ImagesHandler) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, apierror.New("query parameter 'url' is required"))
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("image deletion failed"))
		return
	}

	status := http.StatusOK
	switch result {
	case service.DeleteResultNotFound:
		status = http.StatusNotFound
	case service.DeleteResultUnreachable:
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.DeleteImageResponse{Result: string(result)})
}
