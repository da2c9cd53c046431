package handler

import (
	"net/http"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/apierror"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/service"

	"github.com/gin-gonic/gin"
)

type StorefrontHandler struct{ svc service.StorefrontService }

func NewStorefrontHandler(svc service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{svc: svc}
}

// Landing GET /v1/storefront
func (h *StorefrontHandler) Landing(c *gin.Context) {
	resp, err := h.svc.Landing(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load storefront"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
