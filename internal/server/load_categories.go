package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
)

type createLoadCategoryRequest struct {
	Code        string  `json:"code"`
	LoadFactor  float64 `json:"load_factor"`
	Description string  `json:"description"`
}

func (s *Server) CreateLoadCategory(c *gin.Context) {
	var req createLoadCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.loadCategorySvc.Create(c.Request.Context(), lcdomain.CreateCategoryRequest{
		Code:        strings.TrimSpace(req.Code),
		LoadFactor:  req.LoadFactor,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLoadCategories(c *gin.Context) {
	resp, err := s.loadCategorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
