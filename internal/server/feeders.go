package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
)

type createFeederRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

func (s *Server) CreateFeeder(c *gin.Context) {
	var req createFeederRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.feederSvc.Create(c.Request.Context(), feederdomain.CreateFeederRequest{
		Code:   strings.TrimSpace(req.Code),
		Name:   strings.TrimSpace(req.Name),
		Region: strings.TrimSpace(req.Region),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFeeders(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
		Region string `form:"region"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.feederSvc.List(c.Request.Context(), feederdomain.ListFeederRequest{
		Status: strings.TrimSpace(query.Status),
		Region: strings.TrimSpace(query.Region),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetFeederByCode(c *gin.Context) {
	resp, err := s.feederSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
