package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
)

type runAllocationRequest struct {
	FeederCode string   `json:"feeder_code"`
	Period     string   `json:"period"`
	TariffRate *float64 `json:"tariff_rate"`
}

func (s *Server) RunAllocation(c *gin.Context) {
	var req runAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.allocationSvc.Run(c.Request.Context(), allocationdomain.RunRequest{
		FeederCode: strings.TrimSpace(req.FeederCode),
		Period:     strings.TrimSpace(req.Period),
		TariffRate: req.TariffRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAllocationRuns(c *gin.Context) {
	var query struct {
		FeederCode string `form:"feeder_code"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.allocationSvc.ListRuns(c.Request.Context(), allocationdomain.ListRunRequest{
		FeederCode: strings.TrimSpace(query.FeederCode),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
