package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
)

func (s *Server) ListCustomerBills(c *gin.Context) {
	customerID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var query struct {
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.ListByCustomer(c.Request.Context(), billingdomain.ListBillByCustomerRequest{
		CustomerID: customerID,
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBillsByPeriod(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Period     string `form:"period"`
		FeederCode string `form:"feeder_code"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billingSvc.ListByPeriod(c.Request.Context(), billingdomain.ListBillByPeriodRequest{
		FeederCode: strings.TrimSpace(query.FeederCode),
		Period:     strings.TrimSpace(query.Period),
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
