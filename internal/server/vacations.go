package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
)

type createVacationRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type updateVacationStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) CreateVacation(c *gin.Context) {
	customerID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req createVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fromDate, err := parseVacationDate(req.FromDate)
	if err != nil {
		AbortWithError(c, newValidationError("from_date", "invalid_from_date", "invalid from_date"))
		return
	}

	toDate, err := parseVacationDate(req.ToDate)
	if err != nil {
		AbortWithError(c, newValidationError("to_date", "invalid_to_date", "invalid to_date"))
		return
	}

	resp, err := s.vacationSvc.Create(c.Request.Context(), vacationdomain.CreateVacationRequest{
		CustomerID: customerID,
		FromDate:   fromDate,
		ToDate:     toDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListVacations(c *gin.Context) {
	customerID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	resp, err := s.vacationSvc.List(c.Request.Context(), vacationdomain.ListVacationRequest{
		CustomerID: customerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateVacationStatus(c *gin.Context) {
	vacationID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateVacationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vacationSvc.UpdateStatus(c.Request.Context(), vacationdomain.UpdateVacationStatusRequest{
		VacationID: vacationID,
		Status:     vacationdomain.VacationStatus(strings.ToLower(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseVacationDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", trimmed)
}
