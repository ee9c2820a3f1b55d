package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
)

type ingestReadingRequest struct {
	HoursSupplied float64 `json:"hours_supplied"`
	ReadingDate   string  `json:"reading_date"`
}

func (s *Server) IngestReading(c *gin.Context) {
	var req ingestReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var readingDate time.Time
	if trimmed := strings.TrimSpace(req.ReadingDate); trimmed != "" {
		parsed, err := time.Parse("2006-01-02", trimmed)
		if err != nil {
			AbortWithError(c, newValidationError("reading_date", "invalid_reading_date", "invalid reading_date"))
			return
		}
		readingDate = parsed
	}

	resp, err := s.readingSvc.Ingest(c.Request.Context(), readingdomain.IngestReadingRequest{
		FeederCode:    c.Param("code"),
		HoursSupplied: req.HoursSupplied,
		ReadingDate:   readingDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	resp, err := s.readingSvc.List(c.Request.Context(), readingdomain.ListReadingRequest{
		FeederCode: c.Param("code"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
