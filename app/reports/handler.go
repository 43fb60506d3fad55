package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estoqueapp/estoque-api/models"
)

// reportLimit caps the report at the most recent movements.
const reportLimit = 1000

type ReportProvider interface {
	Recent(limit int) ([]models.ReportEntry, error)
}

type ReportHandler struct {
	repo ReportProvider
}

func NewReportHandler(r ReportProvider) *ReportHandler {
	return &ReportHandler{repo: r}
}

func (h *ReportHandler) HandleGet(c *gin.Context) {
	entries, err := h.repo.Recent(reportLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}
	if entries == nil {
		entries = []models.ReportEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
