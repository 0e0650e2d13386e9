package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"localtrack/internal/export"
	"localtrack/internal/models"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportHandler struct {
	Store *store.Store
}

func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{Store: st}
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", export.WriteCSV)
}

func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.export(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteXLSX)
}

type writeFunc func(w io.Writer, expenses []models.Expense) error

func (h *ExportHandler) export(c *gin.Context, ext, contentType string, write writeFunc) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	expenses, err := h.Store.ListExpenses(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	// render fully before writing headers so a failure can still be reported
	var buf bytes.Buffer
	if err := write(&buf, expenses); err != nil {
		log.Error().Err(err).Str("format", ext).Msg("export failed")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.%s\"",
		time.Now().Format("20060102"), ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
