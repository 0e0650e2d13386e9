package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"localtrack/internal/models"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Bounds used when a list request leaves out start or end.
const (
	minDate = "0001-01-01"
	maxDate = "9999-12-31"
)

// respondError maps domain errors onto the API's status and code pairs.
// Anything unexpected is logged and reported as a server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

func badRequest(c *gin.Context, msg string) {
	util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// dateRange reads ?start=&end=, open on either side when omitted.
func dateRange(c *gin.Context) (string, string, bool) {
	start := c.DefaultQuery("start", minDate)
	end := c.DefaultQuery("end", maxDate)
	if err := util.ValidateDate(start); err != nil {
		badRequest(c, "invalid start: "+err.Error())
		return "", "", false
	}
	if err := util.ValidateDate(end); err != nil {
		badRequest(c, "invalid end: "+err.Error())
		return "", "", false
	}
	return start, end, true
}

// dateQuery reads an optional YYYY-MM-DD query parameter, defaulting to today.
func dateQuery(c *gin.Context, name string, now func() time.Time) (time.Time, bool) {
	s := c.Query(name)
	if s == "" {
		return models.Day(now()), true
	}
	d, err := models.ParseDate(s)
	if err != nil {
		badRequest(c, "invalid "+name+": "+err.Error())
		return time.Time{}, false
	}
	return d, true
}

// optionalAmount parses a decimal string field, treating "" as absent.
func optionalAmount(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := util.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
