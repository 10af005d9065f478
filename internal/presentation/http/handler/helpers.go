package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-api/pkg/apperror"
	"github.com/sangkips/retail-api/pkg/export"
)

// maxReportDays bounds the days query parameter of report endpoints
const maxReportDays = 366

func badParam(format string, args ...any) error {
	return apperror.NewBadRequestError("Invalid query parameter: " + fmt.Sprintf(format, args...))
}

// bindJSON decodes the request body, answering 400 on malformed JSON
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// queryFormat reads the export format, defaulting to CSV
func queryFormat(c *gin.Context) (export.Format, error) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return "", apperror.NewBadRequestError(err.Error())
	}
	return format, nil
}

// download renders an export into memory and sends it as an attachment, so a
// failed export still gets a JSON error response
func download(c *gin.Context, format export.Format, render func(w io.Writer) (string, error)) {
	var buf bytes.Buffer
	filename, err := render(&buf)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// queryLimit reads a non-negative limit, using def when absent. Negative
// values are clamped to zero.
func queryLimit(c *gin.Context, def int) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badParam("limit must be an integer")
	}
	return max(n, 0), nil
}

// queryDays reads a window length in days, using def when absent
func queryDays(c *gin.Context, def int) (int, error) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxReportDays {
		return 0, badParam("days must be between 1 and %d", maxReportDays)
	}
	return n, nil
}

// parseInstant accepts RFC 3339 timestamps and plain dates. A plain date
// means the start of that UTC day, or its last instant when endOfDay is set.
func parseInstant(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

// queryRange reads start and end, defaulting to the defaultDays days up to now
func queryRange(c *gin.Context, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	end := now
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		t, err := parseInstant(raw, true)
		if err != nil {
			return time.Time{}, time.Time{}, badParam("end must be a date or RFC 3339 timestamp")
		}
		end = t
	}

	start := end.AddDate(0, 0, -defaultDays)
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		t, err := parseInstant(raw, false)
		if err != nil {
			return time.Time{}, time.Time{}, badParam("start must be a date or RFC 3339 timestamp")
		}
		start = t
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, badParam("start is after end")
	}
	return start, end, nil
}
