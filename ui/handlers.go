package ui

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"salesdash/app"
	"salesdash/domain/core"
	"salesdash/domain/sales"
	"salesdash/internal/aggregate"
	"salesdash/internal/errors"
	"salesdash/internal/report"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload ingests a CSV or xlsx file from a multipart form field
// named "file" and returns the new dataset id.
func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.abortError(c, errors.InvalidInput("missing multipart field \"file\""))
		return
	}
	if fh.Size > int64(s.maxUploadMB)<<20 {
		s.abortError(c, errors.InvalidInput("uploaded file exceeds size limit"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.abortError(c, errors.Wrap(err, "open uploaded file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.abortError(c, errors.Wrap(err, "read uploaded file"))
		return
	}

	t, err := s.dash.LoadBytes(fh.Filename, data)
	if err != nil {
		s.abortError(c, err)
		return
	}

	id := s.AddTable(t)
	s.log.Info("dataset %s ingested: %d rows from %s", id, t.Len(), fh.Filename)
	c.JSON(http.StatusCreated, gin.H{"id": id.String(), "rows": t.Len(), "columns": t.Headers()})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	t, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		s.abortError(c, err)
		return
	}

	snap, err := s.dash.Snapshot(c.Request.Context(), t, f)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleExport(c *gin.Context) {
	t, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		s.abortError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="filtered_data.csv"`)
	if err := s.dash.ExportCSV(t, f, c.Writer); err != nil {
		s.log.Error("export failed: %v", err)
	}
}

func (s *Server) handleReport(c *gin.Context) {
	t, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		s.abortError(c, err)
		return
	}

	snap, err := s.dash.Snapshot(c.Request.Context(), t, f)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(snap))
}

func (s *Server) lookupDataset(c *gin.Context) (*sales.Table, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		s.abortError(c, errors.InvalidInput(err.Error()))
		return nil, false
	}
	t, ok := s.table(id)
	if !ok {
		s.abortError(c, errors.NotFound("dataset "+id.String()))
		return nil, false
	}
	return t, true
}

// parseFilter reads from/to (ISO dates), categories/regions (comma
// separated), and n from the query string.
func parseFilter(c *gin.Context) (app.Filter, error) {
	var f app.Filter

	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.InvalidInput("invalid from date: " + v)
		}
		f.From = d
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.InvalidInput("invalid to date: " + v)
		}
		f.To = d
	}
	f.Categories = splitList(c.Query("categories"))
	f.Regions = splitList(c.Query("regions"))
	if v := c.Query("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.InvalidInput("invalid n: " + v)
		}
		f.TopN = aggregate.SanitizeTopN(n)
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) abortError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.log.Error("%s: %v", c.FullPath(), err)
	} else {
		s.log.Warn("%s: %v", c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": err.Error()})
}

func statusForCode(code string) int {
	switch code {
	case errors.CodeParse, errors.CodeSchema, errors.CodeNumericCoercion,
		errors.CodeDateCoercion, errors.CodeInvalidPeriod, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
