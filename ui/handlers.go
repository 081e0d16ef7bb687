package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/Divyaeh-iitm/Simpledashboard/adapters/excel"
	"github.com/Divyaeh-iitm/Simpledashboard/app"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/core"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
)

// handleIndex renders the analysis form.
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"DefaultPrimaries": DefaultPrimaryMaterials,
		"WorkPackages":     []string{"Flooring", "False Ceiling", "Other"},
	})
}

// handleAnalyze processes an upload + form submission and renders results.
func (s *Server) handleAnalyze(c *gin.Context) {
	ds, req, err := s.parseAnalyzeRequest(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	run, err := s.service.Run(c.Request.Context(), ds, req)
	if err != nil {
		s.renderError(c, err)
		return
	}

	report := app.BuildMarkdown(run)

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Run":        run,
		"Preview":    ds.Preview(10),
		"ReportHTML": renderMarkdown(report),
	})
}

// handleAPIAnalyze is the JSON variant of handleAnalyze.
func (s *Server) handleAPIAnalyze(c *gin.Context) {
	ds, req, err := s.parseAnalyzeRequest(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	run, err := s.service.Run(c.Request.Context(), ds, req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run.View())
}

// parseAnalyzeRequest validates the uploaded file and form fields and
// produces the dataset plus the analysis request.
func (s *Server) parseAnalyzeRequest(c *gin.Context) (*epd.Dataset, app.Request, error) {
	var req app.Request

	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		return nil, req, core.NewValidationError("dataset", "no file uploaded")
	}
	defer file.Close()

	maxBytes := s.cfg.Upload.MaxSizeMB << 20
	if header.Size > maxBytes {
		return nil, req, core.NewValidationError("dataset",
			fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit", float64(header.Size)/(1<<20), s.cfg.Upload.MaxSizeMB))
	}

	filename := strings.ToLower(header.Filename)
	if !strings.HasSuffix(filename, ".xlsx") && !strings.HasSuffix(filename, ".csv") {
		return nil, req, core.NewValidationError("dataset", "only .xlsx and .csv files are allowed")
	}

	ds, err := excel.ParseUpload(header.Filename, file)
	if err != nil {
		return nil, req, err
	}

	req = app.Request{
		ProjectName:     c.PostForm("project_name"),
		ProjectArea:     c.PostForm("project_area"),
		ProjectLocation: c.PostForm("project_location"),
		WorkPackage:     c.PostForm("work_package"),
		Primaries:       splitList(c.PostForm("primary_materials")),
		Mapping:         parseMapping(c.PostForm("mapping")),
	}

	for i := 1; i <= 3; i++ {
		name := strings.TrimSpace(c.PostForm(fmt.Sprintf("secondary_name_%d", i)))
		if name == "" {
			continue
		}
		req.Secondaries = append(req.Secondaries, app.SecondaryMaterial{
			Name:    name,
			Purpose: strings.TrimSpace(c.PostForm(fmt.Sprintf("secondary_purpose_%d", i))),
		})
	}

	return ds, req, nil
}

func (s *Server) renderError(c *gin.Context, err error) {
	s.logger.Warn("[Server] analyze request rejected: %v", err)
	c.HTML(statusFor(err), "error.html", gin.H{"Error": err.Error()})
}

func statusFor(err error) int {
	if core.IsSchemaError(err) || core.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// splitList parses a comma-separated material list, dropping blanks.
func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseMapping parses "primary=secondary" pairs separated by commas.
func parseMapping(input string) map[string]string {
	mapping := make(map[string]string)
	for _, pair := range strings.Split(input, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			mapping[key] = value
		}
	}
	return mapping
}

// renderMarkdown converts the markdown report to HTML for inline display.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
