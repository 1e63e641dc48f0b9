package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/orchestrator"
	"github.com/goliatone/go-taguchi/pkg/render"
)

type handler struct {
	orch          *orchestrator.Orchestrator
	maxBodyBytes  int64
	defaultFormat string
}

func newHandler(opts Options) *handler {
	return &handler{
		orch:          opts.Orchestrator,
		maxBodyBytes:  opts.MaxBodyBytes,
		defaultFormat: opts.DefaultFormat,
	}
}

type arrayInfo struct {
	Name    string `json:"name"`
	Runs    int    `json:"runs"`
	Columns int    `json:"columns"`
	Levels  int    `json:"levels"`
}

func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListArrays returns the catalog in declaration order.
func (h *handler) ListArrays(c *gin.Context) {
	all := h.orch.Catalog().All()
	out := make([]arrayInfo, len(all))
	for i, d := range all {
		out[i] = arrayInfo{Name: d.Name, Runs: d.Runs, Columns: d.Columns, Levels: d.Levels}
	}
	c.JSON(http.StatusOK, out)
}

// Validate answers 200 for both outcomes; the body says which.
func (h *handler) Validate(c *gin.Context) {
	req, ok := h.request(c, c.Query("format"))
	if !ok {
		return
	}
	result, err := h.orch.Validate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{"valid": result.Valid}
	if !result.Valid && len(result.Issues) > 0 {
		body["error"] = result.Issues[0].Message
		body["issues"] = result.Issues
	}
	c.JSON(http.StatusOK, body)
}

func (h *handler) Suggest(c *gin.Context) {
	req, ok := h.request(c, c.Query("format"))
	if !ok {
		return
	}
	candidates, err := h.orch.Candidates(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{"array": candidates[0].Name}
	if all, _ := strconv.ParseBool(c.Query("all")); all {
		names := make([]string, len(candidates))
		for i, d := range candidates {
			names[i] = d.Name
		}
		body["candidates"] = names
	}
	c.JSON(http.StatusOK, body)
}

// Generate renders the plan with the renderer named by ?format=. The input
// syntax comes from ?input= or the Content-Type.
func (h *handler) Generate(c *gin.Context) {
	renderer := c.DefaultQuery("format", h.defaultFormat)
	if renderer != "" && !h.orch.Registry().Has(renderer) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unknown output format %q (available: %s)", renderer, strings.Join(h.orch.Registry().List(), ", ")),
		})
		return
	}

	req, ok := h.request(c, "")
	if !ok {
		return
	}
	req.Array = strings.TrimSpace(c.Query("array"))
	req.Renderer = renderer
	req.RenderOptions = render.RenderOptions{Title: c.Query("title")}
	req.RenderOptions.Indent, _ = strconv.ParseBool(c.Query("indent"))

	out, contentType, err := h.orch.GenerateWithType(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, out)
}

// request reads the body into an inline document. fallback is consulted
// after ?input= and before the Content-Type.
func (h *handler) request(c *gin.Context, fallback string) (orchestrator.Request, bool) {
	format, err := inputFormat(c, fallback)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return orchestrator.Request{}, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("definition exceeds %d bytes", tooLarge.Limit)})
			return orchestrator.Request{}, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return orchestrator.Request{}, false
	}

	doc, err := pkgdefinition.NewDocument(pkgdefinition.SourceFromBytes("request", body), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return orchestrator.Request{}, false
	}
	return orchestrator.Request{Document: &doc, Format: format}, true
}

func inputFormat(c *gin.Context, fallback string) (pkgdefinition.Format, error) {
	for _, name := range []string{c.Query("input"), fallback} {
		if strings.TrimSpace(name) == "" {
			continue
		}
		return pkgdefinition.ParseFormat(name)
	}

	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil {
		return pkgdefinition.FormatUnknown, nil
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return pkgdefinition.FormatJSON, nil
	case strings.Contains(mediaType, "yaml"):
		return pkgdefinition.FormatYAML, nil
	case strings.Contains(mediaType, "hcl"):
		return pkgdefinition.FormatHCL, nil
	default:
		return pkgdefinition.FormatUnknown, nil
	}
}

func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	kind := design.KindOf(err)
	body := gin.H{"error": design.Cause(err).Error()}
	if kind != "" {
		body["kind"] = string(kind)
	}
	c.JSON(statusFor(kind), body)
}

func statusFor(kind design.ErrorKind) int {
	switch kind {
	case design.ErrSyntax, design.ErrDuplicateFactor, design.ErrInsufficientLevels,
		design.ErrEmptyName, design.ErrDuplicateLevel, design.ErrLimits, design.ErrEmptyDefinition:
		return http.StatusBadRequest
	case design.ErrUnknownArray, design.ErrIncompatible, design.ErrNoSuitableArray, design.ErrArrayTooSmall,
		design.ErrInvalidArray:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
