// Package http exposes hashing and the name registry over HTTP.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hname/internal/hname"
	"github.com/allisson/hname/internal/httputil"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
	"github.com/allisson/hname/internal/registry/http/dto"
	registryUseCase "github.com/allisson/hname/internal/registry/usecase"
	customValidation "github.com/allisson/hname/internal/validation"
)

// RegistryHandler serves the /v1/hash, /v1/names and /v1/hnames routes.
type RegistryHandler struct {
	registryUseCase registryUseCase.RegistryUseCase
	logger          *slog.Logger
}

// NewRegistryHandler creates a RegistryHandler.
func NewRegistryHandler(registryUseCase registryUseCase.RegistryUseCase, logger *slog.Logger) *RegistryHandler {
	return &RegistryHandler{
		registryUseCase: registryUseCase,
		logger:          logger,
	}
}

// HashHandler hashes a batch of names.
// POST /v1/hash
func (h *RegistryHandler) HashHandler(c *gin.Context) {
	var req dto.HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	hnames, err := h.registryUseCase.Hash(c.Request.Context(), req.Names)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHashResponse(req.Names, hnames))
}

// HashOneHandler hashes the name in the path. Names containing "/" need the
// POST form.
// GET /v1/hash/:name
func (h *RegistryHandler) HashOneHandler(c *gin.Context) {
	name := c.Param("name")

	hnames, err := h.registryUseCase.Hash(c.Request.Context(), []string{name})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHashResult(name, hnames[0]))
}

// RegisterHandler registers a name and returns the stored entry.
// POST /v1/names
func (h *RegistryHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	entry, err := h.registryUseCase.Register(c.Request.Context(), req.Name, registryDomain.Kind(req.Kind))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEntryToResponse(entry))
}

// ListHandler returns entries ordered by name.
// GET /v1/names?offset=0&limit=50
func (h *RegistryHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, err := h.registryUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}

// GetByNameHandler looks an entry up by name.
// GET /v1/names/:name
func (h *RegistryHandler) GetByNameHandler(c *gin.Context) {
	entry, err := h.registryUseCase.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntryToResponse(entry))
}

// GetByHNameHandler resolves an hname back to its registered name.
// GET /v1/hnames/:hname
func (h *RegistryHandler) GetByHNameHandler(c *gin.Context) {
	target, ok := h.parseHName(c)
	if !ok {
		return
	}

	entry, err := h.registryUseCase.GetByHName(c.Request.Context(), target)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntryToResponse(entry))
}

// DeleteHandler removes the entry holding an hname.
// DELETE /v1/hnames/:hname
func (h *RegistryHandler) DeleteHandler(c *gin.Context) {
	target, ok := h.parseHName(c)
	if !ok {
		return
	}

	if err := h.registryUseCase.Delete(c.Request.Context(), target); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *RegistryHandler) parseHName(c *gin.Context) (hname.HName, bool) {
	param := dto.HNameParam{HName: c.Param("hname")}
	target, err := param.Value()
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return hname.Nil, false
	}
	return target, true
}
