package handlers

import (
	"fmt"
	"net/http"

	"github.com/builddost/builddost-api/internal/dto"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService *services.TemplateService
	exportService   *services.ExportService
}

func NewTemplateHandler(templateService *services.TemplateService, exportService *services.ExportService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		exportService:   exportService,
	}
}

// ListTemplates lists public templates, filtered by ?category= when given.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTemplateListResponse(templates))
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.templateService.GetTemplate(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TemplateResponse{Success: true, Template: dto.ToTemplateDTO(*template)})
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	type CreateTemplateRequest struct {
		Name         string                `json:"name" binding:"required"`
		Description  string                `json:"description"`
		Category     string                `json:"category" binding:"required"`
		Components   []models.ComponentRef `json:"components"`
		Config       map[string]any        `json:"config"`
		SourceFile   string                `json:"sourceFile"`
		SourceCode   string                `json:"sourceCode"`
		PreviewImage string                `json:"previewImage"`
		IsPublic     *bool                 `json:"isPublic"`
	}

	var req CreateTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	template, err := h.templateService.CreateTemplate(services.CreateTemplateInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Components:   req.Components,
		Config:       req.Config,
		SourceFile:   req.SourceFile,
		SourceCode:   req.SourceCode,
		PreviewImage: req.PreviewImage,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TemplateResponse{Success: true, Template: dto.ToTemplateDTO(*template)})
}

// ExportTemplate prepares a zip download or a GitHub export.
func (h *TemplateHandler) ExportTemplate(c *gin.Context) {
	type ExportRequest struct {
		Format     string `json:"format"`
		Repository string `json:"repository"`
	}

	var req ExportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	result, err := h.exportService.ExportTemplate(c.Request.Context(), id, services.ExportTemplateInput{
		Format:     req.Format,
		Repository: req.Repository,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ExportResponse{
		Success: true,
		Format:  result.Format,
		Files:   result.Bundle.Paths(),
		GitHub:  result.GitHub,
	}
	if result.Format == services.ExportFormatZip {
		resp.DownloadURL = fmt.Sprintf("/api/templates/%s/export/zip", id)
	}
	c.JSON(http.StatusOK, resp)
}

// ExportTemplateZip streams the template bundle as a zip archive.
func (h *TemplateHandler) ExportTemplateZip(c *gin.Context) {
	bundle, err := h.exportService.TemplateBundle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	writeZip(c, bundle)
}

// GetTemplateSource returns the raw template source as text.
func (h *TemplateHandler) GetTemplateSource(c *gin.Context) {
	source, err := h.templateService.GetSource(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if source.Filename != "" {
		c.Header("Content-Disposition", contentDisposition("inline", source.Filename))
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(source.Code))
}
