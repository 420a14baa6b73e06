package handlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/builddost/builddost-api/internal/dto"
	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/middleware"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/builddost/builddost-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	exportService  *services.ExportService
	// demoUserID owns projects created without a session or explicit userId.
	demoUserID string
}

func NewProjectHandler(projectService *services.ProjectService, exportService *services.ExportService, demoUserID string) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		exportService:  exportService,
		demoUserID:     demoUserID,
	}
}

// resolveOwner picks the session user, then the requested user, then the
// demo user.
func (h *ProjectHandler) resolveOwner(c *gin.Context, requested string) string {
	if userID, ok := middleware.GetUserID(c); ok {
		return userID
	}
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested
	}
	return h.demoUserID
}

// ListProjects lists the projects of ?userId=, or of the session user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		userID, _ = middleware.GetUserID(c)
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProjectListResponse(projects))
}

// GetProject returns a project by ID.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProjectResponse(*project))
}

// CreateProject stores a hand-built project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		UserID        string                `json:"userId"`
		Name          string                `json:"name" binding:"required"`
		Description   *string               `json:"description"`
		Components    []models.ComponentRef `json:"components"`
		Config        *models.ProjectConfig `json:"config"`
		IsPublic      bool                  `json:"isPublic"`
		Status        models.ProjectStatus  `json:"status"`
		DeploymentURL *string               `json:"deploymentUrl"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		UserID:        h.resolveOwner(c, req.UserID),
		Name:          req.Name,
		Description:   req.Description,
		Components:    req.Components,
		Config:        req.Config,
		IsPublic:      req.IsPublic,
		Status:        req.Status,
		DeploymentURL: req.DeploymentURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProjectResponse(*project))
}

// UpdateProject merges the request over a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name          *string                `json:"name"`
		Description   *string                `json:"description"`
		Components    *[]models.ComponentRef `json:"components"`
		Config        *models.ProjectConfig  `json:"config"`
		IsPublic      *bool                  `json:"isPublic"`
		Status        *models.ProjectStatus  `json:"status"`
		DeploymentURL *string                `json:"deploymentUrl"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), services.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Components:    req.Components,
		Config:        req.Config,
		IsPublic:      req.IsPublic,
		Status:        req.Status,
		DeploymentURL: req.DeploymentURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProjectResponse(*project))
}

// DeleteProject hard-deletes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// GenerateProject generates a full-stack project from a prompt and stores it.
func (h *ProjectHandler) GenerateProject(c *gin.Context) {
	type GenerateProjectRequest struct {
		Prompt   string   `json:"prompt"`
		Type     string   `json:"type" binding:"omitempty,oneof=web mobile desktop"`
		Features []string `json:"features"`
		UserID   string   `json:"userId"`
	}

	var req GenerateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.projectService.GenerateProject(c.Request.Context(), services.GenerateProjectInput{
		Prompt:   req.Prompt,
		Type:     req.Type,
		Features: req.Features,
		UserID:   h.resolveOwner(c, req.UserID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewGenerateProjectResponse(result.Result, result.Features))
}

// ExportProjectZip streams the project's files as a zip archive.
func (h *ProjectHandler) ExportProjectZip(c *gin.Context) {
	bundle, err := h.exportService.ProjectBundle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	writeZip(c, bundle)
}

// writeZip streams bundle as an attachment. Errors after the first byte can
// only be logged.
func writeZip(c *gin.Context, bundle *export.Bundle) {
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", contentDisposition("attachment", export.ZipFilename(bundle)))
	c.Status(http.StatusOK)

	if err := export.WriteZip(c.Writer, bundle); err != nil {
		utils.Logf(c.Request.Context(), "export", "zip stream for %s failed: %v", bundle.Name, err)
		_ = c.Error(err)
	}
}

// contentDisposition quotes or RFC 2231 encodes filename as needed.
func contentDisposition(disposition, filename string) string {
	return mime.FormatMediaType(disposition, map[string]string{"filename": filename})
}
