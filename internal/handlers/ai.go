package handlers

import (
	"net/http"

	"github.com/builddost/builddost-api/internal/dto"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AIHandler serves the single-shot generation endpoints.
type AIHandler struct {
	componentService  *services.ComponentService
	generationService *services.GenerationService
}

func NewAIHandler(componentService *services.ComponentService, generationService *services.GenerationService) *AIHandler {
	return &AIHandler{
		componentService:  componentService,
		generationService: generationService,
	}
}

// GenerateComponent generates a UI component, saving it when "save" is set.
func (h *AIHandler) GenerateComponent(c *gin.Context) {
	type GenerateComponentRequest struct {
		Description   string   `json:"description"`
		Type          string   `json:"type"`
		Style         string   `json:"style"`
		Functionality []string `json:"functionality"`
		Save          bool     `json:"save"`
	}

	var req GenerateComponentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.componentService.GenerateComponent(c.Request.Context(), services.GenerateComponentInput{
		Description:   req.Description,
		Type:          req.Type,
		Style:         req.Style,
		Functionality: req.Functionality,
		Save:          req.Save,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.GenerateComponentResponse{Success: true, Component: result.Result}
	if result.Saved != nil {
		saved := dto.ToComponentDTO(*result.Saved)
		resp.Saved = &saved
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateBackend generates a backend scaffold. Nothing is stored.
func (h *AIHandler) GenerateBackend(c *gin.Context) {
	type GenerateBackendRequest struct {
		Description string   `json:"description"`
		Framework   string   `json:"framework"`
		Database    string   `json:"database"`
		Features    []string `json:"features"`
	}

	var req GenerateBackendRequest
	if !bindJSON(c, &req) {
		return
	}

	backend, err := h.generationService.GenerateBackend(c.Request.Context(), services.GenerateBackendInput{
		Description: req.Description,
		Framework:   req.Framework,
		Database:    req.Database,
		Features:    req.Features,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BackendResponse{Success: true, Backend: backend})
}

// OptimizeCode returns an optimized version of the submitted code.
func (h *AIHandler) OptimizeCode(c *gin.Context) {
	type OptimizeCodeRequest struct {
		Code     string   `json:"code"`
		Language string   `json:"language"`
		Goals    []string `json:"goals"`
	}

	var req OptimizeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.generationService.OptimizeCode(c.Request.Context(), services.OptimizeCodeInput{
		Code:     req.Code,
		Language: req.Language,
		Goals:    req.Goals,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OptimizeResponse{Success: true, Result: result})
}
