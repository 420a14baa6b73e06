package handlers

import (
	"net/http"

	"github.com/builddost/builddost-api/internal/dto"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ComponentHandler struct {
	componentService *services.ComponentService
}

func NewComponentHandler(componentService *services.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

func (h *ComponentHandler) ListComponents(c *gin.Context) {
	components, err := h.componentService.ListComponents(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComponentListResponse(components))
}

func (h *ComponentHandler) GetComponent(c *gin.Context) {
	component, err := h.componentService.GetComponent(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ComponentResponse{Success: true, Component: dto.ToComponentDTO(*component)})
}

func (h *ComponentHandler) CreateComponent(c *gin.Context) {
	type CreateComponentRequest struct {
		Name         string                 `json:"name" binding:"required"`
		Category     string                 `json:"category" binding:"required"`
		Code         models.ComponentCode   `json:"code"`
		Config       models.ComponentConfig `json:"config"`
		PreviewImage string                 `json:"previewImage"`
		IsPublic     *bool                  `json:"isPublic"`
	}

	var req CreateComponentRequest
	if !bindJSON(c, &req) {
		return
	}

	component, err := h.componentService.CreateComponent(services.CreateComponentInput{
		Name:         req.Name,
		Category:     req.Category,
		Code:         req.Code,
		Config:       req.Config,
		PreviewImage: req.PreviewImage,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ComponentResponse{Success: true, Component: dto.ToComponentDTO(*component)})
}
