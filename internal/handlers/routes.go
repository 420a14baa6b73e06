package handlers

import (
	"net/http"

	"github.com/builddost/builddost-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router serves.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Project   *ProjectHandler
	Template  *TemplateHandler
	Component *ComponentHandler
	AI        *AIHandler
}

// Health reports that the API is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "BuildDost API is running",
	})
}

// RegisterRoutes mounts the API on r. Session middleware must already be
// installed. generationLimit guards every route that calls the model.
func RegisterRoutes(r gin.IRouter, h Handlers, generationLimit gin.HandlerFunc) {
	r.GET("/health", Health)

	api := r.Group("/api")
	api.Use(middleware.LoadSession())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		users := api.Group("/users")
		{
			users.POST("", h.User.CreateUser)
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", h.User.UpdateUser)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", h.Project.ListProjects)
			projects.POST("", h.Project.CreateProject)
			projects.POST("/generate", generationLimit, h.Project.GenerateProject)
			projects.GET("/:id", h.Project.GetProject)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.GET("/:id/export/zip", h.Project.ExportProjectZip)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", h.Template.ListTemplates)
			templates.POST("", h.Template.CreateTemplate)
			templates.GET("/:id", h.Template.GetTemplate)
			templates.GET("/:id/source", h.Template.GetTemplateSource)
			templates.POST("/:id/export", h.Template.ExportTemplate)
			templates.GET("/:id/export/zip", h.Template.ExportTemplateZip)
		}

		components := api.Group("/components")
		{
			components.GET("", h.Component.ListComponents)
			components.POST("", h.Component.CreateComponent)
			components.GET("/:id", h.Component.GetComponent)
		}

		ai := api.Group("/ai")
		ai.Use(generationLimit)
		{
			ai.POST("/generate-component", h.AI.GenerateComponent)
			ai.POST("/generate-backend", h.AI.GenerateBackend)
			ai.POST("/optimize-code", h.AI.OptimizeCode)
		}
	}
}
