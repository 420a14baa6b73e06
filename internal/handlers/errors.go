package handlers

import (
	"errors"
	"fmt"

	"github.com/builddost/builddost-api/internal/constants"
	apierrors "github.com/builddost/builddost-api/internal/errors"
	"github.com/builddost/builddost-api/internal/export"
	"github.com/builddost/builddost-api/internal/generation"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/builddost/builddost-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]gin.H, len(verrs))
			for i, fe := range verrs {
				fields[i] = gin.H{"field": fe.Field(), "rule": fe.Tag()}
			}
			apierrors.BadRequestWithDetails(c, "Invalid request body", fields)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// respondError maps service, generation and export errors onto the failure
// envelope.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var generationErr *generation.Error

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrTemplateSourceMissing),
		errors.Is(err, services.ErrComponentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &generationErr):
		utils.Logf(c.Request.Context(), "handler", "%s %s: %v", c.Request.Method, c.FullPath(), err)
		apierrors.BadGateway(c, generationErr.Message())
	case errors.Is(err, export.ErrExport):
		utils.Logf(c.Request.Context(), "handler", "%s %s: %v", c.Request.Method, c.FullPath(), err)
		apierrors.ExportFailed(c)
	default:
		utils.Logf(c.Request.Context(), "handler", "%s %s: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}
