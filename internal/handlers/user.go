package handlers

import (
	"net/http"

	"github.com/builddost/builddost-api/internal/dto"
	"github.com/builddost/builddost-api/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a user. Email and password are optional.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email       string `json:"email" binding:"omitempty,email,max=255"`
		Password    string `json:"password" binding:"omitempty,max=72"`
		FirstName   string `json:"firstName" binding:"max=100"`
		LastName    string `json:"lastName" binding:"max=100"`
		DisplayName string `json:"displayName" binding:"max=100"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(*user))
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// UpdateUser applies a profile edit.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		FirstName   *string `json:"firstName" binding:"omitempty,max=100"`
		LastName    *string `json:"lastName" binding:"omitempty,max=100"`
		DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
		AvatarURL   *string `json:"avatarUrl" binding:"omitempty,max=512"`
		Bio         *string `json:"bio"`
		Company     *string `json:"company"`
		Location    *string `json:"location"`
		Website     *string `json:"website" binding:"omitempty,max=512"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Param("id"), services.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		Company:     req.Company,
		Location:    req.Location,
		Website:     req.Website,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}
