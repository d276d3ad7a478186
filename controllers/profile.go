package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servic-backend/services"
)

type UpdateProfileInput struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.accounts.UpdateProfile(c.Request.Context(), actor, services.ProfileUpdate{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": newUserResponse(user)})
}
