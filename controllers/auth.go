package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/services"
	"servic-backend/utils"
)

type RegisterInput struct {
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	accounts *services.AccountService
	issuer   *utils.TokenIssuer
	log      logrus.FieldLogger
}

func NewAuthController(accounts *services.AccountService, issuer *utils.TokenIssuer, log logrus.FieldLogger) *AuthController {
	return &AuthController{accounts: accounts, issuer: issuer, log: log}
}

// Register creates a USER account and signs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.accounts.Register(c.Request.Context(), services.Registration{
		Phone:     input.Phone,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}

	token, ok := ac.issueToken(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    newUserResponse(user),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), input.Identifier, input.Password)
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}

	token, ok := ac.issueToken(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  newUserResponse(user),
	})
}

// Logout clears the session cookie. Bearer tokens simply expire.
func (ac *AuthController) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// issueToken signs a session token for user and sets it as an http-only
// cookie as well.
func (ac *AuthController) issueToken(c *gin.Context, user models.User) (string, bool) {
	token, err := ac.issuer.Generate(user.ID)
	if err != nil {
		ac.log.WithError(err).WithField("user_id", user.ID).Error("failed to generate token")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}

	setSessionCookie(c, token, int(ac.issuer.Expiry().Seconds()))
	return token, true
}

// setSessionCookie writes the http-only token cookie with SameSite=Lax, so
// cross-site POSTs do not carry it.
func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookie, value, maxAge, "/", "", true, true)
}
