package handlers

import (
	"errors"
	"net/http"
	"time"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/middleware"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Invalid credentials"

// Signup creates an account from the self-service subset of user fields.
func Signup(c *gin.Context) {
	var in dto.SignupInput
	if !bindInput(c, &in) {
		return
	}
	user, err := in.NewUser()
	if err != nil {
		respondServerError(c, "Failed to hash password", err)
		return
	}
	if err := saveUser(c, user, true); err != nil {
		respondWriteError(c, "User", err, "username", msgDuplicateUsername)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!"})
}

// Login checks a username and password and returns a token pair.
func Login(c *gin.Context) {
	var in dto.LoginInput
	if !bindInput(c, &in) {
		return
	}

	var user models.User
	err := config.DB.Where("username = ?", in.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
		return
	}
	if err != nil {
		respondServerError(c, "Failed to fetch user", err)
		return
	}
	if !user.CheckPassword(in.Password) || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login", now).Error; err != nil {
		respondServerError(c, "Failed to record login", err)
		return
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(&user)
	if err != nil {
		respondServerError(c, "Failed to generate token", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:          user.ID,
		Username:        user.Username,
		Refresh:         refreshToken,
		Access:          accessToken,
		IsBusinessOwner: user.IsBusinessOwner,
	})
}

// RefreshToken trades a valid refresh token for a new pair.
func RefreshToken(c *gin.Context) {
	var in dto.RefreshInput
	if !bindInput(c, &in) {
		return
	}
	claims, err := middleware.ParseToken(in.Refresh, middleware.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}
	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
		return
	}
	accessToken, refreshToken, err := middleware.GenerateTokenPair(&user)
	if err != nil {
		respondServerError(c, "Failed to generate token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": accessToken, "refresh": refreshToken})
}

type ruleOut struct {
	access.Rule
	Description string `json:"description"`
}

// GetAccessRules lists who may do what on each resource.
func GetAccessRules(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Map(access.Rules(), func(r access.Rule) ruleOut {
		return ruleOut{Rule: r, Description: access.Describe(r)}
	}))
}
