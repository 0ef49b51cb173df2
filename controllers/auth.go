package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// remoteProfile is the slice of the staff profile the gateway itself needs.
type remoteProfile struct {
	ID       int64  `json:"id"`
	UserType string `json:"user_type"`
	FullName string `json:"full_name"`
}

// Login forwards credentials to the remote backend, persists the returned
// bearer token and profile, and issues a gateway session token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := client.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		utils.RespondWithError(c, http.StatusBadGateway, "Login failed: "+err.Error())
		return
	}

	if err := creds.Save(session.Token, session.Profile); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to persist session")
		return
	}

	var profile remoteProfile
	if len(session.Profile) > 0 {
		_ = json.Unmarshal(session.Profile, &profile)
	}

	token, err := utils.GenerateToken(profile.ID, profile.UserType)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  session.Profile,
	})
}

// Me returns the persisted staff profile for the active session.
func Me(c *gin.Context) {
	profile := creds.Profile()
	if len(profile) == 0 {
		utils.RespondWithError(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": json.RawMessage(profile)})
}

// Logout clears the persisted remote credential.
func Logout(c *gin.Context) {
	creds.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
