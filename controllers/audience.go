package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

type AudienceInput struct {
	Gender string `json:"gender" binding:"required"`
}

// GetAudiences lists the configured gender targeting records.
func GetAudiences(c *gin.Context) {
	if c.Query("refresh") == "1" {
		audienceStore.Refresh(c.Request.Context())
	}

	view := services.View[models.TargetAudience]{Search: c.Query("search")}
	view.Less = func(a, b models.TargetAudience) bool { return a.CreatedAt < b.CreatedAt }

	items := audienceStore.Apply(view)

	resp := gin.H{"data": items, "count": len(items)}
	if err := audienceStore.LastError(); err != nil {
		resp["message"] = "Audience list could not be refreshed"
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAudience adds a gender targeting record.
func CreateAudience(c *gin.Context) {
	var input AudienceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsValidGender(input.Gender) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown gender value")
		return
	}

	id, err := client.Insert(c.Request.Context(), services.TableAudiences, map[string]interface{}{
		"gender": input.Gender,
	})
	if err != nil {
		respondDispatchError(c, err, "Failed to create audience")
		return
	}

	auditor.Record(actorID(c), services.ActionInsert, services.TableAudiences, id, input.Gender)
	audienceStore.Refresh(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateAudience changes a record's gender value.
func UpdateAudience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid audience ID format")
		return
	}

	var input AudienceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsValidGender(input.Gender) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown gender value")
		return
	}

	if err := client.Update(c.Request.Context(), services.TableAudiences, services.Alive("id", id), map[string]interface{}{
		"gender": input.Gender,
	}); err != nil {
		respondDispatchError(c, err, "Failed to update audience")
		return
	}

	auditor.Record(actorID(c), services.ActionUpdate, services.TableAudiences, id, input.Gender)
	audienceStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Audience updated"})
}

// DeleteAudience archives a targeting record.
func DeleteAudience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid audience ID format")
		return
	}

	if err := client.SoftDelete(c.Request.Context(), services.TableAudiences, services.Alive("id", id)); err != nil {
		respondDispatchError(c, err, "Failed to delete audience")
		return
	}

	auditor.Record(actorID(c), services.ActionSoftDelete, services.TableAudiences, id, "")
	audienceStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Audience deleted successfully"})
}
