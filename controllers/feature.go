package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

// CreateFeatureInput authors only the title; the backend defaults the rest.
type CreateFeatureInput struct {
	Title string `json:"title" binding:"required"`
}

type UpdateFeatureInput struct {
	Title    *string `json:"title"`
	IsActive *int    `json:"is_active"`
}

// GetFeatures lists homepage feature sections.
func GetFeatures(c *gin.Context) {
	if c.Query("refresh") == "1" {
		featureStore.Refresh(c.Request.Context())
	}

	view := services.View[models.FeatureSection]{Search: c.Query("search")}

	switch c.DefaultQuery("sort", "created_desc") {
	case "title_asc":
		view.Less = func(a, b models.FeatureSection) bool { return services.CompareNames(a.Title, b.Title) < 0 }
	case "title_desc":
		view.Less = func(a, b models.FeatureSection) bool { return services.CompareNames(a.Title, b.Title) > 0 }
	case "created_asc":
		view.Less = func(a, b models.FeatureSection) bool { return a.CreatedAt < b.CreatedAt }
	default:
		view.Less = func(a, b models.FeatureSection) bool { return a.CreatedAt > b.CreatedAt }
	}

	items := featureStore.Apply(view)

	resp := gin.H{"data": items, "count": len(items)}
	if err := featureStore.LastError(); err != nil {
		resp["message"] = "Feature list could not be refreshed"
	}
	c.JSON(http.StatusOK, resp)
}

// CreateFeature creates a feature section from a title.
func CreateFeature(c *gin.Context) {
	var input CreateFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	id, err := client.Insert(c.Request.Context(), services.TableFeatures, map[string]interface{}{
		"title": input.Title,
	})
	if err != nil {
		respondDispatchError(c, err, "Failed to create feature section")
		return
	}

	auditor.Record(actorID(c), services.ActionInsert, services.TableFeatures, id, input.Title)
	featureStore.Refresh(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateFeature updates provided fields only.
func UpdateFeature(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid feature ID format")
		return
	}

	var input UpdateFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	data := map[string]interface{}{}
	if input.Title != nil {
		data["title"] = *input.Title
	}
	if input.IsActive != nil {
		data["is_active"] = *input.IsActive
	}
	if len(data) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := client.Update(c.Request.Context(), services.TableFeatures, services.Alive("id", id), data); err != nil {
		respondDispatchError(c, err, "Failed to update feature section")
		return
	}

	auditor.Record(actorID(c), services.ActionUpdate, services.TableFeatures, id, "")
	featureStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Feature section updated"})
}

// DeleteFeature archives a feature section.
func DeleteFeature(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid feature ID format")
		return
	}

	if err := client.SoftDelete(c.Request.Context(), services.TableFeatures, services.Alive("id", id)); err != nil {
		respondDispatchError(c, err, "Failed to delete feature section")
		return
	}

	auditor.Record(actorID(c), services.ActionSoftDelete, services.TableFeatures, id, "")
	featureStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Feature section deleted successfully"})
}
