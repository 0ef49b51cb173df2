package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

// CategoryInput defines the expected JSON structure for creating or updating
// a category. Image carries an existing reference; ImageData carries a newly
// chosen file as base64 and takes precedence when present.
type CategoryInput struct {
	Name      string   `json:"name" binding:"required"`
	Image     string   `json:"image"`
	ImageData string   `json:"image_data"`
	ImageName string   `json:"image_name"`
	ImageType string   `json:"image_type"`
	Styles    []string `json:"styles" binding:"required"`
	Metals    []string `json:"metals" binding:"required"`
}

// GetCategories lists categories with their option collections, filtered and
// sorted per query parameters.
func GetCategories(c *gin.Context) {
	if c.Query("refresh") == "1" {
		categoryStore.Refresh(c.Request.Context())
	}

	view := services.View[models.CategoryDetail]{Search: c.Query("search")}

	switch c.Query("filter") {
	case "with_styles":
		view.Filter = func(d models.CategoryDetail) bool { return d.StyleCount() > 0 }
	case "with_metals":
		view.Filter = func(d models.CategoryDetail) bool { return d.MetalCount() > 0 }
	case "complete":
		view.Filter = func(d models.CategoryDetail) bool { return d.StyleCount() > 0 && d.MetalCount() > 0 }
	case "empty":
		view.Filter = func(d models.CategoryDetail) bool { return d.StyleCount() == 0 && d.MetalCount() == 0 }
	}

	switch c.DefaultQuery("sort", "name_asc") {
	case "name_desc":
		view.Less = func(a, b models.CategoryDetail) bool { return services.CompareNames(a.Name, b.Name) > 0 }
	case "options_desc":
		view.Less = func(a, b models.CategoryDetail) bool {
			return a.StyleCount()+a.MetalCount() > b.StyleCount()+b.MetalCount()
		}
	case "created_asc":
		view.Less = func(a, b models.CategoryDetail) bool { return a.CreatedAt < b.CreatedAt }
	case "created_desc":
		view.Less = func(a, b models.CategoryDetail) bool { return a.CreatedAt > b.CreatedAt }
	default:
		view.Less = func(a, b models.CategoryDetail) bool { return services.CompareNames(a.Name, b.Name) < 0 }
	}

	items := categoryStore.Apply(view)

	resp := gin.H{"data": items, "count": len(items)}
	if err := categoryStore.LastError(); err != nil {
		resp["message"] = "Category list could not be refreshed"
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategory retrieves one category with its options.
func GetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var categories []models.Category
	if err := client.Get(c.Request.Context(), services.TableCategories, services.Alive("id", id), &categories); err != nil {
		respondDispatchError(c, err, "Failed to retrieve category")
		return
	}
	if len(categories) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}

	c.JSON(http.StatusOK, aggregator.CategoryDetail(c.Request.Context(), categories[0]))
}

// CreateCategory creates a category together with its option collections.
func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	form, err := formFromInput(input)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := reconciler.SaveCategory(c.Request.Context(), nil, form)
	if err != nil {
		respondSaveError(c, err, "Failed to create category")
		return
	}

	auditor.Record(actorID(c), services.ActionInsert, services.TableCategories, id, input.Name)
	categoryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateCategory updates a category and replaces its option collections.
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	form, err := formFromInput(input)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := reconciler.SaveCategory(c.Request.Context(), &id, form); err != nil {
		respondSaveError(c, err, "Failed to update category")
		return
	}

	auditor.Record(actorID(c), services.ActionUpdate, services.TableCategories, id, input.Name)
	categoryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteCategory archives a category. Its option rows stay behind but are
// only ever queried through their live parent.
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := client.SoftDelete(c.Request.Context(), services.TableCategories, services.Alive("id", id)); err != nil {
		respondDispatchError(c, err, "Failed to delete category")
		return
	}

	auditor.Record(actorID(c), services.ActionSoftDelete, services.TableCategories, id, "")
	categoryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func formFromInput(input CategoryInput) (services.CategoryForm, error) {
	form := services.CategoryForm{
		Name:   input.Name,
		Image:  input.Image,
		Styles: input.Styles,
		Metals: input.Metals,
	}

	if input.ImageData != "" {
		data, err := base64.StdEncoding.DecodeString(input.ImageData)
		if err != nil {
			return form, errors.New("image_data is not valid base64")
		}
		form.Asset = &services.UploadAsset{
			FileName:    input.ImageName,
			ContentType: input.ImageType,
			Size:        int64(len(data)),
			Data:        data,
		}
	}
	return form, nil
}

// respondSaveError maps reconciler failures onto HTTP statuses.
func respondSaveError(c *gin.Context, err error, fallback string) {
	switch {
	case services.IsValidationError(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.RespondWithError(c, http.StatusUnauthorized, "Remote session expired, please log in again")
	case errors.Is(err, services.ErrAssetTooLarge), errors.Is(err, services.ErrNotAnImage):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusBadGateway, fallback+": "+err.Error())
	}
}

// respondDispatchError maps plain dispatch failures onto HTTP statuses.
func respondDispatchError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, services.ErrUnauthorized) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Remote session expired, please log in again")
		return
	}
	utils.RespondWithError(c, http.StatusBadGateway, fallback)
}
