package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

// GetUsers lists registered users and vendors with their parsed address
// books. This surface is read-only.
func GetUsers(c *gin.Context) {
	if c.Query("refresh") == "1" {
		userStore.Refresh(c.Request.Context())
	}

	view := services.View[models.UserDetail]{Search: c.Query("search")}

	switch c.Query("type") {
	case models.UserTypeVendor:
		view.Filter = func(u models.UserDetail) bool { return u.UserType == models.UserTypeVendor }
	case models.UserTypeCustomer:
		view.Filter = func(u models.UserDetail) bool { return u.UserType == models.UserTypeCustomer }
	}

	switch c.DefaultQuery("sort", "name_asc") {
	case "name_desc":
		view.Less = func(a, b models.UserDetail) bool { return services.CompareNames(a.FullName, b.FullName) > 0 }
	case "created_asc":
		view.Less = func(a, b models.UserDetail) bool { return a.CreatedAt < b.CreatedAt }
	case "created_desc":
		view.Less = func(a, b models.UserDetail) bool { return a.CreatedAt > b.CreatedAt }
	default:
		view.Less = func(a, b models.UserDetail) bool { return services.CompareNames(a.FullName, b.FullName) < 0 }
	}

	items := userStore.Apply(view)

	resp := gin.H{"data": items, "count": len(items)}
	if err := userStore.LastError(); err != nil {
		resp["message"] = "User list could not be refreshed"
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser retrieves one user with the address book and resolved default
// address.
func GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var users []models.User
	if err := client.Get(c.Request.Context(), services.TableUsers, services.Alive("id", id), &users); err != nil {
		respondDispatchError(c, err, "Failed to retrieve user")
		return
	}
	if len(users) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	detail := models.UserDetail{User: users[0], AddressList: users[0].Addresses()}
	resp := gin.H{"data": detail}
	if def, ok := models.DefaultAddress(detail.AddressList); ok {
		resp["default_address"] = def
	}
	c.JSON(http.StatusOK, resp)
}
