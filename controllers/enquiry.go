package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/models"
	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

type RespondEnquiryInput struct {
	Response string `json:"response" binding:"required"`
}

type UpdateEnquiryStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// GetEnquiries lists customer enquiries, filtered and sorted per query
// parameters.
func GetEnquiries(c *gin.Context) {
	if c.Query("refresh") == "1" {
		enquiryStore.Refresh(c.Request.Context())
	}

	view := services.View[models.Enquiry]{Search: c.Query("search")}

	if status := c.Query("status"); status != "" {
		view.Filter = func(e models.Enquiry) bool { return e.Status == status }
	}

	switch c.DefaultQuery("sort", "created_desc") {
	case "created_asc":
		view.Less = func(a, b models.Enquiry) bool { return a.CreatedAt < b.CreatedAt }
	case "title_asc":
		view.Less = func(a, b models.Enquiry) bool {
			return services.CompareNames(a.ProductTitle, b.ProductTitle) < 0
		}
	case "title_desc":
		view.Less = func(a, b models.Enquiry) bool {
			return services.CompareNames(a.ProductTitle, b.ProductTitle) > 0
		}
	default:
		view.Less = func(a, b models.Enquiry) bool { return a.CreatedAt > b.CreatedAt }
	}

	items := enquiryStore.Apply(view)

	resp := gin.H{"data": items, "count": len(items)}
	if err := enquiryStore.LastError(); err != nil {
		resp["message"] = "Enquiry list could not be refreshed"
	}
	c.JSON(http.StatusOK, resp)
}

// GetEnquiry fetches a single enquiry.
func GetEnquiry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid enquiry ID format")
		return
	}

	var enquiries []models.Enquiry
	if err := client.Get(c.Request.Context(), services.TableEnquiries, services.Alive("id", id), &enquiries); err != nil {
		respondDispatchError(c, err, "Failed to retrieve enquiry")
		return
	}
	if len(enquiries) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Enquiry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enquiries[0]})
}

// RespondEnquiry records a staff response, marks the enquiry responded and
// notifies the customer when notifications are configured.
func RespondEnquiry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid enquiry ID format")
		return
	}

	var input RespondEnquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var enquiries []models.Enquiry
	if err := client.Get(c.Request.Context(), services.TableEnquiries, services.Alive("id", id), &enquiries); err != nil {
		respondDispatchError(c, err, "Failed to retrieve enquiry")
		return
	}
	if len(enquiries) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Enquiry not found")
		return
	}
	enquiry := enquiries[0]

	data := map[string]interface{}{
		"status":       models.EnquiryStatusResponded,
		"response":     input.Response,
		"responded_at": time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := client.Update(c.Request.Context(), services.TableEnquiries, services.Alive("id", id), data); err != nil {
		respondDispatchError(c, err, "Failed to respond to enquiry")
		return
	}

	// Best-effort; the save already succeeded.
	go notifier.NotifyResponded(enquiry, input.Response)

	auditor.Record(actorID(c), services.ActionUpdate, services.TableEnquiries, id, "responded")
	enquiryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Response recorded"})
}

// UpdateEnquiryStatus moves an enquiry to another status. Transitions are
// staff-driven; only the value itself is checked.
func UpdateEnquiryStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid enquiry ID format")
		return
	}

	var input UpdateEnquiryStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsValidEnquiryStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown enquiry status")
		return
	}

	data := map[string]interface{}{"status": input.Status}
	if err := client.Update(c.Request.Context(), services.TableEnquiries, services.Alive("id", id), data); err != nil {
		respondDispatchError(c, err, "Failed to update enquiry")
		return
	}

	auditor.Record(actorID(c), services.ActionUpdate, services.TableEnquiries, id, "status="+input.Status)
	enquiryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Enquiry updated"})
}

// DeleteEnquiry archives an enquiry.
func DeleteEnquiry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid enquiry ID format")
		return
	}

	if err := client.SoftDelete(c.Request.Context(), services.TableEnquiries, services.Alive("id", id)); err != nil {
		respondDispatchError(c, err, "Failed to delete enquiry")
		return
	}

	auditor.Record(actorID(c), services.ActionSoftDelete, services.TableEnquiries, id, "")
	enquiryStore.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Enquiry deleted successfully"})
}
