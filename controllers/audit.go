package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/utils"
)

// GetAuditTrail lists recent admin mutations recorded in the local audit
// database.
func GetAuditTrail(c *gin.Context) {
	if !auditor.Enabled() {
		c.JSON(http.StatusOK, gin.H{"data": []struct{}{}, "message": "Auditing is not configured"})
		return
	}

	days := 7
	if v, err := strconv.Atoi(c.DefaultQuery("days", "7")); err == nil && v > 0 {
		days = v
	}
	limit := 100
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && v > 0 {
		limit = v
	}

	since := utils.BeginningOfDay(time.Now().AddDate(0, 0, -days))
	entries, err := auditor.Recent(since, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read audit trail")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
}
