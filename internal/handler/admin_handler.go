package handler

import (
	"log"
	"net/http"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/internal/service"
	"github.com/gikomplain/backend/pkg/apperror"
	"github.com/gikomplain/backend/pkg/response"
	pkgvalidator "github.com/gikomplain/backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	dashboardService service.DashboardService
	complaintService service.ComplaintService
}

func NewAdminHandler(dashboardService service.DashboardService, complaintService service.ComplaintService) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
		complaintService: complaintService,
	}
}

// Dashboard serves the admin oversight view. The role check already ran in
// middleware, so no privileged query happens for a non-admin caller.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var filter repository.ComplaintFilter

	if statusParam := c.Query("status"); statusParam != "" {
		status, ok := model.ParseStatus(statusParam)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
			return
		}
		filter.Status = &status
	}

	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// AssignComplaint is the RPC-style assignment action invoked from the
// admin UI. Failures surface as a generic result; detail stays in the log.
func (h *AdminHandler) AssignComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid complaint id"})
		return
	}

	var input dto.AssignComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": pkgvalidator.Messages(err)})
		return
	}

	target, err := service.ParseAssignmentTarget(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.complaintService.Assign(c.Request.Context(), complaintID, target); err != nil {
		log.Printf("failed to assign complaint %s: %v", complaintID, err)
		c.JSON(apperror.MapErrorToStatus(err), gin.H{"success": false, "error": "failed to assign complaint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
