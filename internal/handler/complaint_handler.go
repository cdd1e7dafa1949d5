package handler

import (
	"net/http"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/middleware"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/service"
	"github.com/gikomplain/backend/pkg/apperror"
	"github.com/gikomplain/backend/pkg/response"
	pkgvalidator "github.com/gikomplain/backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	complaintService service.ComplaintService
}

func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.Messages(err)})
		return
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) MyComplaints(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaints, err := h.complaintService.MyComplaints(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": complaints})
}

func (h *ComplaintHandler) DepartmentQueue(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	complaints, err := h.complaintService.DepartmentQueue(c.Request.Context(), identity.Role, identity.DepartmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": complaints})
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.Messages(err)})
		return
	}

	// The oneof binding already guarantees a known status.
	status, _ := model.ParseStatus(input.Status)

	if err := h.complaintService.UpdateStatus(c.Request.Context(), complaintID, status); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
