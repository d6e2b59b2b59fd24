// internal/handlers/assignment/assignment_handler.go
package assignment

import (
	"io"
	"net/http"
	"strconv"

	domain "backdesk-service/internal/domain/assignment"
	"backdesk-service/internal/middleware"
	"backdesk-service/internal/pkg/response"
	service "backdesk-service/internal/service/assignment"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService *service.Service
}

func NewAssignmentHandler(assignmentService *service.Service) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// ========== Transition Endpoints ==========

// Claim lets an assistant take an unassigned customer
func (h *AssignmentHandler) Claim(c *gin.Context) {
	h.transition(c, domain.ActionClaim, "customer claimed")
}

// Assign directly assigns a customer to an assistant (admin)
func (h *AssignmentHandler) Assign(c *gin.Context) {
	h.transition(c, domain.ActionAssign, "customer assigned")
}

// Reassign moves a customer to another assistant
func (h *AssignmentHandler) Reassign(c *gin.Context) {
	h.transition(c, domain.ActionReassign, "customer reassigned")
}

// Transfer moves a customer to a recipient that accepts transfers
func (h *AssignmentHandler) Transfer(c *gin.Context) {
	h.transition(c, domain.ActionTransfer, "customer transfer requested")
}

// Unassign returns a customer to the unassigned pool
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	h.transition(c, domain.ActionUnassign, "customer unassigned")
}

func (h *AssignmentHandler) transition(c *gin.Context, action domain.Action, successMessage string) {
	customerID, err := h.customerID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Claim and unassign usually arrive with an empty body.
	var payload domain.TransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil && err != io.EOF {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	req := &domain.TransitionRequest{
		CustomerID:  customerID,
		Actor:       actor,
		Action:      action,
		RecipientID: payload.RecipientID,
		Reason:      payload.Reason,
		Metadata: domain.RequestMetadata{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		},
	}

	result, err := h.assignmentService.Transition(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "transition rejected", err)
		return
	}

	response.Success(c, http.StatusOK, successMessage, result)
}

// ========== Read Endpoints ==========

// GetOwnership returns the current assignment of a customer
func (h *AssignmentHandler) GetOwnership(c *gin.Context) {
	customerID, err := h.customerID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	ownership, err := h.assignmentService.GetOwnership(c.Request.Context(), actor, customerID)
	if err != nil {
		response.FromError(c, "failed to read assignment", err)
		return
	}

	response.Success(c, http.StatusOK, "assignment retrieved", gin.H{
		"customer_id":       ownership.CustomerID,
		"assignment_status": ownership.Status(),
		"assignment":        ownership.Snapshot(),
	})
}

// CustomerHistory returns a customer's assignment audit trail
func (h *AssignmentHandler) CustomerHistory(c *gin.Context) {
	customerID, err := h.customerID(c)
	if err != nil {
		response.ValidationError(c, "invalid customer ID", err)
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	history, err := h.assignmentService.CustomerHistory(c.Request.Context(), actor, customerID, page, pageSize)
	if err != nil {
		response.FromError(c, "failed to read history", err)
		return
	}

	response.Success(c, http.StatusOK, "history retrieved", history)
}

// History is the cross-customer audit query for supervisory roles
func (h *AssignmentHandler) History(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var filters domain.HistoryFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	history, err := h.assignmentService.History(c.Request.Context(), actor, &filters)
	if err != nil {
		response.FromError(c, "failed to read history", err)
		return
	}

	response.Success(c, http.StatusOK, "history retrieved", history)
}

// Workload reports an assistant's current load. Assistants may only read
// their own; supervisory roles may read anyone's.
func (h *AssignmentHandler) Workload(c *gin.Context) {
	assistantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid assistant ID", err)
		return
	}

	actorID := middleware.MustGetIdentityID(c)
	if assistantID != actorID && !middleware.IsSupervisory(c) {
		response.Forbidden(c, "may only read own workload")
		return
	}

	workload, err := h.assignmentService.Workload(c.Request.Context(), assistantID)
	if err != nil {
		response.FromError(c, "failed to read workload", err)
		return
	}

	response.Success(c, http.StatusOK, "workload retrieved", workload)
}

// Assignable lists active assistants with remaining capacity
func (h *AssignmentHandler) Assignable(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	list, err := h.assignmentService.AssignableAssistants(c.Request.Context(), actor)
	if err != nil {
		response.FromError(c, "failed to list assistants", err)
		return
	}

	response.Success(c, http.StatusOK, "assistants retrieved", list)
}

func (h *AssignmentHandler) customerID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
