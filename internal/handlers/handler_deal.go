package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dealHandler handles HTTP requests related to deals.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

// newDealHandler creates a new dealHandler.
func newDealHandler(ds portssvc.DealSvcFacade) *dealHandler {
	return &dealHandler{
		dealService: ds,
	}
}

// registerDealRoutes registers routes related to deals.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newDealHandler(dealService)

	deals := rg.Group("/deals")
	{
		deals.GET("", h.listDeals)
		deals.POST("", h.createDeal)
		deals.PATCH("/:id", h.updateDeal)
		deals.DELETE("/:id", h.deleteDeal)
		deals.GET("/:id/activities", h.listActivities)
	}
}

// listDeals godoc
// @Summary List deals
// @Description Returns every deal in the pipeline.
// @Tags deals
// @Produce json
// @Success 200 {array} dto.DealResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /deals [get]
func (h *dealHandler) listDeals(c *gin.Context) {
	deals, err := h.dealService.ListDeals(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Deal not found", "list deals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDealResponse(deals))
}

// createDeal godoc
// @Summary Create a deal
// @Description New deals always start in the Sourced stage. The owner defaults to the caller.
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body dto.CreateDealRequest true "Deal details"
// @Success 201 {object} dto.DealResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) createDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deal, err := h.dealService.CreateDeal(c.Request.Context(), req, user)
	if err != nil {
		respondWithError(c, err, "Owner not found", "create deal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Deal created", slog.Int64("deal_id", deal.DealID))
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// updateDeal godoc
// @Summary Update a deal
// @Description Partial update. Only the provided fields change; a stage change is logged as an activity.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param deal body dto.UpdateDealRequest true "Fields to change"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid stage or field"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [patch]
func (h *dealHandler) updateDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	dealID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deal, err := h.dealService.UpdateDeal(c.Request.Context(), dealID, req, user)
	if err != nil {
		respondWithError(c, err, "Deal not found", "update deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// deleteDeal godoc
// @Summary Delete a deal
// @Description Admin only. Removes the deal with its memo, memo versions and activities.
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Only admins can delete deals"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *dealHandler) deleteDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	dealID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	if err := h.dealService.DeleteDeal(c.Request.Context(), dealID, user); err != nil {
		respondWithError(c, err, "Deal not found", "delete deal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// listActivities godoc
// @Summary List deal activities
// @Description Returns the deal's activity log, newest first.
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {array} dto.ActivityResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/activities [get]
func (h *dealHandler) listActivities(c *gin.Context) {
	dealID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	activities, err := h.dealService.ListActivities(c.Request.Context(), dealID)
	if err != nil {
		respondWithError(c, err, "Deal not found", "list activities")
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivityResponse(activities))
}
