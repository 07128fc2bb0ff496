package handlers

import (
	"net/http"

	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/gin-gonic/gin"
)

type memoHandler struct {
	memoService portssvc.MemoSvcFacade
}

func newMemoHandler(ms portssvc.MemoSvcFacade) *memoHandler {
	return &memoHandler{memoService: ms}
}

// registerMemoRoutes registers routes related to investment memos.
func registerMemoRoutes(rg *gin.RouterGroup, memoService portssvc.MemoSvcFacade) {
	h := newMemoHandler(memoService)

	memos := rg.Group("/memos/:dealId")
	{
		memos.GET("", h.getMemo)
		memos.POST("", h.saveMemo)
		memos.GET("/history", h.listHistory)
	}
}

// getMemo godoc
// @Summary Current memo of a deal
// @Description Content is the JSON-serialized section mapping of the latest version.
// @Tags memos
// @Produce json
// @Param dealId path int true "Deal ID"
// @Success 200 {object} dto.MemoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No memo saved yet"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /memos/{dealId} [get]
func (h *memoHandler) getMemo(c *gin.Context) {
	dealID, ok := int64Param(c, "dealId")
	if !ok {
		return
	}
	memo, err := h.memoService.GetCurrentMemo(c.Request.Context(), dealID)
	if err != nil {
		respondWithError(c, err, "Memo not found", "load memo")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemoResponse(memo))
}

// saveMemo godoc
// @Summary Save a new memo version
// @Description The body is the full section mapping. Every save creates a new immutable version.
// @Tags memos
// @Accept json
// @Produce json
// @Param dealId path int true "Deal ID"
// @Param memo body map[string]string true "Section name to text"
// @Success 200 {object} dto.SaveMemoResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown section"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Deal not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /memos/{dealId} [post]
func (h *memoHandler) saveMemo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	dealID, ok := int64Param(c, "dealId")
	if !ok {
		return
	}

	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	sections, err := domain.MemoSectionsFromMap(body)
	if err != nil {
		respondWithError(c, err, "Deal not found", "save memo")
		return
	}

	version, err := h.memoService.SaveMemoVersion(c.Request.Context(), dealID, sections, user)
	if err != nil {
		respondWithError(c, err, "Deal not found", "save memo")
		return
	}
	c.JSON(http.StatusOK, dto.SaveMemoResponse{Status: "saved", VersionID: version.MemoVersionID})
}

// listHistory godoc
// @Summary Memo version history
// @Description Versions newest first; empty when no memo has been saved.
// @Tags memos
// @Produce json
// @Param dealId path int true "Deal ID"
// @Success 200 {array} dto.MemoVersionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /memos/{dealId}/history [get]
func (h *memoHandler) listHistory(c *gin.Context) {
	dealID, ok := int64Param(c, "dealId")
	if !ok {
		return
	}
	versions, err := h.memoService.ListMemoHistory(c.Request.Context(), dealID)
	if err != nil {
		respondWithError(c, err, "Memo not found", "list memo history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMemoVersionResponse(versions))
}
