package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/gin-gonic/gin"
)

// int64Param parses a positive integer path parameter, writing a 400 when it is malformed.
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}
