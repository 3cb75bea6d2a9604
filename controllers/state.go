package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/services"
)

// GetState returns the full board snapshot. Unauthenticated by design:
// every connected display and card polls this.
func GetState(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Snapshot())
	}
}

func GetCardState(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := e.CardState(c.Query("cardId"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
