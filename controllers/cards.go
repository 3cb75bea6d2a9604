package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/services"
)

// JoinCard creates or replaces a card session. Cards authenticate with
// the current board seed, not a board token.
func JoinCard(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Pin     string `json:"pin"`
			Numbers []*int `json:"numbers"`
			CardID  string `json:"cardId"`
		}
		_ = c.ShouldBindJSON(&req)
		state, err := e.JoinCard(req.Pin, req.Numbers, req.CardID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func MarkCard(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CardID    string `json:"cardId"`
			CellIndex *int   `json:"cellIndex"`
			Marked    bool   `json:"marked"`
		}
		_ = c.ShouldBindJSON(&req)
		if req.CellIndex == nil {
			respondErr(c, models.ErrInvalidCell)
			return
		}
		state, err := e.MarkCell(req.CardID, *req.CellIndex, req.Marked)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func LeaveCard(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CardID string `json:"cardId"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := e.LeaveCard(req.CardID); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}
