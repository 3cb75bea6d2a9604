package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/services"
)

// UnlockBoard exchanges the board PIN for a time-limited token.
func UnlockBoard(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Pin string `json:"pin"`
		}
		_ = c.ShouldBindJSON(&req)
		session, err := e.Unlock(req.Pin)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func LockBoard(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		e.Lock()
		c.JSON(http.StatusOK, gin.H{})
	}
}

func RefreshBoardAuth(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := e.Refresh(boardToken(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func ChangeBoardPin(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentPin string `json:"currentPin"`
			NextPin    string `json:"nextPin"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := e.ChangePin(boardToken(c), req.CurrentPin, req.NextPin); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}
