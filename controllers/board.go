package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/services"
)

func Draw(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := e.Draw(boardToken(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func Undo(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := e.Undo(boardToken(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func Reset(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.Reset(boardToken(c)); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func CallNumber(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Number int `json:"number"`
		}
		_ = c.ShouldBindJSON(&req)
		snap, err := e.CallNumber(boardToken(c), req.Number)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func SetCallingStyle(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CallingStyle models.CallingStyle `json:"callingStyle"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := e.SetCallingStyle(boardToken(c), req.CallingStyle); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func SetGameType(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameType models.GameType `json:"gameType"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := e.SetGameType(boardToken(c), req.GameType); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func DeclareWinner(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.DeclareWinner(boardToken(c)); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func ClearWinner(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.ClearWinner(boardToken(c)); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func LedTest(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Enabled bool `json:"enabled"`
		}
		_ = c.ShouldBindJSON(&req)
		snap, err := e.SetLedTest(boardToken(c), req.Enabled)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// Brightness takes its value as a query parameter; an unparseable value
// leaves the current brightness unchanged.
func Brightness(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var value *int
		if v, err := strconv.Atoi(c.Query("value")); err == nil {
			value = &v
		}
		if err := e.SetBrightness(boardToken(c), value); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func SetTheme(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Theme int `json:"theme"`
		}
		_ = c.ShouldBindJSON(&req)
		if err := e.SetTheme(boardToken(c), req.Theme); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}

func SetStaticColor(e *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Hex   string `json:"hex"`
			Color string `json:"color"`
		}
		_ = c.ShouldBindJSON(&req)
		hex := req.Hex
		if hex == "" {
			hex = req.Color
		}
		if err := e.SetStaticColor(boardToken(c), hex); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	}
}
