package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/models"
)

// boardToken extracts the bearer token privileged operations present.
func boardToken(c *gin.Context) string {
	return c.GetHeader("X-Board-Token")
}

func respondErr(c *gin.Context, err error) {
	c.JSON(models.StatusOf(err), gin.H{"error": err.Error()})
}
