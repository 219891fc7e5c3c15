package controllers

import (
	"github.com/gin-gonic/gin"
)

// Ping returns a basic liveness message.
func Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
