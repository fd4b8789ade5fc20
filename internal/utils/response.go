package utils

import "github.com/gin-gonic/gin"

// MessageResponse is the {message} body used for plain outcomes.
func MessageResponse(message string) gin.H {
	return gin.H{"message": message}
}

// ErrorResponse pairs a readable message with the raw error for debugging.
func ErrorResponse(message, err string) gin.H {
	return gin.H{
		"message": message,
		"error":   err,
	}
}
