package ui

import (
	"bytes"
	"log"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template into a buffer first so a rendering
// error never leaves a half-written page on the wire.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(200)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
