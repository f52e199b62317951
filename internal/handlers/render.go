package handlers

import (
	"github.com/gin-gonic/gin"
)

// renderErrorPage renders the shared error template with a link back to
// the page the visitor came from
func renderErrorPage(c *gin.Context, status int, title, message, backURL string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   title,
		"Message": message,
		"BackURL": backURL,
	})
}
