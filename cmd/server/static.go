package main

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles serves the site assets. The map layer depends on
// /static/img for marker placeholder images, so this route stays even
// when the marketing pages are hosted elsewhere.
func setupStaticFiles(router *gin.Engine) {
	log.Println("📦 Serving static assets from ./web")

	router.Static("/static", "./web/static")
	router.StaticFile("/", "./web/index.html")
	router.StaticFile("/favicon.ico", "./web/static/favicon.ico")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"error": "API endpoint not found"})
			return
		}
		c.File("./web/index.html")
	})
}
