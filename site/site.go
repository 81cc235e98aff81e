package site

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yelpcamp/flash"
	"yelpcamp/models"
)

type SiteModule struct {
	db *gorm.DB
}

func NewSiteModule(db *gorm.DB) *SiteModule {
	return &SiteModule{db: db}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.index)
	router.GET("/sitemap.xml", s.sitemap)
}

func (s *SiteModule) index(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", flash.Data(c, gin.H{
		"title": "YelpCamp",
	}))
}

func (s *SiteModule) sitemap(c *gin.Context) {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost:8080"
	}
	domain = strings.TrimSuffix(domain, "/")

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	sitemap.WriteString("  <url>\n")
	sitemap.WriteString("    <loc>" + domain + "/</loc>\n")
	sitemap.WriteString("    <changefreq>weekly</changefreq>\n")
	sitemap.WriteString("    <priority>1.0</priority>\n")
	sitemap.WriteString("  </url>\n")

	sitemap.WriteString("  <url>\n")
	sitemap.WriteString("    <loc>" + domain + "/campgrounds</loc>\n")
	sitemap.WriteString("    <changefreq>daily</changefreq>\n")
	sitemap.WriteString("    <priority>0.8</priority>\n")
	sitemap.WriteString("  </url>\n")

	var campgrounds []models.Campground
	if err := s.db.Find(&campgrounds).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not build the sitemap.",
		})
		return
	}

	for _, camp := range campgrounds {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString("    <loc>" + domain + "/campgrounds/" + strconv.Itoa(camp.ID) + "</loc>\n")
		sitemap.WriteString("    <lastmod>" + camp.UpdatedAt.Format(time.RFC3339) + "</lastmod>\n")
		sitemap.WriteString("    <changefreq>weekly</changefreq>\n")
		sitemap.WriteString("    <priority>0.6</priority>\n")
		sitemap.WriteString("  </url>\n")
	}

	sitemap.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, sitemap.String())
}
