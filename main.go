package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"yelpcamp/auth"
	"yelpcamp/cache"
	"yelpcamp/campgrounds"
	"yelpcamp/common"
	"yelpcamp/database"
	"yelpcamp/geocoding"
	"yelpcamp/reviews"
	"yelpcamp/site"
	"yelpcamp/storage"
	"yelpcamp/store"
)

const sessionName = "yelpcamp-session"

func main() {
	seed := flag.Bool("seed", false, "wipe and reseed the campgrounds table, then exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if *seed {
		if err := database.SeedCampgrounds(db, 50); err != nil {
			log.Fatal("Failed to seed campgrounds:", err)
		}
		return
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Oh no, something went wrong!",
		})
	}))

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions(sessionName, sessionStore))
	router.Use(common.MethodOverride(router))

	router.LoadHTMLGlob("*/views/*.html")
	router.Static("/public", "./public")
	router.Static("/uploads", "./uploads")

	// stale pages from a previous run are useless, drop them up front
	if err := cache.ClearOld(10 * time.Minute); err != nil {
		log.Println("cache cleanup:", err)
	}

	images, err := storage.NewDiskStore("uploads", "/uploads")
	if err != nil {
		log.Fatal("Failed to set up image storage:", err)
	}

	geocoder := geocoding.NewClient(os.Getenv("MAPTILER_API_KEY"))
	campStore := store.NewCampgrounds(db, images)

	authModule := auth.NewAuthModule(db)
	authModule.RegisterRoutes(router)

	campgroundModule := campgrounds.NewCampgroundModule(campStore, geocoder, images)
	campgroundModule.RegisterRoutes(router, sessionName)

	reviewModule := reviews.NewReviewModule(campStore)
	reviewModule.RegisterRoutes(router)

	siteModule := site.NewSiteModule(db)
	siteModule.RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"status":  http.StatusNotFound,
			"message": "Page Not Found",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
