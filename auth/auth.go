package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yelpcamp/flash"
	"yelpcamp/models"
)

const (
	sessionUserKey     = "user_id"
	sessionReturnToKey = "return_to"
)

type AuthModule struct {
	db *gorm.DB
}

func NewAuthModule(db *gorm.DB) *AuthModule {
	return &AuthModule{db: db}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/register", a.registerPage)
	router.POST("/register", a.registerPost)
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/logout", RequireLogin, a.logout)
}

// RequireLogin redirects unauthenticated requests to the login page,
// remembering the URL they wanted so login can send them back.
func RequireLogin(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get(sessionUserKey)

	if userID == nil {
		session.Set(sessionReturnToKey, c.Request.URL.RequestURI())
		session.AddFlash("You must be signed in first!", flash.KeyError)
		session.Save()
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(sessionUserKey, userID)
	c.Next()
}

// CurrentUserID returns the acting user's id from the session, if any.
func CurrentUserID(c *gin.Context) (int, bool) {
	if id, exists := c.Get(sessionUserKey); exists {
		if userID, ok := id.(int); ok {
			return userID, true
		}
	}
	id := sessions.Default(c).Get(sessionUserKey)
	if userID, ok := id.(int); ok {
		return userID, true
	}
	return 0, false
}

func (a *AuthModule) registerPage(c *gin.Context) {
	if _, loggedIn := CurrentUserID(c); loggedIn {
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}
	c.HTML(http.StatusOK, "register.html", flash.Data(c, gin.H{}))
}

func (a *AuthModule) registerPost(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		flash.Error(c, "Username, email and password are all required.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		flash.Error(c, "A user with that email is already registered.")
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		flash.Error(c, "That username is already taken.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		flash.Error(c, "Could not create your account.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := a.db.Create(&user).Error; err != nil {
		flash.Error(c, "Could not create your account.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	// auto-login after registration
	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	session.Save()

	flash.Success(c, "Welcome to YelpCamp!")
	c.Redirect(http.StatusFound, "/campgrounds")
}

func (a *AuthModule) loginPage(c *gin.Context) {
	if _, loggedIn := CurrentUserID(c); loggedIn {
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}
	c.HTML(http.StatusOK, "login.html", flash.Data(c, gin.H{}))
}

func (a *AuthModule) loginPost(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		flash.Error(c, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		flash.Error(c, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)

	redirectURL := "/campgrounds"
	if returnTo, ok := session.Get(sessionReturnToKey).(string); ok && returnTo != "" {
		redirectURL = returnTo
		session.Delete(sessionReturnToKey)
	}
	session.Save()

	flash.Success(c, "Welcome back!")
	c.Redirect(http.StatusFound, redirectURL)
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	session.Save()

	flash.Success(c, "Goodbye!")
	c.Redirect(http.StatusFound, "/campgrounds")
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
