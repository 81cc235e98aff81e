package reviews

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yelpcamp/auth"
	"yelpcamp/cache"
	"yelpcamp/flash"
	"yelpcamp/models"
	"yelpcamp/store"
	"yelpcamp/validation"
)

type ReviewModule struct {
	store *store.Campgrounds
}

func NewReviewModule(store *store.Campgrounds) *ReviewModule {
	return &ReviewModule{store: store}
}

func (m *ReviewModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/campgrounds/:id/review", auth.RequireLogin, m.create)
	router.DELETE("/campgrounds/:id/review/:reviewId", auth.RequireLogin, m.requireReviewAuthor, m.delete)
}

// requireReviewAuthor refuses the deletion unless the acting user wrote the
// review. Denials land back on the campground show page.
func (m *ReviewModule) requireReviewAuthor(c *gin.Context) {
	showPath := "/campgrounds/" + c.Param("id")

	reviewID, err := strconv.Atoi(c.Param("reviewId"))
	if err != nil {
		flash.Error(c, "Cannot find that review!")
		c.Redirect(http.StatusFound, showPath)
		c.Abort()
		return
	}

	review, err := m.store.FindReview(reviewID)
	if err != nil {
		flash.Error(c, "Cannot find that review!")
		c.Redirect(http.StatusFound, showPath)
		c.Abort()
		return
	}

	userID, _ := auth.CurrentUserID(c)
	if review.AuthorID != userID {
		flash.Error(c, "You do not have permission to do that!")
		c.Redirect(http.StatusFound, showPath)
		c.Abort()
		return
	}

	c.Set("review", review)
	c.Next()
}

func (m *ReviewModule) create(c *gin.Context) {
	campgroundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}

	payload := validation.ReviewPayload{
		Rating: c.PostForm("rating"),
		Body:   c.PostForm("body"),
	}
	form, errs := payload.Validate()
	if len(errs) > 0 {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"status":  http.StatusBadRequest,
			"message": validation.Join(errs),
		})
		return
	}

	userID, _ := auth.CurrentUserID(c)
	if _, err := m.store.AddReview(campgroundID, userID, form.Body, form.Rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			flash.Error(c, "Cannot find that campground!")
			c.Redirect(http.StatusFound, "/campgrounds")
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not create the review.",
		})
		return
	}

	cache.ClearPage(strconv.Itoa(campgroundID))
	flash.Success(c, "Created new review!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", campgroundID))
}

func (m *ReviewModule) delete(c *gin.Context) {
	review := c.MustGet("review").(*models.Review)
	showPath := "/campgrounds/" + c.Param("id")

	campgroundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}

	if err := m.store.DeleteReview(campgroundID, review.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// repeated delete of the same id lands here; nothing else is touched
			flash.Error(c, "Cannot find that review!")
			c.Redirect(http.StatusFound, showPath)
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not delete the review.",
		})
		return
	}

	cache.ClearPage(strconv.Itoa(campgroundID))
	flash.Success(c, "Successfully deleted review!")
	c.Redirect(http.StatusFound, showPath)
}
