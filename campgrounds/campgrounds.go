package campgrounds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"

	"yelpcamp/auth"
	"yelpcamp/cache"
	"yelpcamp/flash"
	"yelpcamp/geocoding"
	"yelpcamp/models"
	"yelpcamp/storage"
	"yelpcamp/store"
	"yelpcamp/validation"
)

const geocodeFailedMessage = "Could not geocode that location. Please try again and enter a valid location."

// Geocoder resolves a free-text location to map features.
type Geocoder interface {
	Forward(ctx context.Context, location string, limit int) ([]geocoding.Feature, error)
}

type CampgroundModule struct {
	store    *store.Campgrounds
	geocoder Geocoder
	images   storage.Store
}

// markdown renderer for campground descriptions; raw HTML never reaches it
// because the validation gate rejects markup outright
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

func NewCampgroundModule(store *store.Campgrounds, geocoder Geocoder, images storage.Store) *CampgroundModule {
	return &CampgroundModule{store: store, geocoder: geocoder, images: images}
}

func (m *CampgroundModule) RegisterRoutes(router *gin.Engine, sessionCookie string) {
	router.GET("/campgrounds", m.index)
	router.GET("/campgrounds/new", auth.RequireLogin, m.newForm)
	router.POST("/campgrounds", auth.RequireLogin, m.create)
	router.GET("/campgrounds/:id", cache.ShowPageMiddleware(sessionCookie, 10*time.Minute), m.show)
	router.GET("/campgrounds/:id/edit", auth.RequireLogin, m.requireAuthor, m.editForm)
	router.PUT("/campgrounds/:id", auth.RequireLogin, m.requireAuthor, m.update)
	router.DELETE("/campgrounds/:id", auth.RequireLogin, m.requireAuthor, m.delete)
}

// requireAuthor loads the target campground and refuses the mutation unless
// the acting user created it.
func (m *CampgroundModule) requireAuthor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		c.Abort()
		return
	}

	camp, err := m.store.FindByID(id)
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		c.Abort()
		return
	}

	userID, _ := auth.CurrentUserID(c)
	if camp.AuthorID != userID {
		flash.Error(c, "You do not have permission to do that!")
		c.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", camp.ID))
		c.Abort()
		return
	}

	c.Set("campground", camp)
	c.Next()
}

func (m *CampgroundModule) index(c *gin.Context) {
	camps, err := m.store.All()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not load campgrounds.",
		})
		return
	}

	c.HTML(http.StatusOK, "campgrounds_index.html", flash.Data(c, gin.H{
		"campgrounds": camps,
	}))
}

func (m *CampgroundModule) newForm(c *gin.Context) {
	c.HTML(http.StatusOK, "campgrounds_new.html", flash.Data(c, gin.H{}))
}

func (m *CampgroundModule) create(c *gin.Context) {
	form, ok := m.validateCampground(c)
	if !ok {
		return
	}

	geom, placeName, ok := m.geocode(c, form.Location, "/campgrounds/new")
	if !ok {
		return
	}

	images, err := m.saveUploads(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not store the uploaded images.",
		})
		return
	}

	userID, _ := auth.CurrentUserID(c)
	camp, err := m.store.Create(store.CampgroundFields{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
	}, geom, placeName, images, userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not create the campground.",
		})
		return
	}

	flash.Success(c, "Successfully made a new campground!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", camp.ID))
}

func (m *CampgroundModule) show(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}

	camp, err := m.store.FindForDisplay(id)
	if err != nil {
		flash.Error(c, "Cannot find that campground!")
		c.Redirect(http.StatusFound, "/campgrounds")
		return
	}

	userID, _ := auth.CurrentUserID(c)

	c.HTML(http.StatusOK, "campgrounds_show.html", flash.Data(c, gin.H{
		"campground":      camp,
		"descriptionHTML": template.HTML(renderMarkdown(camp.Description)),
		"currentUserID":   userID,
	}))
}

func (m *CampgroundModule) editForm(c *gin.Context) {
	camp := c.MustGet("campground").(*models.Campground)

	c.HTML(http.StatusOK, "campgrounds_edit.html", flash.Data(c, gin.H{
		"campground": camp,
	}))
}

func (m *CampgroundModule) update(c *gin.Context) {
	camp := c.MustGet("campground").(*models.Campground)

	form, ok := m.validateCampground(c)
	if !ok {
		return
	}

	geom, placeName, ok := m.geocode(c, form.Location, fmt.Sprintf("/campgrounds/%d/edit", camp.ID))
	if !ok {
		return
	}

	newImages, err := m.saveUploads(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not store the uploaded images.",
		})
		return
	}

	updated, err := m.store.Update(camp.ID, store.CampgroundFields{
		Title:       form.Title,
		Price:       form.Price,
		Description: form.Description,
	}, geom, placeName, newImages, form.DeleteImages)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not update the campground.",
		})
		return
	}

	cache.ClearPage(strconv.Itoa(updated.ID))
	flash.Success(c, "Successfully updated campground!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/campgrounds/%d", updated.ID))
}

func (m *CampgroundModule) delete(c *gin.Context) {
	camp := c.MustGet("campground").(*models.Campground)

	if err := m.store.Delete(camp.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			flash.Error(c, "Cannot find that campground!")
			c.Redirect(http.StatusFound, "/campgrounds")
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Could not delete the campground.",
		})
		return
	}

	cache.ClearPage(strconv.Itoa(camp.ID))
	flash.Success(c, "Successfully deleted campground!")
	c.Redirect(http.StatusFound, "/campgrounds")
}

// validateCampground runs the validation gate over the raw form. On
// rejection it renders the 400 with every field error joined by a comma.
func (m *CampgroundModule) validateCampground(c *gin.Context) (validation.CampgroundForm, bool) {
	payload := validation.CampgroundPayload{
		Title:        c.PostForm("title"),
		Price:        c.PostForm("price"),
		Location:     c.PostForm("location"),
		Description:  c.PostForm("description"),
		DeleteImages: c.PostFormArray("deleteImages"),
	}

	form, errs := payload.Validate()
	if len(errs) > 0 {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"status":  http.StatusBadRequest,
			"message": validation.Join(errs),
		})
		return validation.CampgroundForm{}, false
	}
	return form, true
}

// geocode runs the geocoding guard. Unresolved locations redirect back to
// the originating form without persisting anything.
func (m *CampgroundModule) geocode(c *gin.Context, location, retryPath string) (store.Geometry, string, bool) {
	features, err := m.geocoder.Forward(c.Request.Context(), location, 1)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "The geocoding service is unavailable. Please try again.",
		})
		return store.Geometry{}, "", false
	}
	if len(features) == 0 {
		flash.Error(c, geocodeFailedMessage)
		c.Redirect(http.StatusFound, retryPath)
		return store.Geometry{}, "", false
	}

	feature := features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		// a feature without both coordinates cannot become a valid
		// geometry; treat it the same as no match at all
		flash.Error(c, geocodeFailedMessage)
		c.Redirect(http.StatusFound, retryPath)
		return store.Geometry{}, "", false
	}

	geom := store.Geometry{
		Type: feature.Geometry.Type,
		Lng:  feature.Geometry.Coordinates[0],
		Lat:  feature.Geometry.Coordinates[1],
	}
	return geom, feature.PlaceName, true
}

// saveUploads stores every file submitted under the "images" field and
// returns their storage records. Requests without uploads are fine.
func (m *CampgroundModule) saveUploads(c *gin.Context) ([]storage.Image, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, err
	}

	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["images"]
	}

	images := make([]storage.Image, 0, len(files))
	for _, file := range files {
		img, err := m.images.Save(file)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
