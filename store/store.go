// Package store owns persistence and relationship maintenance for
// campgrounds, reviews, and their images. Reviews reference their campground
// through a foreign key maintained only here, so a correctly completed
// cascade delete can never leave a dangling review.
package store

import (
	"log"

	"yelpcamp/models"
	"yelpcamp/storage"

	"gorm.io/gorm"
)

type Campgrounds struct {
	db     *gorm.DB
	images storage.Store
}

func NewCampgrounds(db *gorm.DB, images storage.Store) *Campgrounds {
	return &Campgrounds{db: db, images: images}
}

// CampgroundFields are the scalar fields a create or update may touch.
// Author is deliberately absent: it is set once at creation and no operation
// reassigns it.
type CampgroundFields struct {
	Title       string
	Price       float64
	Description string
}

// Geometry is a resolved GeoJSON point.
type Geometry struct {
	Type string
	Lng  float64
	Lat  float64
}

func (s *Campgrounds) Create(fields CampgroundFields, geom Geometry, placeName string, images []storage.Image, authorID int) (*models.Campground, error) {
	camp := models.Campground{
		Title:        fields.Title,
		Price:        fields.Price,
		Description:  fields.Description,
		Location:     placeName,
		GeometryType: geom.Type,
		Lng:          geom.Lng,
		Lat:          geom.Lat,
		AuthorID:     authorID,
	}
	for _, img := range images {
		camp.Images = append(camp.Images, models.Image{URL: img.URL, Filename: img.Filename})
	}

	if err := s.db.Create(&camp).Error; err != nil {
		return nil, err
	}
	return &camp, nil
}

// Update merges the scalar fields, overwrites geometry and location, and
// appends newImages to the existing image set, all in one save. Image
// deletions then run as a second, independent persistence step: each
// requested filename is destroyed at the provider and its row removed. A
// failure between the two steps leaves stale image rows behind; that window
// is accepted, not hidden.
func (s *Campgrounds) Update(id int, fields CampgroundFields, geom Geometry, placeName string, newImages []storage.Image, deleteFilenames []string) (*models.Campground, error) {
	var camp models.Campground
	if err := s.db.Preload("Images").First(&camp, id).Error; err != nil {
		return nil, err
	}

	camp.Title = fields.Title
	camp.Price = fields.Price
	camp.Description = fields.Description
	camp.Location = placeName
	camp.GeometryType = geom.Type
	camp.Lng = geom.Lng
	camp.Lat = geom.Lat

	for _, img := range newImages {
		camp.Images = append(camp.Images, models.Image{CampgroundID: camp.ID, URL: img.URL, Filename: img.Filename})
	}

	if err := s.db.Save(&camp).Error; err != nil {
		return nil, err
	}

	for _, filename := range deleteFilenames {
		if err := s.images.Destroy(filename); err != nil {
			log.Printf("failed to destroy stored image %s: %v", filename, err)
		}
		if err := s.db.Where("campground_id = ? AND filename = ?", camp.ID, filename).
			Delete(&models.Image{}).Error; err != nil {
			return nil, err
		}
	}

	return &camp, nil
}

// Delete removes the campground together with every review and image row
// that belongs to it, in a single transaction. Stored image objects are left
// at the provider.
func (s *Campgrounds) Delete(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Campground{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("campground_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("campground_id = ?", id).Delete(&models.Image{}).Error
	})
}

// AddReview creates a review bound to the campground. The campground must
// exist; reviews are never created standalone.
func (s *Campgrounds) AddReview(campgroundID, authorID int, body string, rating int) (*models.Review, error) {
	var camp models.Campground
	if err := s.db.First(&camp, campgroundID).Error; err != nil {
		return nil, err
	}

	review := models.Review{
		CampgroundID: camp.ID,
		AuthorID:     authorID,
		Body:         body,
		Rating:       rating,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a single review scoped to its campground. Deleting an
// id that no longer exists returns gorm.ErrRecordNotFound so a repeated
// delete stays a harmless error path.
func (s *Campgrounds) DeleteReview(campgroundID, reviewID int) error {
	result := s.db.Where("id = ? AND campground_id = ?", reviewID, campgroundID).
		Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindForDisplay loads a campground with its author, images, and reviews,
// each review carrying its resolved author.
func (s *Campgrounds) FindForDisplay(id int) (*models.Campground, error) {
	var camp models.Campground
	err := s.db.
		Preload("Author").
		Preload("Images").
		Preload("Reviews").
		Preload("Reviews.Author").
		First(&camp, id).Error
	if err != nil {
		return nil, err
	}
	return &camp, nil
}

// FindByID loads the bare campground row, enough for authorization checks
// and edit forms.
func (s *Campgrounds) FindByID(id int) (*models.Campground, error) {
	var camp models.Campground
	if err := s.db.Preload("Images").First(&camp, id).Error; err != nil {
		return nil, err
	}
	return &camp, nil
}

// FindReview loads a single review row.
func (s *Campgrounds) FindReview(reviewID int) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// All returns every campground with its images, newest first, for the
// listing page.
func (s *Campgrounds) All() ([]models.Campground, error) {
	var camps []models.Campground
	err := s.db.Preload("Images").Order("created_at DESC").Find(&camps).Error
	return camps, err
}
