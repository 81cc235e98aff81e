package models

import "time"

type User struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null;index" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
}

type Campground struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"not null" json:"title"`
	Price       float64   `gorm:"not null" json:"price"` // per night, never negative
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"not null" json:"location"` // canonical place name from the geocoder

	// GeoJSON Point. Both coordinates are set before a campground is ever
	// persisted; the geocoding guard refuses the mutation otherwise.
	GeometryType string  `gorm:"not null;default:Point" json:"geometry_type"`
	Lng          float64 `gorm:"not null" json:"lng"`
	Lat          float64 `gorm:"not null" json:"lat"`

	AuthorID int  `gorm:"not null;index" json:"author_id"` // set once at creation, never reassigned
	Author   User `json:"author"`

	Images  []Image  `json:"images"`
	Reviews []Review `json:"reviews"`
}

// Image belongs to exactly one campground. Filename is the storage key used
// both for display and for deletion against the storage provider.
type Image struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	CampgroundID int    `gorm:"not null;index" json:"campground_id"`
	URL          string `gorm:"not null" json:"url"`
	Filename     string `gorm:"not null;index" json:"filename"`
}

type Review struct {
	ID           int       `gorm:"primary_key;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	CampgroundID int       `gorm:"not null;index" json:"campground_id"`
	Rating       int       `gorm:"not null" json:"rating"` // 1 to 5
	Body         string    `gorm:"type:text;not null" json:"body"`
	AuthorID     int       `gorm:"not null;index" json:"author_id"` // set once at creation, never reassigned
	Author       User      `json:"author"`
}
