package database

import (
	"fmt"
	"log"
	"math/rand"

	"yelpcamp/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var descriptors = []string{
	"Forest", "Ancient", "Petrified", "Roaring", "Cascade",
	"Tumbling", "Silent", "Redwood", "Bullfrog", "Maple",
	"Misty", "Elk", "Grizzly", "Ocean", "Sky", "Dusty", "Diamond",
}

var places = []string{
	"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp",
	"Ghost Town", "Camp", "Dispersed Camp", "Backcountry", "River",
	"Creek", "Creekside", "Bay", "Spring", "Bayshore", "Sands",
	"Mule Camp", "Hunting Camp", "Cliffs", "Hollow",
}

type seedCity struct {
	name string
	lng  float64
	lat  float64
}

var seedCities = []seedCity{
	{"Austin, TX", -97.7431, 30.2672},
	{"Portland, OR", -122.6765, 45.5231},
	{"Denver, CO", -104.9903, 39.7392},
	{"Asheville, NC", -82.5515, 35.5951},
	{"Bozeman, MT", -111.0429, 45.677},
	{"Flagstaff, AZ", -111.6513, 35.1983},
	{"Bend, OR", -121.3153, 44.0582},
	{"Moab, UT", -109.5498, 38.5733},
	{"Duluth, MN", -92.1005, 46.7867},
	{"Burlington, VT", -73.2121, 44.4759},
}

// SeedCampgrounds wipes all campgrounds and repopulates the table with
// random sample data owned by a dedicated seed user.
func SeedCampgrounds(db *gorm.DB, count int) error {
	log.Println("Seeding campgrounds...")

	author, err := seedUser(db)
	if err != nil {
		return err
	}

	if err := db.Where("1 = 1").Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Image{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Campground{}).Error; err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		city := seedCities[rand.Intn(len(seedCities))]
		price := float64(rand.Intn(20) + 10)

		camp := models.Campground{
			Title:        fmt.Sprintf("%s %s", sample(descriptors), sample(places)),
			Price:        price,
			Description:  "Lorem ipsum dolor sit amet, consectetur adipisicing elit. Iusto ex ducimus libero architecto, nulla sunt.",
			Location:     city.name,
			GeometryType: "Point",
			Lng:          city.lng,
			Lat:          city.lat,
			AuthorID:     author.ID,
		}
		if err := db.Create(&camp).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d campgrounds", count)
	return nil
}

func seedUser(db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", "seeduser").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seedpassword"), 14)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Username:     "seeduser",
		Email:        "seeduser@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func sample(values []string) string {
	return values[rand.Intn(len(values))]
}
