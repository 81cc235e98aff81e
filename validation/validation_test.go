package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCampgroundPayload() CampgroundPayload {
	return CampgroundPayload{
		Title:       "Pine Ridge",
		Price:       "20",
		Location:    "Austin, TX",
		Description: "A quiet spot under the pines.",
	}
}

func TestCampgroundPayload_Valid(t *testing.T) {
	form, errs := validCampgroundPayload().Validate()

	assert.Empty(t, errs)
	assert.Equal(t, "Pine Ridge", form.Title)
	assert.Equal(t, 20.0, form.Price)
	assert.Equal(t, "Austin, TX", form.Location)
}

func TestCampgroundPayload_MissingFields(t *testing.T) {
	_, errs := CampgroundPayload{}.Validate()

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "location")
	assert.Contains(t, fields, "description")
}

func TestCampgroundPayload_AllowsPunctuation(t *testing.T) {
	payload := validCampgroundPayload()
	payload.Title = "Hiker's Rest"
	payload.Description = `It's nice — "rustic" & quiet.`

	form, errs := payload.Validate()

	assert.Empty(t, errs)
	assert.Equal(t, "Hiker's Rest", form.Title)
	assert.Equal(t, `It's nice — "rustic" & quiet.`, form.Description)
}

func TestCampgroundPayload_RejectsHTML(t *testing.T) {
	payload := validCampgroundPayload()
	payload.Title = "<script>x</script>Camp"

	_, errs := payload.Validate()

	assert.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "title must not include HTML", errs[0].Message)
}

func TestCampgroundPayload_Price(t *testing.T) {
	tests := []struct {
		price   string
		message string
	}{
		{"-1", "price must be greater than or equal to 0"},
		{"abc", "price must be a number"},
		{"", "price is required"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			payload := validCampgroundPayload()
			payload.Price = tt.price

			_, errs := payload.Validate()

			assert.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestCampgroundPayload_PriceZeroAllowed(t *testing.T) {
	payload := validCampgroundPayload()
	payload.Price = "0"

	form, errs := payload.Validate()

	assert.Empty(t, errs)
	assert.Equal(t, 0.0, form.Price)
}

func TestCampgroundPayload_DeleteImagesOptional(t *testing.T) {
	payload := validCampgroundPayload()
	payload.DeleteImages = []string{"a.png", "b.png"}

	form, errs := payload.Validate()

	assert.Empty(t, errs)
	assert.Equal(t, []string{"a.png", "b.png"}, form.DeleteImages)
}

func TestReviewPayload_Valid(t *testing.T) {
	form, errs := ReviewPayload{Rating: "4", Body: "Great spot!"}.Validate()

	assert.Empty(t, errs)
	assert.Equal(t, 4, form.Rating)
	assert.Equal(t, "Great spot!", form.Body)
}

func TestReviewPayload_RatingBounds(t *testing.T) {
	for _, rating := range []string{"0", "6", "-3"} {
		t.Run(rating, func(t *testing.T) {
			_, errs := ReviewPayload{Rating: rating, Body: "ok"}.Validate()

			assert.Len(t, errs, 1)
			assert.Equal(t, "rating must be between 1 and 5", errs[0].Message)
		})
	}
}

func TestReviewPayload_AllowsPunctuation(t *testing.T) {
	form, errs := ReviewPayload{Rating: "5", Body: "Can't beat the view & the price"}.Validate()

	assert.Empty(t, errs)
	assert.Equal(t, "Can't beat the view & the price", form.Body)
}

func TestReviewPayload_RejectsHTML(t *testing.T) {
	_, errs := ReviewPayload{Rating: "3", Body: "<img src=x onerror=alert(1)>nice"}.Validate()

	assert.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestJoin(t *testing.T) {
	errs := []FieldError{
		{"title", "title is required"},
		{"price", "price must be a number"},
	}

	assert.Equal(t, "title is required,price must be a number", Join(errs))
}
