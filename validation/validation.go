// Package validation checks raw mutation payloads before anything is
// persisted. Each mutation kind has its own typed payload with an explicit
// Validate method; there is no runtime schema interpreter. String fields are
// rejected outright when they carry any HTML markup: the field is stripped
// with a strict allow-nothing policy and rejected if the stripped result
// differs from the submitted value.
package validation

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

var strict = bluemonday.StrictPolicy()

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Join concatenates every field error message with a comma, matching the
// single 400 message surfaced to the user.
func Join(errs []FieldError) string {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return strings.Join(messages, ",")
}

// CampgroundPayload holds the raw form values of a campground create or
// update request.
type CampgroundPayload struct {
	Title        string
	Price        string
	Location     string
	Description  string
	DeleteImages []string
}

// CampgroundForm is the sanitized, typed result of a successful validation.
type CampgroundForm struct {
	Title        string
	Price        float64
	Location     string
	Description  string
	DeleteImages []string
}

func (p CampgroundPayload) Validate() (CampgroundForm, []FieldError) {
	var errs []FieldError

	requireString(&errs, "title", p.Title)
	requireString(&errs, "location", p.Location)
	requireString(&errs, "description", p.Description)

	var price float64
	if strings.TrimSpace(p.Price) == "" {
		errs = append(errs, FieldError{"price", "price is required"})
	} else {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
		if err != nil {
			errs = append(errs, FieldError{"price", "price must be a number"})
		} else if parsed < 0 {
			errs = append(errs, FieldError{"price", "price must be greater than or equal to 0"})
		} else {
			price = parsed
		}
	}

	if len(errs) > 0 {
		return CampgroundForm{}, errs
	}

	return CampgroundForm{
		Title:        strings.TrimSpace(p.Title),
		Price:        price,
		Location:     strings.TrimSpace(p.Location),
		Description:  strings.TrimSpace(p.Description),
		DeleteImages: p.DeleteImages,
	}, nil
}

// ReviewPayload holds the raw form values of a review create request.
type ReviewPayload struct {
	Rating string
	Body   string
}

type ReviewForm struct {
	Rating int
	Body   string
}

func (p ReviewPayload) Validate() (ReviewForm, []FieldError) {
	var errs []FieldError

	requireString(&errs, "body", p.Body)

	var rating int
	if strings.TrimSpace(p.Rating) == "" {
		errs = append(errs, FieldError{"rating", "rating is required"})
	} else {
		parsed, err := strconv.Atoi(strings.TrimSpace(p.Rating))
		if err != nil {
			errs = append(errs, FieldError{"rating", "rating must be a number"})
		} else if parsed < MinRating || parsed > MaxRating {
			errs = append(errs, FieldError{"rating", "rating must be between 1 and 5"})
		} else {
			rating = parsed
		}
	}

	if len(errs) > 0 {
		return ReviewForm{}, errs
	}

	return ReviewForm{Rating: rating, Body: strings.TrimSpace(p.Body)}, nil
}

func requireString(errs *[]FieldError, field, value string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, FieldError{field, field + " is required"})
		return
	}
	// the policy entity-escapes plain text (' " &), so compare the
	// unescaped form: only actual markup may differ from the input
	if html.UnescapeString(strict.Sanitize(value)) != value {
		*errs = append(*errs, FieldError{field, field + " must not include HTML"})
	}
}
