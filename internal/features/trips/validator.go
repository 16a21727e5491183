package trips

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xyz-asif/travlr/internal/pkg/validator"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

const (
	DefaultImage         = "default-trip.jpg"
	MinTripLength        = 1
	MaxTripLength        = 365
	MinDescriptionLength = 10
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Date layouts accepted for start. Values without a zone are UTC.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?$`)

var hundred = big.NewRat(100, 1)

// ValidateTrip checks every field of req and returns the normalized record.
// All failures are collected; the error is an apperrors.ValidationErrors.
func ValidateTrip(req TripRequest) (Trip, error) {
	var errs apperrors.ValidationErrors
	var trip Trip

	trip.Code = requireString(&errs, "code", req.Code, "Trip code is required")
	trip.Name = requireString(&errs, "name", req.Name, "Trip name is required")
	trip.Resort = requireString(&errs, "resort", req.Resort, "Resort is required")

	if length, ok := parseDecimal(&errs, "length", req.Length, "Trip length (days) is required", "Trip length must be a number"); ok {
		switch {
		case !length.IsInt():
			errs = append(errs, apperrors.NewFieldError("length", apperrors.ReasonNotInteger, "Trip length must be a whole number of days"))
		case length.Cmp(big.NewRat(MinTripLength, 1)) < 0:
			errs = append(errs, apperrors.NewFieldError("length", apperrors.ReasonOutOfRange, "Trip length must be at least 1 day"))
		case length.Cmp(big.NewRat(MaxTripLength, 1)) > 0:
			errs = append(errs, apperrors.NewFieldError("length", apperrors.ReasonOutOfRange, "Trip length must be less than or equal to 365 days"))
		default:
			trip.Length = int(length.Num().Int64())
		}
	}

	if start := requireString(&errs, "start", req.Start, "Start date is required"); start != "" {
		t, err := ParseStart(start)
		if err != nil {
			errs = append(errs, apperrors.NewFieldError("start", apperrors.ReasonInvalidDate, "Start must be a valid date"))
		} else {
			trip.Start = t
		}
	}

	if price, ok := parseDecimal(&errs, "perPerson", req.PerPerson, "Price per person is required", "Price must be a number"); ok {
		switch {
		case price.Sign() < 0:
			errs = append(errs, apperrors.NewFieldError("perPerson", apperrors.ReasonOutOfRange, "Price must be a positive number"))
		case !HasAtMostTwoDecimals(price):
			errs = append(errs, apperrors.NewFieldError("perPerson", apperrors.ReasonInvalidPrecision, "Price must have at most two decimal places"))
		default:
			if f, ok := PriceFloat(price); ok {
				trip.PerPerson = f
			} else {
				errs = append(errs, apperrors.NewFieldError("perPerson", apperrors.ReasonOutOfRange, "Price is too large to store exactly"))
			}
		}
	}

	if image := requireString(&errs, "image", req.Image, "Image filename is required"); image != "" {
		if !validator.HasAllowedExtension(image, AllowedImageExtensions) {
			errs = append(errs, apperrors.NewFieldError("image", apperrors.ReasonInvalidImageExtension,
				fmt.Sprintf("Image must end with one of: %s", strings.Join(AllowedImageExtensions, ", "))))
		} else {
			trip.Image = image
		}
	}

	if desc := requireString(&errs, "description", req.Description, "Description is required"); desc != "" {
		if !validator.MinLength(desc, MinDescriptionLength) {
			errs = append(errs, apperrors.NewFieldError("description", apperrors.ReasonTooShort, "Description must be at least 10 characters long"))
		} else {
			trip.Description = desc
		}
	}

	if err := errs.OrNil(); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

// MergeTrip overlays the fields present in patch onto the stored trip.
func MergeTrip(stored Trip, patch TripRequest) TripRequest {
	merged := TripRequest{
		Code:        StringPtr(stored.Code),
		Name:        StringPtr(stored.Name),
		Length:      NumericInt(stored.Length),
		Start:       StringPtr(stored.Start.UTC().Format(time.RFC3339Nano)),
		Resort:      StringPtr(stored.Resort),
		PerPerson:   NumericFloat(stored.PerPerson),
		Image:       StringPtr(stored.Image),
		Description: StringPtr(stored.Description),
	}

	if patch.Code != nil {
		merged.Code = patch.Code
	}
	if patch.Name != nil {
		merged.Name = patch.Name
	}
	if patch.Length != nil {
		merged.Length = patch.Length
	}
	if patch.Start != nil {
		merged.Start = patch.Start
	}
	if patch.Resort != nil {
		merged.Resort = patch.Resort
	}
	if patch.PerPerson != nil {
		merged.PerPerson = patch.PerPerson
	}
	if patch.Image != nil {
		merged.Image = patch.Image
	}
	if patch.Description != nil {
		merged.Description = patch.Description
	}
	return merged
}

// ParseStart parses a start date in any accepted layout and returns it in UTC
// at millisecond resolution, the precision of a BSON date.
func ParseStart(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// HasAtMostTwoDecimals is exact: value*100 must be an integer.
func HasAtMostTwoDecimals(r *big.Rat) bool {
	return new(big.Rat).Mul(r, hundred).IsInt()
}

// PriceFloat converts a cent-precision price to float64. It fails when the
// result is infinite or no longer prints back to the same amount in cents.
func PriceFloat(r *big.Rat) (float64, bool) {
	f, _ := r.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	back, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', 2, 64))
	return f, ok && back.Cmp(r) == 0
}

func requireString(errs *apperrors.ValidationErrors, field string, value *string, message string) string {
	if value == nil || validator.IsBlank(*value) {
		*errs = append(*errs, apperrors.NewFieldError(field, apperrors.ReasonRequired, message))
		return ""
	}
	return strings.TrimSpace(*value)
}

func parseDecimal(errs *apperrors.ValidationErrors, field string, value *Numeric, requiredMsg, invalidMsg string) (*big.Rat, bool) {
	if value == nil || validator.IsBlank(string(*value)) {
		*errs = append(*errs, apperrors.NewFieldError(field, apperrors.ReasonRequired, requiredMsg))
		return nil, false
	}

	s := strings.TrimSpace(string(*value))
	if !decimalPattern.MatchString(s) {
		*errs = append(*errs, apperrors.NewFieldError(field, apperrors.ReasonNotNumber, invalidMsg))
		return nil, false
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		*errs = append(*errs, apperrors.NewFieldError(field, apperrors.ReasonNotNumber, invalidMsg))
		return nil, false
	}
	return r, true
}
