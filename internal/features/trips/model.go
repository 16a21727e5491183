package trips

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip is a bookable travel package as stored in the "trips" collection.
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Code        string             `bson:"code" json:"code"`
	Name        string             `bson:"name" json:"name"`
	Length      int                `bson:"length" json:"length"`
	Start       time.Time          `bson:"start" json:"start"`
	Resort      string             `bson:"resort" json:"resort"`
	PerPerson   float64            `bson:"perPerson" json:"perPerson"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EndDate is start plus length days.
func (t Trip) EndDate() time.Time {
	return t.Start.AddDate(0, 0, t.Length)
}

// IsUpcomingAt reports whether the trip starts strictly after now.
func (t Trip) IsUpcomingAt(now time.Time) bool {
	return t.Start.After(now)
}

// SameContent reports whether two trips carry the same user-supplied fields.
func (t Trip) SameContent(o Trip) bool {
	return t.Code == o.Code &&
		t.Name == o.Name &&
		t.Length == o.Length &&
		t.Start.Equal(o.Start) &&
		t.Resort == o.Resort &&
		t.PerPerson == o.PerPerson &&
		t.Image == o.Image &&
		t.Description == o.Description
}

// TripResponse is a trip plus its derived attributes.
type TripResponse struct {
	Trip
	End        time.Time `json:"end"`
	IsUpcoming bool      `json:"isUpcoming"`
}

// ToResponse computes the derived fields relative to now.
func (t Trip) ToResponse(now time.Time) TripResponse {
	return TripResponse{
		Trip:       t,
		End:        t.EndDate(),
		IsUpcoming: t.IsUpcomingAt(now),
	}
}

// ToResponses maps a slice of trips.
func ToResponses(list []Trip, now time.Time) []TripResponse {
	out := make([]TripResponse, 0, len(list))
	for _, t := range list {
		out = append(out, t.ToResponse(now))
	}
	return out
}

// Numeric holds a number exactly as the client sent it. The admin form posts
// numbers as strings, API clients send JSON numbers; both are accepted.
type Numeric string

var errNumericType = errors.New("must be a number or numeric string")

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errNumericType
	}
	*n = Numeric(num.String())
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// NumericInt formats an int as a Numeric.
func NumericInt(v int) *Numeric {
	n := Numeric(strconv.Itoa(v))
	return &n
}

// NumericFloat formats a float with the shortest exact representation.
func NumericFloat(v float64) *Numeric {
	n := Numeric(strconv.FormatFloat(v, 'f', -1, 64))
	return &n
}

// TripRequest is the body of POST /api/trips and PUT /api/trips/:code.
// Nil fields were not sent.
type TripRequest struct {
	Code        *string  `json:"code,omitempty" example:"GALR210214"`
	Name        *string  `json:"name,omitempty" example:"Gale Reef"`
	Length      *Numeric `json:"length,omitempty" swaggertype:"integer" example:"4"`
	Start       *string  `json:"start,omitempty" example:"2099-02-14"`
	Resort      *string  `json:"resort,omitempty" example:"Emerald Bay, 3 stars"`
	PerPerson   *Numeric `json:"perPerson,omitempty" swaggertype:"number" example:"799.00"`
	Image       *string  `json:"image,omitempty" example:"reef1.jpg"`
	Description *string  `json:"description,omitempty" example:"Sed et augue lorem. In sit amet placerat arcu."`
}

// StringPtr is a helper for building requests.
func StringPtr(s string) *string {
	return &s
}
