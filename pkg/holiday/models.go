// Package holiday holds the typed model of the api-feiertage.de holiday feed.
//
// Values in this package are plain data. Wire decoding and encoding live in
// holiday/codec; fetching lives in holiday/client.
package holiday

import (
	"cloud.google.com/go/civil"

	"feiertage/pkg/domain"
)

// Status values reported by the upstream API.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Holiday is one public holiday entry.
type Holiday struct {
	Date      civil.Date
	Name      string
	AllStates bool

	// Regions holds only the regions named explicitly in the payload.
	// A missing key means unspecified, not false.
	Regions map[domain.Region]bool

	Comment string

	// Augsburg and Catholic are tri-state: nil means unspecified.
	Augsburg *bool
	Catholic *bool
}

// AppliesTo reports the explicit flag for region. known is false when the
// payload did not mention the region.
func (h Holiday) AppliesTo(region domain.Region) (applies bool, known bool) {
	applies, known = h.Regions[region]
	return applies, known
}

// Response is a decoded holiday document.
type Response struct {
	// Status is kept verbatim; StatusSuccess and StatusError are the expected values.
	Status   string
	Holidays []Holiday

	// ErrorMessage is set only when Status is StatusError.
	ErrorMessage *string
}

// IsError reports whether the API flagged the response as failed.
func (r Response) IsError() bool {
	return r.Status == StatusError
}

// Request describes one holiday query. Zero-valued filters are omitted.
type Request struct {
	Years     []int
	States    []domain.Region
	AllStates *bool
	Catholic  *bool
	Augsburg  *bool
}

// Bool returns a pointer to v, for the tri-state fields.
func Bool(v bool) *bool {
	return &v
}
