//go:build go1.18

package domain

import (
	"errors"
	"testing"
)

// FuzzParseRegion tests that parsing never panics on arbitrary input
// and always returns either a declared region or ErrInvalidRegionCode.
func FuzzParseRegion(f *testing.F) {
	f.Add("")
	f.Add("by")
	f.Add(" BY ")
	f.Add("xx")
	f.Add("unknown_state")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		r, err := ParseRegion(input)
		if err != nil {
			if !errors.Is(err, ErrInvalidRegionCode) {
				t.Errorf("unexpected error type: %v", err)
			}
			if _, ok := LookupRegion(input); ok {
				t.Error("LookupRegion accepted input rejected by ParseRegion")
			}
			return
		}

		if !r.IsValid() {
			t.Errorf("parsed undeclared region %d", r)
		}
		roundTrip, err := ParseRegion(r.Code())
		if err != nil || roundTrip != r {
			t.Errorf("region %s failed round-trip", r)
		}
	})
}
