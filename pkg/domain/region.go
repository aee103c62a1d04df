package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Region is one of the 16 German federal states.
// Invariant: every Region has exactly one two-letter wire code and no two
// regions share a code.
//
// Usage: construct via ParseRegion or LookupRegion at trust boundaries; the
// zero value is RegionBadenWuerttemberg.
type Region int

// Supported regions in declaration order.
const (
	RegionBadenWuerttemberg Region = iota
	RegionBavaria
	RegionBerlin
	RegionBrandenburg
	RegionBremen
	RegionHamburg
	RegionHesse
	RegionMecklenburgVorpommern
	RegionLowerSaxony
	RegionNorthRhineWestphalia
	RegionRhinelandPalatinate
	RegionSaarland
	RegionSaxony
	RegionSaxonyAnhalt
	RegionSchleswigHolstein
	RegionThuringia
)

type regionEntry struct {
	region Region
	code   string
	name   string
}

// regionTable is the single source of truth for region codes. Indexed by Region.
var regionTable = [...]regionEntry{
	{RegionBadenWuerttemberg, "bw", "Baden-Württemberg"},
	{RegionBavaria, "by", "Bavaria"},
	{RegionBerlin, "be", "Berlin"},
	{RegionBrandenburg, "bb", "Brandenburg"},
	{RegionBremen, "hb", "Bremen"},
	{RegionHamburg, "hh", "Hamburg"},
	{RegionHesse, "he", "Hesse"},
	{RegionMecklenburgVorpommern, "mv", "Mecklenburg-Vorpommern"},
	{RegionLowerSaxony, "ni", "Lower Saxony"},
	{RegionNorthRhineWestphalia, "nw", "North Rhine-Westphalia"},
	{RegionRhinelandPalatinate, "rp", "Rhineland-Palatinate"},
	{RegionSaarland, "sl", "Saarland"},
	{RegionSaxony, "sn", "Saxony"},
	{RegionSaxonyAnhalt, "st", "Saxony-Anhalt"},
	{RegionSchleswigHolstein, "sh", "Schleswig-Holstein"},
	{RegionThuringia, "th", "Thuringia"},
}

// ErrInvalidRegionCode is matched by every *InvalidRegionCodeError.
var ErrInvalidRegionCode = errors.New("invalid region code")

// InvalidRegionCodeError reports a region code that is empty or unknown.
type InvalidRegionCodeError struct {
	Input string
}

func (e *InvalidRegionCodeError) Error() string {
	return fmt.Sprintf("invalid region code %q: expected one of %s", e.Input, strings.Join(RegionCodes(), ", "))
}

// Is reports whether target is ErrInvalidRegionCode.
func (e *InvalidRegionCodeError) Is(target error) bool {
	return target == ErrInvalidRegionCode
}

// ParseRegion resolves a wire code to a Region.
//
// Lookup trims whitespace and ignores case, so "BY" and " by " both resolve to
// RegionBavaria.
//
// Errors: returns *InvalidRegionCodeError when the code is empty, blank, or not
// one of the known codes.
func ParseRegion(code string) (Region, error) {
	r, ok := LookupRegion(code)
	if !ok {
		return 0, &InvalidRegionCodeError{Input: code}
	}
	return r, nil
}

// LookupRegion is the non-failing variant of ParseRegion.
func LookupRegion(code string) (Region, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return 0, false
	}
	for _, entry := range regionTable {
		if entry.code == normalized {
			return entry.region, true
		}
	}
	return 0, false
}

// AllRegions returns every region in declaration order.
func AllRegions() []Region {
	regions := make([]Region, len(regionTable))
	for i, entry := range regionTable {
		regions[i] = entry.region
	}
	return regions
}

// RegionCodes returns every wire code in declaration order.
func RegionCodes() []string {
	codes := make([]string, len(regionTable))
	for i, entry := range regionTable {
		codes[i] = entry.code
	}
	return codes
}

// IsValid checks if the region is one of the declared values.
func (r Region) IsValid() bool {
	return r >= 0 && int(r) < len(regionTable)
}

// Code returns the two-letter wire code, or "" for an undeclared value.
func (r Region) Code() string {
	if !r.IsValid() {
		return ""
	}
	return regionTable[r].code
}

// String returns the English name of the region.
func (r Region) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regionTable[r].name
}
