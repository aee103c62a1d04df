package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxRawInError caps how much of an offending value is copied into errors.
const maxRawInError = 64

var (
	wireTrue  = json.RawMessage(`"1"`)
	wireFalse = json.RawMessage(`"0"`)
	wireNull  = json.RawMessage(`null`)
)

// ParseBoolish interprets one wire scalar as a boolean.
//
// Native booleans map to themselves, integers are true unless zero, and
// strings are true only for "1", "true" or "yes" (trimmed, any case). Every
// other string is false. Null is false.
//
// Errors: returns *BoolishError for arrays, objects, fractional numbers and
// unparsable input.
func ParseBoolish(raw json.RawMessage) (bool, error) {
	v, _, err := parseBoolish(raw)
	return v, err
}

// ParseNullableBoolish is ParseBoolish with null mapped to nil instead of false.
func ParseNullableBoolish(raw json.RawMessage) (*bool, error) {
	v, isNull, err := parseBoolish(raw)
	if err != nil || isNull {
		return nil, err
	}
	return &v, nil
}

// EncodeBoolish renders v the way the upstream API does: "1" or "0".
func EncodeBoolish(v bool) json.RawMessage {
	if v {
		return wireTrue
	}
	return wireFalse
}

// EncodeNullableBoolish renders nil as null and anything else like EncodeBoolish.
func EncodeNullableBoolish(v *bool) json.RawMessage {
	if v == nil {
		return wireNull
	}
	return EncodeBoolish(*v)
}

func parseBoolish(raw json.RawMessage) (value bool, isNull bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false, false, boolishError(trimmed)
	}

	switch c := trimmed[0]; {
	case c == 'n':
		if string(trimmed) == "null" {
			return false, true, nil
		}
	case c == 't' || c == 'f':
		switch string(trimmed) {
		case "true":
			return true, false, nil
		case "false":
			return false, false, nil
		}
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return false, false, boolishError(trimmed)
		}
		return truthyString(s), false, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return parseBoolishNumber(trimmed)
	}
	return false, false, boolishError(trimmed)
}

func parseBoolishNumber(raw []byte) (bool, bool, error) {
	s := string(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0, false, nil
	}
	// Out-of-range integers and exponent forms still count when integral.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false, false, boolishError(raw)
	}
	return f != 0, false, nil
}

func truthyString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func boolishError(raw []byte) *BoolishError {
	s := string(raw)
	if len(s) > maxRawInError {
		s = s[:maxRawInError] + "..."
	}
	return &BoolishError{Raw: s}
}
