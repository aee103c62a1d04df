// Package codec translates between the api-feiertage.de JSON dialect and the
// typed holiday model.
//
// The wire format encodes booleans loosely ("1", "0", true, "yes") and puts
// per-state flags under dynamic property names ("by": "1"). Decoding is
// lenient about unknown properties and unknown state codes, and strict about
// the shape of known fields: any structural violation aborts the whole
// document.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/civil"

	"feiertage/pkg/domain"
	"feiertage/pkg/holiday"
)

// Wire property names.
const (
	fieldStatus           = "status"
	fieldHolidays         = "feiertage"
	fieldErrorDescription = "error_description"

	fieldDate      = "date"
	fieldName      = "fname"
	fieldAllStates = "all_states"
	fieldComment   = "comment"
	fieldAugsburg  = "augsburg"
	fieldCatholic  = "katholisch"
)

// Decode parses a holiday collection document.
//
// Properties are consumed in arrival order. error_description is read only
// when status has already been seen with the value "error"; when it arrives
// first it is ignored.
//
// Errors: *DocumentError when the document is not a JSON object or a known
// field has the wrong shape, plus any error from DecodeHoliday for items.
func Decode(data []byte) (*holiday.Response, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', ""); err != nil {
		return nil, err
	}

	resp := &holiday.Response{Holidays: []holiday.Holiday{}}
	statusSeen := false

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case fieldHolidays:
			holidays, err := decodeHolidays(dec)
			if err != nil {
				return nil, err
			}
			resp.Holidays = holidays
			continue
		}

		raw, err := readValue(dec, key)
		if err != nil {
			return nil, err
		}

		switch key {
		case fieldStatus:
			status, err := decodeString(raw, key)
			if err != nil {
				return nil, err
			}
			resp.Status = status
			statusSeen = true
		case fieldErrorDescription:
			if !statusSeen || resp.Status != holiday.StatusError {
				continue
			}
			msg, err := decodeNullableString(raw, key)
			if err != nil {
				return nil, err
			}
			resp.ErrorMessage = msg
		}
	}

	if err := expectDelim(dec, '}', ""); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeHoliday parses one holiday item.
//
// Properties other than the known ones are tested as region codes; known
// regions land in Holiday.Regions and everything else is skipped.
//
// Errors: *DocumentError for a non-object or a mistyped field,
// *DateFormatError for a bad date, *BoolishError for a non-boolish flag.
func DecodeHoliday(data []byte) (holiday.Holiday, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	h, err := decodeHolidayObject(dec)
	if err != nil {
		return holiday.Holiday{}, err
	}
	if err := expectEOF(dec); err != nil {
		return holiday.Holiday{}, err
	}
	return h, nil
}

func decodeHolidays(dec *json.Decoder) ([]holiday.Holiday, error) {
	if err := expectDelim(dec, '[', fieldHolidays); err != nil {
		return nil, err
	}
	holidays := []holiday.Holiday{}
	for i := 0; dec.More(); i++ {
		h, err := decodeHolidayObject(dec)
		if err != nil {
			return nil, withItemIndex(err, i)
		}
		holidays = append(holidays, h)
	}
	if err := expectDelim(dec, ']', fieldHolidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func decodeHolidayObject(dec *json.Decoder) (holiday.Holiday, error) {
	if err := expectDelim(dec, '{', ""); err != nil {
		return holiday.Holiday{}, err
	}

	h := holiday.Holiday{Regions: make(map[domain.Region]bool)}
	dateSeen := false

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return holiday.Holiday{}, err
		}
		raw, err := readValue(dec, key)
		if err != nil {
			return holiday.Holiday{}, err
		}

		switch key {
		case fieldDate:
			h.Date, err = decodeDate(raw)
			dateSeen = true
		case fieldName:
			h.Name, err = decodeString(raw, key)
		case fieldAllStates:
			h.AllStates, err = ParseBoolish(raw)
		case fieldComment:
			var comment *string
			comment, err = decodeNullableString(raw, key)
			if comment != nil {
				h.Comment = *comment
			}
		case fieldAugsburg:
			h.Augsburg, err = ParseNullableBoolish(raw)
		case fieldCatholic:
			h.Catholic, err = ParseNullableBoolish(raw)
		default:
			region, ok := domain.LookupRegion(key)
			if !ok {
				continue
			}
			var applies bool
			applies, err = ParseBoolish(raw)
			if err == nil {
				h.Regions[region] = applies
			}
		}
		if err != nil {
			return holiday.Holiday{}, withField(err, key)
		}
	}

	if err := expectDelim(dec, '}', ""); err != nil {
		return holiday.Holiday{}, err
	}
	if !dateSeen {
		return holiday.Holiday{}, malformed(fieldDate, "missing", nil)
	}
	return h, nil
}

func decodeDate(raw json.RawMessage) (civil.Date, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return civil.Date{}, &DateFormatError{Value: string(raw)}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return civil.Date{}, &DateFormatError{Value: string(raw)}
	}
	if !isISODate(s) {
		return civil.Date{}, &DateFormatError{Value: s}
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, &DateFormatError{Value: s}
	}
	return d, nil
}

// isISODate checks the exact YYYY-MM-DD shape before calendar validation.
func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func decodeString(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", malformed(field, "expected string", nil)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(field, "expected string", err)
	}
	return s, nil
}

func decodeNullableString(raw json.RawMessage, field string) (*string, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	s, err := decodeString(raw, field)
	if err != nil {
		return nil, malformed(field, "expected string or null", nil)
	}
	return &s, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", malformed("", "invalid property name", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", malformed("", fmt.Sprintf("unexpected token %v", tok), nil)
	}
	return key, nil
}

func readValue(dec *json.Decoder, field string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, malformed(field, "invalid value", err)
	}
	return raw, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, field string) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return malformed(field, fmt.Sprintf("expected %q", want), err)
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return malformed(field, fmt.Sprintf("expected %q, got %v", want, tok), nil)
	}
	return nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return malformed("", "trailing data after document", err)
	}
	return nil
}

func withField(err error, field string) error {
	var boolErr *BoolishError
	if errors.As(err, &boolErr) && boolErr.Field == "" {
		boolErr.Field = field
	}
	return err
}

func withItemIndex(err error, index int) error {
	prefix := fmt.Sprintf("%s[%d]", fieldHolidays, index)
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		docErr.Field = joinField(prefix, docErr.Field)
		return err
	}
	var boolErr *BoolishError
	if errors.As(err, &boolErr) {
		boolErr.Field = joinField(prefix, boolErr.Field)
	}
	return err
}

func joinField(prefix, field string) string {
	if field == "" {
		return prefix
	}
	return prefix + "." + field
}
