package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"feiertage/pkg/domain"
	"feiertage/pkg/holiday"
)

// Encode renders resp in the upstream wire format.
//
// Flags are written as "1"/"0" strings, tri-state flags as null when unset,
// and region flags as dynamic properties keyed by wire code in region
// declaration order. ErrorMessage is never written, so it does not survive a
// round trip.
//
// Errors: *DateFormatError for an invalid date, *DocumentError for a region
// key outside the declared set.
func Encode(resp holiday.Response) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, fieldStatus, marshalString(resp.Status))
	buf.WriteString(`,"` + fieldHolidays + `":[`)
	for i, h := range resp.Holidays {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeHoliday(&buf, h); err != nil {
			return nil, withItemIndex(err, i)
		}
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// EncodeHoliday renders a single holiday item.
func EncodeHoliday(h holiday.Holiday) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeHoliday(&buf, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHoliday(buf *bytes.Buffer, h holiday.Holiday) error {
	if !h.Date.IsValid() || h.Date.Year < 0 || h.Date.Year > 9999 {
		return &DateFormatError{Value: h.Date.String()}
	}
	for region := range h.Regions {
		if !region.IsValid() {
			return malformed(fmt.Sprintf("region %d", int(region)), "undeclared region", nil)
		}
	}

	buf.WriteByte('{')
	writeField(buf, fieldDate, marshalString(h.Date.String()))
	buf.WriteByte(',')
	writeField(buf, fieldName, marshalString(h.Name))
	buf.WriteByte(',')
	writeField(buf, fieldAllStates, EncodeBoolish(h.AllStates))
	for _, region := range domain.AllRegions() {
		applies, ok := h.Regions[region]
		if !ok {
			continue
		}
		buf.WriteByte(',')
		writeField(buf, region.Code(), EncodeBoolish(applies))
	}
	buf.WriteByte(',')
	writeField(buf, fieldComment, marshalString(h.Comment))
	buf.WriteByte(',')
	writeField(buf, fieldAugsburg, EncodeNullableBoolish(h.Augsburg))
	buf.WriteByte(',')
	writeField(buf, fieldCatholic, EncodeNullableBoolish(h.Catholic))
	buf.WriteByte('}')
	return nil
}

func writeField(buf *bytes.Buffer, key string, value []byte) {
	buf.Write(marshalString(key))
	buf.WriteByte(':')
	buf.Write(value)
}

// marshalString cannot fail for a Go string; invalid UTF-8 is replaced.
func marshalString(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}
