package codec

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feiertage/pkg/domain"
)

const successDocument = `{
	"status": "success",
	"feiertage": [
		{"date":"2024-01-06","fname":"Heilige Drei Könige","all_states":"0","bw":"1","by":"1","be":"0","st":"1","comment":"","augsburg":null,"katholisch":null},
		{"date":"2024-08-15","fname":"Mariä Himmelfahrt","all_states":0,"by":1,"sl":true,"comment":"nur in Gemeinden mit überwiegend katholischer Bevölkerung","augsburg":"0","katholisch":"1"},
		{"date":"2024-12-25","fname":"1. Weihnachtstag","all_states":"1","comment":null,"augsburg":null,"katholisch":null}
	]
}`

func TestDecode_SuccessDocument(t *testing.T) {
	resp, err := Decode([]byte(successDocument))
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Nil(t, resp.ErrorMessage)
	require.Len(t, resp.Holidays, 3)

	epiphany := resp.Holidays[0]
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 6}, epiphany.Date)
	assert.Equal(t, "Heilige Drei Könige", epiphany.Name)
	assert.False(t, epiphany.AllStates)
	assert.Equal(t, map[domain.Region]bool{
		domain.RegionBadenWuerttemberg: true,
		domain.RegionBavaria:           true,
		domain.RegionBerlin:            false,
		domain.RegionSaxonyAnhalt:      true,
	}, epiphany.Regions)

	assumption := resp.Holidays[1]
	assert.Equal(t, "nur in Gemeinden mit überwiegend katholischer Bevölkerung", assumption.Comment)
	require.NotNil(t, assumption.Augsburg)
	assert.False(t, *assumption.Augsburg)
	require.NotNil(t, assumption.Catholic)
	assert.True(t, *assumption.Catholic)
	assert.True(t, assumption.Regions[domain.RegionSaarland])

	christmas := resp.Holidays[2]
	assert.True(t, christmas.AllStates)
	assert.Empty(t, christmas.Regions)
	assert.Equal(t, "", christmas.Comment)
}

func TestDecode_ErrorDocument(t *testing.T) {
	t.Run("reads description after status", func(t *testing.T) {
		resp, err := Decode([]byte(`{"status":"error","error_description":"Invalid parameter","feiertage":[]}`))
		require.NoError(t, err)

		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.ErrorMessage)
		assert.Equal(t, "Invalid parameter", *resp.ErrorMessage)
		assert.Empty(t, resp.Holidays)
		assert.True(t, resp.IsError())
	})

	t.Run("ignores description before status", func(t *testing.T) {
		resp, err := Decode([]byte(`{"error_description":"Invalid parameter","status":"error"}`))
		require.NoError(t, err)
		assert.Equal(t, "error", resp.Status)
		assert.Nil(t, resp.ErrorMessage)
	})

	t.Run("ignores description on success", func(t *testing.T) {
		resp, err := Decode([]byte(`{"status":"success","error_description":"stale"}`))
		require.NoError(t, err)
		assert.Nil(t, resp.ErrorMessage)
	})

	t.Run("ignores mistyped description when not read", func(t *testing.T) {
		_, err := Decode([]byte(`{"status":"success","error_description":{"a":1}}`))
		require.NoError(t, err)
	})

	t.Run("null description", func(t *testing.T) {
		resp, err := Decode([]byte(`{"status":"error","error_description":null}`))
		require.NoError(t, err)
		assert.Nil(t, resp.ErrorMessage)
	})

	t.Run("mistyped description", func(t *testing.T) {
		_, err := Decode([]byte(`{"status":"error","error_description":42}`))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestDecode_Defaults(t *testing.T) {
	resp, err := Decode([]byte(`{"other":[1,2,{"x":null}]}`))
	require.NoError(t, err)

	assert.Equal(t, "", resp.Status)
	assert.NotNil(t, resp.Holidays)
	assert.Empty(t, resp.Holidays)
	assert.Nil(t, resp.ErrorMessage)
}

func TestDecode_MalformedTopLevel(t *testing.T) {
	inputs := map[string]string{
		"array":              `[]`,
		"empty":              ``,
		"truncated":          `{`,
		"numeric status":     `{"status":123}`,
		"null status":        `{"status":null}`,
		"object holidays":    `{"feiertage":{}}`,
		"null holidays":      `{"feiertage":null}`,
		"string":             `"success"`,
		"trailing data":      `{"status":"success"} {}`,
		"truncated holidays": `{"status":"success","feiertage":[`,
		"not json":           `status=success`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			resp, err := Decode([]byte(input))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
		})
	}
}

func TestDecodeHoliday(t *testing.T) {
	t.Run("christmas item", func(t *testing.T) {
		h, err := DecodeHoliday([]byte(`{"date":"2024-12-25","fname":"Christmas","all_states":"1","by":"1","comment":"","augsburg":null,"katholisch":null}`))
		require.NoError(t, err)

		assert.Equal(t, civil.Date{Year: 2024, Month: 12, Day: 25}, h.Date)
		assert.Equal(t, "Christmas", h.Name)
		assert.True(t, h.AllStates)
		assert.Equal(t, map[domain.Region]bool{domain.RegionBavaria: true}, h.Regions)
		assert.Equal(t, "", h.Comment)
		assert.Nil(t, h.Augsburg)
		assert.Nil(t, h.Catholic)
	})

	t.Run("unknown property is skipped", func(t *testing.T) {
		h, err := DecodeHoliday([]byte(`{"date":"2024-12-25","unknown_state":"1","xx":"1","nested":{"by":"1"}}`))
		require.NoError(t, err)
		assert.Empty(t, h.Regions)
	})

	t.Run("region keys ignore case", func(t *testing.T) {
		h, err := DecodeHoliday([]byte(`{"date":"2024-10-31","BB":"1","Mv":"yes"}`))
		require.NoError(t, err)
		assert.Equal(t, map[domain.Region]bool{
			domain.RegionBrandenburg:           true,
			domain.RegionMecklenburgVorpommern: true,
		}, h.Regions)
	})

	t.Run("absent optional fields", func(t *testing.T) {
		h, err := DecodeHoliday([]byte(`{"date":"2024-05-01"}`))
		require.NoError(t, err)
		assert.Equal(t, "", h.Name)
		assert.False(t, h.AllStates)
		assert.Nil(t, h.Augsburg)
		assert.Nil(t, h.Catholic)
	})

	t.Run("absent region is unspecified", func(t *testing.T) {
		h, err := DecodeHoliday([]byte(`{"date":"2024-05-01","by":"0"}`))
		require.NoError(t, err)

		applies, known := h.AppliesTo(domain.RegionBavaria)
		assert.True(t, known)
		assert.False(t, applies)

		_, known = h.AppliesTo(domain.RegionHamburg)
		assert.False(t, known)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`["2024-12-25"]`))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`{"fname":"Christmas"}`))
		require.ErrorIs(t, err, ErrMalformedDocument)

		var docErr *DocumentError
		require.True(t, errors.As(err, &docErr))
		assert.Equal(t, "date", docErr.Field)
	})

	t.Run("mistyped name", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`{"date":"2024-12-25","fname":7}`))
		require.ErrorIs(t, err, ErrMalformedDocument)

		var docErr *DocumentError
		require.True(t, errors.As(err, &docErr))
		assert.Equal(t, "fname", docErr.Field)
	})

	t.Run("mistyped comment", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`{"date":"2024-12-25","comment":false}`))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("malformed flag names field", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`{"date":"2024-12-25","augsburg":["1"]}`))
		require.ErrorIs(t, err, ErrMalformedBoolish)

		var boolErr *BoolishError
		require.True(t, errors.As(err, &boolErr))
		assert.Equal(t, "augsburg", boolErr.Field)
	})

	t.Run("malformed region flag", func(t *testing.T) {
		_, err := DecodeHoliday([]byte(`{"date":"2024-12-25","hh":{}}`))
		assert.ErrorIs(t, err, ErrMalformedBoolish)
	})
}

func TestDecodeHoliday_InvalidDate(t *testing.T) {
	inputs := map[string]string{
		"empty":          `""`,
		"slashes":        `"2024/12/25"`,
		"short year":     `"24-12-25"`,
		"single digits":  `"2024-1-5"`,
		"time component": `"2024-12-25T00:00:00Z"`,
		"impossible day": `"2024-02-30"`,
		"month 13":       `"2024-13-01"`,
		"number":         `20241225`,
		"null":           `null`,
		"padded":         `" 2024-12-25"`,
	}

	for name, date := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeHoliday([]byte(`{"date":` + date + `}`))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDateFormat), "got %v", err)
		})
	}
}

func TestDecode_ItemErrorsAbortDocument(t *testing.T) {
	doc := `{"status":"success","feiertage":[{"date":"2024-01-01"},{"date":"01.05.2024"}]}`

	resp, err := Decode([]byte(doc))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	doc = `{"status":"success","feiertage":[{"date":"2024-01-01"},{"date":"2024-05-01","all_states":[]}]}`
	_, err = Decode([]byte(doc))

	var boolErr *BoolishError
	require.True(t, errors.As(err, &boolErr))
	assert.Equal(t, "feiertage[1].all_states", boolErr.Field)
}
