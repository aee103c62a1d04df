package client

import (
	"fmt"
	"net/url"
	"strconv"

	"feiertage/pkg/holiday"
	pstrings "feiertage/pkg/platform/strings"
)

// Query parameter names understood by the API.
const (
	paramYears     = "years"
	paramStates    = "states"
	paramAllStates = "all_states"
	paramCatholic  = "catholic"
	paramAugsburg  = "augsburg"
)

// Query builds the query parameters for req. Unset filters are omitted,
// duplicate years and states are dropped, and flags are sent as "1"/"0".
//
// Errors: returns an error for years outside 1..9999 or undeclared regions.
func Query(req holiday.Request) (url.Values, error) {
	q := url.Values{}

	years := make([]string, 0, len(req.Years))
	for _, y := range req.Years {
		if y < 1 || y > 9999 {
			return nil, fmt.Errorf("holiday client: invalid year %d", y)
		}
		years = append(years, strconv.Itoa(y))
	}
	if joined := pstrings.JoinCSV(years); joined != "" {
		q.Set(paramYears, joined)
	}

	codes := make([]string, 0, len(req.States))
	for _, r := range req.States {
		if !r.IsValid() {
			return nil, fmt.Errorf("holiday client: undeclared region %d", int(r))
		}
		codes = append(codes, r.Code())
	}
	if joined := pstrings.JoinCSV(pstrings.DedupeAndTrimLower(codes)); joined != "" {
		q.Set(paramStates, joined)
	}

	setFlag(q, paramAllStates, req.AllStates)
	setFlag(q, paramCatholic, req.Catholic)
	setFlag(q, paramAugsburg, req.Augsburg)
	return q, nil
}

// BuildURL joins baseURL with the query for req.
func BuildURL(baseURL string, req holiday.Request) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("holiday client: parse base URL: %w", err)
	}
	q, err := Query(req)
	if err != nil {
		return "", err
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func setFlag(q url.Values, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
}
