package handler

import (
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses the YYYY-MM-DD calendar dates the API uses for
// rental ranges.
func parseDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

type queryStringValues struct {
	Search    string
	PriceBand string
	Popular   bool
	Status    string
}

func retrieveUrlQueryValues(r *http.Request) *queryStringValues {
	var queryValues = &queryStringValues{}

	queryValues.Search = r.URL.Query().Get("search")
	queryValues.PriceBand = r.URL.Query().Get("price")
	queryValues.Popular = r.URL.Query().Get("popular") == "true"
	queryValues.Status = r.URL.Query().Get("status")

	return queryValues
}
