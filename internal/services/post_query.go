package services

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/anonto42/estate-hub/backend/internal/models"
)

// BuildPostFilter turns listing query parameters into a PostFilter.
// Unparseable numeric values are discarded; they constrain nothing and are
// never reported as errors.
func BuildPostFilter(query url.Values) models.PostFilter {
	if len(query) == 0 {
		return models.PostFilter{MatchAll: true}
	}

	var f models.PostFilter
	f.City = stringParam(query, "city")
	f.Type = stringParam(query, "type")
	f.Property = stringParam(query, "property")

	if raw := strings.TrimSpace(query.Get("bedroom")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.Bedroom = &n
		}
	}
	f.MinPrice = priceParam(query, "minPrice")
	f.MaxPrice = priceParam(query, "maxPrice")
	return f
}

func stringParam(query url.Values, key string) *string {
	v := query.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func priceParam(query url.Values, key string) *float64 {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
