package matching

import (
	"strings"

	"eventify/domain"
)

// Per-category fallback ranges, used when a provider has no priced offering
// for any matched category.
var defaultPriceRanges = map[string]domain.PriceRange{
	"catering":      {Min: 2000, Max: 5000},
	"photography":   {Min: 1000, Max: 3000},
	"videography":   {Min: 1500, Max: 4000},
	"music":         {Min: 800, Max: 2500},
	"entertainment": {Min: 800, Max: 2500},
	"venue":         {Min: 3000, Max: 10000},
	"decoration":    {Min: 500, Max: 2000},
	"flowers":       {Min: 400, Max: 1500},
	"transport":     {Min: 300, Max: 1500},
	"security":      {Min: 400, Max: 1200},
}

var genericPriceRange = domain.PriceRange{Min: 500, Max: 2000}

// estimatePriceRange takes the min/max bounds across the provider's
// offerings whose service type mentions any matched category. Offerings
// without price bounds are ignored; when nothing priced matches, the
// per-category default for the first matched category applies.
func estimatePriceRange(offerings []domain.ServiceOffering, matched []string) domain.PriceRange {
	var (
		priced bool
		rng    domain.PriceRange
	)

	for _, o := range offerings {
		if o.PriceMin <= 0 && o.PriceMax <= 0 {
			continue
		}
		if !offeringMatches(o.ServiceType, matched) {
			continue
		}

		if !priced {
			rng = domain.PriceRange{Min: o.PriceMin, Max: o.PriceMax}
			priced = true
			continue
		}
		if o.PriceMin < rng.Min {
			rng.Min = o.PriceMin
		}
		if o.PriceMax > rng.Max {
			rng.Max = o.PriceMax
		}
	}

	if priced {
		return rng
	}

	if len(matched) > 0 {
		if def, ok := defaultPriceRanges[matched[0]]; ok {
			return def
		}
	}

	return genericPriceRange
}

func offeringMatches(serviceType string, matched []string) bool {
	st := strings.ToLower(serviceType)
	for _, c := range matched {
		if strings.Contains(st, c) {
			return true
		}
	}
	return false
}
