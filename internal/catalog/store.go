package catalog

import (
	"math"
	"sort"
	"strings"
)

// Filters narrows a Search. Zero-valued fields impose no constraint.
type Filters struct {
	Type        PropertyType
	Transaction Transaction
	// City matches city or neighborhood, case-insensitive substring.
	City        string
	MinPrice    int
	MaxPrice    int
	MinBedrooms int
	MinArea     int
	MaxArea     int
}

// Store answers read-only queries over the property portfolio.
type Store struct {
	properties []Property
}

// NewStore creates a store over the given records. Order is preserved.
func NewStore(properties []Property) *Store {
	return &Store{properties: properties}
}

// Default returns a store seeded with the agency portfolio.
func Default() *Store {
	return NewStore(seedProperties)
}

// Search applies every supplied filter as an AND predicate and returns
// matches in catalog insertion order.
func (s *Store) Search(f Filters) []Property {
	var results []Property
	for _, p := range s.properties {
		if matches(p, f) {
			results = append(results, p)
		}
	}
	return results
}

// ByID returns the property with the given id.
func (s *Store) ByID(id int) (Property, bool) {
	for _, p := range s.properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// ByCode returns the property with the given listing code.
func (s *Store) ByCode(code string) (Property, bool) {
	for _, p := range s.properties {
		if strings.EqualFold(p.Code, code) {
			return p, true
		}
	}
	return Property{}, false
}

// Nearby returns properties within radiusKm of the given point,
// nearest first. Properties without coordinates are excluded.
func (s *Store) Nearby(lat, lng, radiusKm float64) []Property {
	type hit struct {
		property Property
		distance float64
	}
	var hits []hit
	for _, p := range s.properties {
		if p.Location == nil {
			continue
		}
		d := haversineKm(lat, lng, p.Location.Lat, p.Location.Lng)
		if d <= radiusKm {
			hits = append(hits, hit{property: p, distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})
	results := make([]Property, len(hits))
	for i, h := range hits {
		results[i] = h.property
	}
	return results
}

// Len reports the number of records in the portfolio.
func (s *Store) Len() int {
	return len(s.properties)
}

func matches(p Property, f Filters) bool {
	if f.Type != TypeAny && p.Type != f.Type {
		return false
	}
	if f.Transaction != TransactionAny && p.Transaction != f.Transaction {
		return false
	}
	if f.City != "" {
		needle := strings.ToLower(f.City)
		city := strings.ToLower(p.City)
		hood := strings.ToLower(p.Neighborhood)
		if !strings.Contains(city, needle) && !strings.Contains(hood, needle) {
			return false
		}
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
		return false
	}
	if f.MinArea > 0 && p.Area < f.MinArea {
		return false
	}
	if f.MaxArea > 0 && p.Area > f.MaxArea {
		return false
	}
	return true
}

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
