package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFiltersAreANDed(t *testing.T) {
	store := Default()

	results := store.Search(Filters{
		Type:        TypeApartment,
		Transaction: TransactionSale,
		City:        "florianópolis",
		MaxPrice:    900000,
	})

	require.NotEmpty(t, results)
	for _, p := range results {
		assert.Equal(t, TypeApartment, p.Type)
		assert.Equal(t, TransactionSale, p.Transaction)
		assert.LessOrEqual(t, p.Price, 900000)
		assert.Equal(t, "Florianópolis", p.City)
	}
}

func TestSearchEmptyFiltersReturnsWholeCatalog(t *testing.T) {
	store := Default()
	assert.Len(t, store.Search(Filters{}), store.Len())
}

func TestSearchCityMatchesNeighborhoodSubstring(t *testing.T) {
	store := Default()

	results := store.Search(Filters{City: "lagoa"})

	require.NotEmpty(t, results)
	for _, p := range results {
		assert.Contains(t, p.Neighborhood, "Lagoa")
	}
}

func TestSearchMonotonicNarrowing(t *testing.T) {
	store := Default()

	base := Filters{Transaction: TransactionSale}
	narrowed := Filters{Transaction: TransactionSale, Type: TypeHouse, MinBedrooms: 3}

	assert.LessOrEqual(t, len(store.Search(narrowed)), len(store.Search(base)))

	// Adding any further constraint never grows the result set.
	evenNarrower := narrowed
	evenNarrower.MaxPrice = 1000000
	assert.LessOrEqual(t, len(store.Search(evenNarrower)), len(store.Search(narrowed)))
}

func TestSearchPriceBoundsInclusive(t *testing.T) {
	store := NewStore([]Property{
		{ID: 1, Type: TypeHouse, Price: 500000},
	})

	assert.Len(t, store.Search(Filters{MinPrice: 500000, MaxPrice: 500000}), 1)
	assert.Empty(t, store.Search(Filters{MaxPrice: 499999}))
	assert.Empty(t, store.Search(Filters{MinPrice: 500001}))
}

func TestSearchPreservesCatalogOrder(t *testing.T) {
	store := Default()

	results := store.Search(Filters{Transaction: TransactionSale})

	require.True(t, len(results) > 1)
	for i := 1; i < len(results); i++ {
		assert.Greater(t, results[i].ID, results[i-1].ID)
	}
}

func TestByID(t *testing.T) {
	store := Default()

	p, ok := store.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "APV001", p.Code)

	_, ok = store.ByID(9999)
	assert.False(t, ok)
}

func TestByCode(t *testing.T) {
	store := Default()

	p, ok := store.ByCode("apa001")
	require.True(t, ok)
	assert.Equal(t, 10, p.ID)
}

func TestNearbyExcludesPropertiesWithoutCoordinates(t *testing.T) {
	store := NewStore([]Property{
		{ID: 1, Location: &Coordinates{Lat: -27.5969, Lng: -48.5495}},
		{ID: 2}, // no coordinates
	})

	results := store.Nearby(-27.5954, -48.5480, 5)

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestNearbyRadius(t *testing.T) {
	store := Default()

	// Downtown Florianópolis: the Centro studio and the Centro rental
	// are within 5km, the Jurerê penthouse (25km north) is not.
	results := store.Nearby(-27.5954, -48.5480, 5)

	ids := make(map[int]bool)
	for _, p := range results {
		ids[p.ID] = true
	}
	assert.True(t, ids[3], "Centro studio should be within 5km")
	assert.True(t, ids[10], "Centro rental should be within 5km")
	assert.False(t, ids[1], "Jurerê penthouse should be outside 5km")
}

func TestNearbyOrdersNearestFirst(t *testing.T) {
	store := NewStore([]Property{
		{ID: 1, Location: &Coordinates{Lat: -27.6200, Lng: -48.5480}}, // ~2.7km
		{ID: 2, Location: &Coordinates{Lat: -27.5955, Lng: -48.5480}}, // next door
		{ID: 3, Location: &Coordinates{Lat: -27.6050, Lng: -48.5480}}, // ~1.1km
	})

	results := store.Nearby(-27.5954, -48.5480, 5)

	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].ID)
	assert.Equal(t, 3, results[1].ID)
	assert.Equal(t, 1, results[2].ID)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Florianópolis -> Balneário Camboriú is roughly 67km in a straight line.
	d := haversineKm(-27.5954, -48.5480, -26.9926, -48.6352)
	assert.InDelta(t, 67, d, 5)
}
