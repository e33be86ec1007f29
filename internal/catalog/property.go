package catalog

// PropertyType classifies a listing.
type PropertyType string

const (
	TypeAny        PropertyType = ""
	TypeHouse      PropertyType = "house"
	TypeApartment  PropertyType = "apartment"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

// Transaction identifies whether a listing is offered for sale or rent.
type Transaction string

const (
	TransactionAny  Transaction = ""
	TransactionSale Transaction = "sale"
	TransactionRent Transaction = "rent"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Property is an immutable catalog record, loaded at startup.
type Property struct {
	ID           int
	Code         string
	Type         PropertyType
	Transaction  Transaction
	Title        string
	Address      string
	City         string
	Neighborhood string
	Price        int
	Area         int
	Bedrooms     int
	Suites       int
	Bathrooms    int
	Parking      int
	Description  string
	Features     []string
	Images       []string
	VirtualTour  string
	Location     *Coordinates
}
