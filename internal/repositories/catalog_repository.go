package repositories

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"travelwise/internal/models/response_models"
)

//go:embed seed/catalog.json
var catalogSeed []byte

type catalogData struct {
	Destinations []response_models.Destination   `json:"destinations"`
	Hotels       []response_models.Hotel         `json:"hotels"`
	Flights      []response_models.Flight        `json:"flights"`
	Cars         []response_models.Car           `json:"cars"`
	Meals        []response_models.Meal          `json:"meals"`
	Packages     []response_models.TravelPackage `json:"packages"`
}

// CatalogRepository serves the read-only sample catalog. Returned slices are
// copies; callers may modify them.
type CatalogRepository interface {
	Destinations() []response_models.Destination
	// FindDestination returns (nil, nil) for an unknown id.
	FindDestination(id int) (*response_models.Destination, error)
	Hotels() []response_models.Hotel
	Flights() []response_models.Flight
	Cars() []response_models.Car
	Meals() []response_models.Meal
	Packages() []response_models.TravelPackage
}

type catalogRepository struct {
	data         catalogData
	destinations map[int]response_models.Destination
}

func NewCatalogRepository() (CatalogRepository, error) {
	return newCatalogRepository(catalogSeed)
}

func newCatalogRepository(seed []byte) (CatalogRepository, error) {
	var data catalogData
	if err := json.Unmarshal(seed, &data); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	sort.Slice(data.Destinations, func(i, j int) bool {
		return data.Destinations[i].ID < data.Destinations[j].ID
	})

	index := make(map[int]response_models.Destination, len(data.Destinations))
	for _, d := range data.Destinations {
		if _, dup := index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate destination id %d in catalog seed", d.ID)
		}
		index[d.ID] = d
	}

	return &catalogRepository{data: data, destinations: index}, nil
}

func (c *catalogRepository) Destinations() []response_models.Destination {
	return append([]response_models.Destination(nil), c.data.Destinations...)
}

func (c *catalogRepository) FindDestination(id int) (*response_models.Destination, error) {
	d, ok := c.destinations[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *catalogRepository) Hotels() []response_models.Hotel {
	return append([]response_models.Hotel(nil), c.data.Hotels...)
}

func (c *catalogRepository) Flights() []response_models.Flight {
	return append([]response_models.Flight(nil), c.data.Flights...)
}

func (c *catalogRepository) Cars() []response_models.Car {
	return append([]response_models.Car(nil), c.data.Cars...)
}

func (c *catalogRepository) Meals() []response_models.Meal {
	return append([]response_models.Meal(nil), c.data.Meals...)
}

func (c *catalogRepository) Packages() []response_models.TravelPackage {
	return append([]response_models.TravelPackage(nil), c.data.Packages...)
}
