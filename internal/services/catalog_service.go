package services

import (
	"context"
	"strings"
	"travelwise/internal/models/response_models"
	"travelwise/internal/repositories"
	"travelwise/pkg/utils"
)

type CatalogServiceInterface interface {
	ListDestinations(ctx context.Context, query string) ([]response_models.Destination, error)
	GetDestination(ctx context.Context, id int) (*response_models.Destination, error)
	ListHotels(ctx context.Context, location string) ([]response_models.Hotel, error)
	ListFlights(ctx context.Context, from, to string) ([]response_models.Flight, error)
	ListCars(ctx context.Context, carType string) ([]response_models.Car, error)
	ListMeals(ctx context.Context, cuisine string) ([]response_models.Meal, error)
	ListPackages(ctx context.Context) ([]response_models.TravelPackage, error)
}

type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogServiceInterface {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

// containsFold reports whether needle is empty or occurs in any haystack,
// ignoring case.
func containsFold(needle string, haystacks ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func (s *CatalogService) ListDestinations(ctx context.Context, query string) ([]response_models.Destination, error) {
	var out []response_models.Destination
	for _, d := range s.catalogRepo.Destinations() {
		if containsFold(query, d.Name, d.Location) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *CatalogService) GetDestination(ctx context.Context, id int) (*response_models.Destination, error) {
	d, err := s.catalogRepo.FindDestination(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.ErrDestinationNotFound
	}
	return d, nil
}

func (s *CatalogService) ListHotels(ctx context.Context, location string) ([]response_models.Hotel, error) {
	var out []response_models.Hotel
	for _, h := range s.catalogRepo.Hotels() {
		if containsFold(location, h.Location) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *CatalogService) ListFlights(ctx context.Context, from, to string) ([]response_models.Flight, error) {
	var out []response_models.Flight
	for _, f := range s.catalogRepo.Flights() {
		if containsFold(from, f.From) && containsFold(to, f.To) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *CatalogService) ListCars(ctx context.Context, carType string) ([]response_models.Car, error) {
	var out []response_models.Car
	for _, c := range s.catalogRepo.Cars() {
		if containsFold(carType, c.Type) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CatalogService) ListMeals(ctx context.Context, cuisine string) ([]response_models.Meal, error) {
	var out []response_models.Meal
	for _, m := range s.catalogRepo.Meals() {
		if containsFold(cuisine, m.Cuisine) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogService) ListPackages(ctx context.Context) ([]response_models.TravelPackage, error) {
	return s.catalogRepo.Packages(), nil
}
