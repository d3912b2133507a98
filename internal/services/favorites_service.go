package services

import (
	"context"
	"fmt"
	"travelwise/internal/models/response_models"
	"travelwise/internal/repositories"
	"travelwise/pkg/utils"
)

type FavoritesServiceInterface interface {
	AddFavorite(ctx context.Context, accountID string, destinationID int) error
	RemoveFavorite(ctx context.Context, accountID string, destinationID int) error
	IsFavorite(ctx context.Context, accountID string, destinationID int) (bool, error)
	ListFavorites(ctx context.Context, accountID string) ([]response_models.Destination, error)
}

type FavoritesService struct {
	favoritesRepo repositories.FavoritesRepository
	catalogRepo   repositories.CatalogRepository
}

func NewFavoritesService(favoritesRepo repositories.FavoritesRepository, catalogRepo repositories.CatalogRepository) FavoritesServiceInterface {
	return &FavoritesService{
		favoritesRepo: favoritesRepo,
		catalogRepo:   catalogRepo,
	}
}

func (f *FavoritesService) requireDestination(id int) error {
	d, err := f.catalogRepo.FindDestination(id)
	if err != nil {
		return err
	}
	if d == nil {
		return utils.ErrDestinationNotFound
	}
	return nil
}

func (f *FavoritesService) AddFavorite(ctx context.Context, accountID string, destinationID int) error {
	if err := f.requireDestination(destinationID); err != nil {
		return err
	}
	if err := f.favoritesRepo.Add(ctx, accountID, destinationID); err != nil {
		return fmt.Errorf("add favorite: %w", utils.ErrStorageError)
	}
	return nil
}

func (f *FavoritesService) RemoveFavorite(ctx context.Context, accountID string, destinationID int) error {
	if err := f.requireDestination(destinationID); err != nil {
		return err
	}
	if err := f.favoritesRepo.Remove(ctx, accountID, destinationID); err != nil {
		return fmt.Errorf("remove favorite: %w", utils.ErrStorageError)
	}
	return nil
}

func (f *FavoritesService) IsFavorite(ctx context.Context, accountID string, destinationID int) (bool, error) {
	if err := f.requireDestination(destinationID); err != nil {
		return false, err
	}
	ok, err := f.favoritesRepo.Contains(ctx, accountID, destinationID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", utils.ErrStorageError)
	}
	return ok, nil
}

// ListFavorites resolves stored ids against the catalog, in id order. Ids no
// longer in the catalog are skipped.
func (f *FavoritesService) ListFavorites(ctx context.Context, accountID string) ([]response_models.Destination, error) {
	ids, err := f.favoritesRepo.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", utils.ErrStorageError)
	}

	out := make([]response_models.Destination, 0, len(ids))
	for _, id := range ids {
		d, err := f.catalogRepo.FindDestination(id)
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		d.IsFavorite = true
		out = append(out, *d)
	}
	return out, nil
}
