package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// FavoritesRepository stores destination ids per account in a redis set.
type FavoritesRepository interface {
	Add(ctx context.Context, accountID string, destinationID int) error
	Remove(ctx context.Context, accountID string, destinationID int) error
	Contains(ctx context.Context, accountID string, destinationID int) (bool, error)
	// List returns ids in ascending order.
	List(ctx context.Context, accountID string) ([]int, error)
}

type favoritesRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewFavoritesRepository(rdb *redis.Client, prefix string) FavoritesRepository {
	return &favoritesRepository{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (f *favoritesRepository) key(accountID string) string {
	return fmt.Sprintf("%s:favorites:%s", f.prefix, accountID)
}

func (f *favoritesRepository) Add(ctx context.Context, accountID string, destinationID int) error {
	return f.rdb.SAdd(ctx, f.key(accountID), strconv.Itoa(destinationID)).Err()
}

func (f *favoritesRepository) Remove(ctx context.Context, accountID string, destinationID int) error {
	return f.rdb.SRem(ctx, f.key(accountID), strconv.Itoa(destinationID)).Err()
}

func (f *favoritesRepository) Contains(ctx context.Context, accountID string, destinationID int) (bool, error) {
	return f.rdb.SIsMember(ctx, f.key(accountID), strconv.Itoa(destinationID)).Result()
}

func (f *favoritesRepository) List(ctx context.Context, accountID string) ([]int, error) {
	members, err := f.rdb.SMembers(ctx, f.key(accountID)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			// foreign value in the set; skip it
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
