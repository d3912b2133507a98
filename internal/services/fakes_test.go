package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"travelwise/internal/models/db_models"
)

var errFakeStore = errors.New("store unavailable")

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account
	failAll  bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*db_models.Account{}}
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeStore
	}
	// mimic the BeforeCreate hook
	if err := account.BeforeCreate(nil); err != nil {
		return err
	}
	f.accounts[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeStore
	}
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeStore
	}
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	a, err := f.FindByEmail(ctx, email)
	return a != nil, err
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*db_models.Session
	ttls     map[string]time.Duration
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*db_models.Session{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSessionRepo) Save(_ context.Context, s *db_models.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.AccountID] = s
	f.ttls[s.AccountID] = ttl
	return nil
}

func (f *fakeSessionRepo) Find(_ context.Context, accountID string) (*db_models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[accountID], nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accountID)
	return nil
}

type fakeFavoritesRepo struct {
	mu   sync.Mutex
	sets map[string]map[int]struct{}
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{sets: map[string]map[int]struct{}{}}
}

func (f *fakeFavoritesRepo) Add(_ context.Context, accountID string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[accountID] == nil {
		f.sets[accountID] = map[int]struct{}{}
	}
	f.sets[accountID][id] = struct{}{}
	return nil
}

func (f *fakeFavoritesRepo) Remove(_ context.Context, accountID string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sets[accountID], id)
	return nil
}

func (f *fakeFavoritesRepo) Contains(_ context.Context, accountID string, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sets[accountID][id]
	return ok, nil
}

func (f *fakeFavoritesRepo) List(_ context.Context, accountID string) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.sets[accountID]))
	for id := range f.sets[accountID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
