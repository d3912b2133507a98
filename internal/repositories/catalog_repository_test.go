package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_LoadsSeed(t *testing.T) {
	repo, err := NewCatalogRepository()
	require.NoError(t, err)

	dests := repo.Destinations()
	require.Len(t, dests, 12)
	assert.Equal(t, "Matsumoto Castle", dests[0].Name)
	assert.Equal(t, "Osaka, Japan", dests[0].Location)

	d, err := repo.FindDestination(6)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Taj Mahal", d.Name)

	missing, err := repo.FindDestination(999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NotEmpty(t, repo.Hotels())
	assert.Equal(t, []string{"WiFi", "Pool", "Spa", "Gym"}, repo.Hotels()[0].Amenities)
	assert.Equal(t, "AI 101", repo.Flights()[0].FlightNumber)
	assert.NotEmpty(t, repo.Cars())
	assert.NotEmpty(t, repo.Meals())
	assert.NotEmpty(t, repo.Packages())
}

func TestCatalogRepository_ReturnsCopies(t *testing.T) {
	repo, err := NewCatalogRepository()
	require.NoError(t, err)

	dests := repo.Destinations()
	dests[0].Name = "changed"

	assert.Equal(t, "Matsumoto Castle", repo.Destinations()[0].Name)
}

func TestCatalogRepository_RejectsBadSeed(t *testing.T) {
	_, err := newCatalogRepository([]byte(`{"destinations":[{"id":1},{"id":1}]}`))
	assert.Error(t, err)

	_, err = newCatalogRepository([]byte(`not json`))
	assert.Error(t, err)
}
