package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/models"
)

func TestIdentityFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/settlements/history?building_id=1&client_id=10&object_number=A1&type=apartment&floor=2", nil)

	identity, ok := identityFromQuery(r)
	require.True(t, ok)
	assert.Equal(t, models.UnitIdentity{
		BuildingID:   1,
		ClientID:     10,
		ObjectNumber: "A1",
		Type:         models.UnitTypeApartment,
		Floor:        2,
	}, identity)
}

func TestIdentityFromQueryNegativeFloor(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/settlements/history?building_id=1&client_id=10&object_number=G1&type=garage&floor=-1", nil)

	identity, ok := identityFromQuery(r)
	require.True(t, ok)
	assert.Equal(t, -1, identity.Floor)
	assert.Equal(t, models.UnitTypeGarage, identity.Type)
}

func TestIdentityFromQueryMissingFields(t *testing.T) {
	cases := map[string]string{
		"no building":      "/x?client_id=10&object_number=A1&type=apartment&floor=1",
		"no client":        "/x?building_id=1&object_number=A1&type=apartment&floor=1",
		"no object number": "/x?building_id=1&client_id=10&type=apartment&floor=1",
		"no type":          "/x?building_id=1&client_id=10&object_number=A1&floor=1",
		"bad floor":        "/x?building_id=1&client_id=10&object_number=A1&type=apartment&floor=ground",
	}

	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("GET", url, nil)
			_, ok := identityFromQuery(r)
			assert.False(t, ok)
		})
	}
}
