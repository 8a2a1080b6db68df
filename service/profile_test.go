package service

import (
	"context"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/voyager/adapters/store"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/internal/eth"
)

func loggedInProfileService(t *testing.T, backend *fakeBackend) *ProfileService {
	t.Helper()
	client, _ := newTestClient(t, backend, store.NewMemoryStore())
	require.NoError(t, client.Login(context.Background()))
	return NewProfileService(client, watermill.NopLogger{})
}

func TestResourcesSortedByAmount(t *testing.T) {
	backend := newFakeBackend(t)
	service := loggedInProfileService(t, backend)

	backend.onGraphQL = func(query string, vars map[string]any) any {
		return map[string]any{"data": map[string]any{
			"account": map[string]any{"resources": []map[string]any{
				{"symbol": "WOOD", "amount": "0"},
				{"symbol": "COIN", "amount": "125.5"},
				{"symbol": "STONE", "amount": "3"},
			}},
		}}
	}

	resources, err := service.Resources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 3)
	assert.Equal(t, "COIN", resources[0].Symbol)
	assert.Equal(t, "STONE", resources[1].Symbol)
	assert.Equal(t, "WOOD", resources[2].Symbol)
}

func TestStatsQueriesByOwnUID(t *testing.T) {
	backend := newFakeBackend(t)
	service := loggedInProfileService(t, backend)

	var queriedUID string
	backend.onGraphQL = func(query string, vars map[string]any) any {
		if strings.Contains(query, "questPointsLeaderboardByUID") {
			queriedUID = vars["uid"].(string)
			return map[string]any{"data": map[string]any{
				"questPointsLeaderboardByUID": map[string]any{
					"profile": map[string]any{
						"uid":         queriedUID,
						"displayName": "voyager",
						"level":       7,
						"questPoints": 420,
					},
					"position":         12,
					"coinRewardAmount": "1.5",
				},
			}}
		}
		return map[string]any{"data": map[string]any{}}
	}

	entry, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testUID, queriedUID)
	assert.Equal(t, int64(12), entry.Position)
	assert.Equal(t, "voyager", entry.Profile.DisplayName)
}

func TestStatsRequiresUID(t *testing.T) {
	backend := newFakeBackend(t)
	wallet, err := eth.ParseKey(testKey)
	require.NoError(t, err)

	cfg := testConfig(t, backend.srv.URL)
	client, err := NewSessionClient(context.Background(), wallet, cfg, store.NewMemoryStore(), nil, watermill.NopLogger{}, "")
	require.NoError(t, err)

	// No login: the client has no user id yet.
	service := NewProfileService(client, watermill.NopLogger{})
	_, err = service.Stats(context.Background())
	assert.ErrorIs(t, err, core.ErrUIDRequired)
}
