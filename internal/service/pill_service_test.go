package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
)

func newLoggedIn(t *testing.T) (*AuthService, *fakeAPI) {
	t.Helper()

	auth, fake, _ := newTestAuth()
	_, err := auth.Login(context.Background(), testTelegramID, "jane", "secret123")
	require.NoError(t, err)
	return auth, fake
}

func TestPillServiceRequiresSession(t *testing.T) {
	t.Parallel()

	auth, fake, _ := newTestAuth()
	pills := NewPillService(fake, auth, zap.NewNop())

	_, err := pills.List(context.Background(), testTelegramID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, fake.count("ListPills"))
}

func TestPillServiceValidation(t *testing.T) {
	t.Parallel()

	auth, fake := newLoggedIn(t)
	pills := NewPillService(fake, auth, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		fields model.PillFields
		want   string
	}{
		{fields: model.PillFields{Name: " ", TotalCapsules: 10}, want: "Pill name is required"},
		{fields: model.PillFields{Name: "Iron", TotalCapsules: 0}, want: "Total capsules must be at least 1"},
		{fields: model.PillFields{Name: "Iron", TotalCapsules: 5, CapsulesPerServing: 4}, want: "Capsules per serving must be between 0 and 3"},
	}

	for _, tt := range tests {
		_, err := pills.Create(ctx, testTelegramID, tt.fields)
		assert.EqualError(t, err, tt.want)
	}
	assert.Zero(t, fake.count("CreatePill"))
}

func TestPillCatalogReflectsSuccessfulChanges(t *testing.T) {
	t.Parallel()

	auth, fake := newLoggedIn(t)
	pills := NewPillService(fake, auth, zap.NewNop())
	ctx := context.Background()

	list, err := pills.List(ctx, testTelegramID)
	require.NoError(t, err)
	assert.Empty(t, list)

	aspirin, err := pills.Create(ctx, testTelegramID, model.PillFields{Name: " Aspirin ", TotalCapsules: 30, CapsulesPerServing: 1})
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", aspirin.Name)

	_, err = pills.Create(ctx, testTelegramID, model.PillFields{Name: "Iron", TotalCapsules: 20})
	require.NoError(t, err)

	_, err = pills.Update(ctx, testTelegramID, aspirin.ID, model.PillFields{Name: "Aspirin 100", TotalCapsules: 28, CapsulesPerServing: 2})
	require.NoError(t, err)

	got, err := pills.Get(ctx, testTelegramID, aspirin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin 100", got.Name)

	require.NoError(t, pills.Delete(ctx, testTelegramID, aspirin.ID))

	catalog, err := pills.Catalog(ctx, testTelegramID)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Iron", catalog[0].Name)
	assert.Equal(t, 1, fake.count("ListPills"))

	_, err = pills.Get(ctx, testTelegramID, aspirin.ID)
	assert.ErrorIs(t, err, ErrPillNotFound)
}

func TestPillCatalogUnchangedOnFailure(t *testing.T) {
	t.Parallel()

	auth, fake := newLoggedIn(t)
	pills := NewPillService(fake, auth, zap.NewNop())
	ctx := context.Background()

	created, err := pills.Create(ctx, testTelegramID, model.PillFields{Name: "Iron", TotalCapsules: 20})
	require.NoError(t, err)
	_, err = pills.List(ctx, testTelegramID)
	require.NoError(t, err)

	fake.failWith = &api.Error{StatusCode: 500, Message: "Failed to delete pill"}
	err = pills.Delete(ctx, testTelegramID, created.ID)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to delete pill", apiErr.Message)

	catalog, err := pills.Catalog(ctx, testTelegramID)
	require.NoError(t, err)
	assert.Len(t, catalog, 1)
}
