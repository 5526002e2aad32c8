package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	t.Run("absent collection yields nil without error", func(t *testing.T) {
		data, err := store.GetCollection(ctx, repository.CollectionTasks)
		assert.NoError(t, err)
		assert.Nil(t, data)
	})
	t.Run("saved data comes back", func(t *testing.T) {
		payload := []byte(`[{"id":"task_1"}]`)
		require.NoError(t, store.SaveCollection(ctx, repository.CollectionTasks, payload))
		data, err := store.GetCollection(ctx, repository.CollectionTasks)
		assert.NoError(t, err)
		assert.Equal(t, payload, data)
	})
	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.SaveCollection(ctx, repository.CollectionTasks, []byte(`[]`)))
		data, err := store.GetCollection(ctx, repository.CollectionTasks)
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)
	})
}

func TestCollectionsMutate(t *testing.T) {
	ctx := context.Background()
	collections := repository.NewCollections(repository.NewMemoryStore())
	t.Run("mutation writes the returned records", func(t *testing.T) {
		err := repository.Mutate(ctx, collections, repository.CollectionPlans, func(plans []entity.Plan) ([]entity.Plan, error) {
			assert.Empty(t, plans)
			return append(plans, entity.Plan{ID: "plan_1", UserID: "user_1", Title: "write tests"}), nil
		})
		assert.NoError(t, err)
		plans, err := repository.Load[entity.Plan](ctx, collections, repository.CollectionPlans)
		assert.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "plan_1", plans[0].ID)
	})
	t.Run("failing mutation writes nothing", func(t *testing.T) {
		err := repository.Mutate(ctx, collections, repository.CollectionPlans, func(plans []entity.Plan) ([]entity.Plan, error) {
			return nil, errors.New("abort")
		})
		assert.Error(t, err)
		plans, err := repository.Load[entity.Plan](ctx, collections, repository.CollectionPlans)
		assert.NoError(t, err)
		assert.Len(t, plans, 1)
	})
}
