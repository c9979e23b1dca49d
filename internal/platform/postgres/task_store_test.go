package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/postgres"
	"github.com/phrazzld/todos-api/internal/store"
	"github.com/phrazzld/todos-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTaskStore_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	base := postgres.NewPostgresTaskStore(db, nil)

	t.Run("get missing", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			_, err := base.WithTx(tx).Get(context.Background(), "does-not-exist")
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
		})
	})

	t.Run("put then get and list", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			s := base.WithTx(tx)
			ctx := context.Background()
			task := &domain.Task{TaskID: "it-1", Title: "A", Description: "d", Status: "Pending"}

			require.NoError(t, s.Put(ctx, task))
			got, err := s.Get(ctx, "it-1")
			require.NoError(t, err)
			assert.Equal(t, task, got)

			task.Status = "Done"
			require.NoError(t, s.Put(ctx, task))
			got, err = s.Get(ctx, "it-1")
			require.NoError(t, err)
			assert.Equal(t, "Done", got.Status)

			tasks, err := s.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, tasks, *task)

			ids, err := s.ListIDs(ctx)
			require.NoError(t, err)
			assert.Contains(t, ids, "it-1")
		})
	})

	t.Run("put if absent keeps the existing row", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			s := base.WithTx(tx)
			ctx := context.Background()
			first := &domain.Task{TaskID: "it-2", Title: "A", Description: "d", Status: "Pending"}

			require.NoError(t, s.PutIfAbsent(ctx, first))
			err := s.PutIfAbsent(ctx, &domain.Task{TaskID: "it-2", Title: "B", Description: "e", Status: "Done"})
			assert.ErrorIs(t, err, store.ErrConditionFailed)

			got, err := s.Get(ctx, "it-2")
			require.NoError(t, err)
			assert.Equal(t, first, got)
		})
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			s := base.WithTx(tx)
			ctx := context.Background()

			require.NoError(t, s.Put(ctx, &domain.Task{TaskID: "it-3", Title: "A", Description: "d", Status: "Pending"}))
			require.NoError(t, s.Delete(ctx, "it-3"))
			require.NoError(t, s.Delete(ctx, "it-3"))

			_, err := s.Get(ctx, "it-3")
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
		})
	})
}
