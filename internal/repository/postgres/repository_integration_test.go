//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/sentiric/sentiric-numbering-service/internal/database"
	"github.com/sentiric/sentiric-numbering-service/internal/service/numbering"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("numbering"),
		tcpostgres.WithUsername("numbering"),
		tcpostgres.WithPassword("numbering"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewConnection(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.EnsureSchema(ctx, pool))
	// Şema ikinci kez kurulduğunda hata vermemeli.
	require.NoError(t, database.EnsureSchema(ctx, pool))
	return pool
}

func TestRepositoryPlans(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool, zerolog.Nop())
	ctx := context.Background()

	plans, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)

	first := numbering.Plan{Region: "NZ", Document: "id: NZ\ncountry_code: 64\n", UpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.SavePlan(ctx, first))

	got, err := repo.FindPlan(ctx, "NZ")
	require.NoError(t, err)
	assert.Equal(t, first.Document, got.Document)
	assert.WithinDuration(t, first.UpdatedAt, got.UpdatedAt, time.Millisecond)

	// Aynı bölge tekrar kaydedilince güncellenir.
	second := numbering.Plan{Region: "NZ", Document: "id: NZ\ncountry_code: 64\nnational_prefix: '9'\n", UpdatedAt: first.UpdatedAt.Add(time.Minute)}
	require.NoError(t, repo.SavePlan(ctx, second))
	require.NoError(t, repo.SavePlan(ctx, numbering.Plan{Region: "AU", Document: "id: AU\ncountry_code: 61\n", UpdatedAt: time.Now().UTC()}))

	plans, err = repo.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "AU", plans[0].Region)
	assert.Equal(t, "NZ", plans[1].Region)
	assert.Equal(t, second.Document, plans[1].Document)
	assert.WithinDuration(t, second.UpdatedAt, plans[1].UpdatedAt, time.Millisecond)

	rows, err := repo.DeletePlan(ctx, "NZ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DeletePlan(ctx, "NZ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	_, err = repo.FindPlan(ctx, "NZ")
	assert.ErrorIs(t, err, numbering.ErrNotFound)
}

func TestRepositoryRegionCheck(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool, zerolog.Nop())
	ctx := context.Background()

	for _, region := range []string{"nz", "NZL", ""} {
		err := repo.SavePlan(ctx, numbering.Plan{Region: region, Document: "id: NZ\n", UpdatedAt: time.Now().UTC()})
		assert.ErrorIs(t, err, numbering.ErrInvalidRegion, region)
	}
}

func TestRepositoryTableMissing(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool, zerolog.Nop())
	ctx := context.Background()

	_, err := pool.Exec(ctx, "DROP TABLE numbering_plans")
	require.NoError(t, err)

	_, err = repo.ListPlans(ctx)
	assert.ErrorIs(t, err, numbering.ErrTableMissing)

	_, err = repo.FindPlan(ctx, "NZ")
	assert.ErrorIs(t, err, numbering.ErrTableMissing)
}
