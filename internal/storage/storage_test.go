package storage_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
	"github.com/kmanditereza/industrial-ai-agent/internal/storage"
	"github.com/kmanditereza/industrial-ai-agent/migrations"
)

// testDB holds a shared test database connection for all tests in this package.
var testDB *storage.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "plant",
			"POSTGRES_PASSWORD": "plant",
			"POSTGRES_DB":       "plantdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://plant:plant@%s:%s/plantdb?sslmode=disable", host, port.Port())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	testDB, err = storage.New(ctx, dsn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create storage: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.RunMigrations(ctx, migrations.FS); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestGetRecipeOrderedByTank(t *testing.T) {
	recipe, err := testDB.GetRecipe(context.Background(), "Product A")
	require.NoError(t, err)

	assert.Equal(t, "Product A", recipe.ProductName)
	assert.True(t, recipe.Found())
	require.Equal(t, []model.RecipeLine{
		{MaterialName: "Water", TankID: 1, QuantityPerBatch: 10.0},
		{MaterialName: "Acid", TankID: 2, QuantityPerBatch: 5.0},
	}, recipe.Lines)
}

func TestGetRecipeUnknownProductIsEmptyNotError(t *testing.T) {
	recipe, err := testDB.GetRecipe(context.Background(), "No Such Product")
	require.NoError(t, err, "an unknown product is a valid empty result, not a failure")
	assert.False(t, recipe.Found())
	assert.NotNil(t, recipe.Lines)
	assert.Empty(t, recipe.Lines)
}

func TestGetRecipeParameterizedAgainstInjection(t *testing.T) {
	// A hostile product name must be treated as data, not SQL.
	recipe, err := testDB.GetRecipe(context.Background(), "'; DROP TABLE products; --")
	require.NoError(t, err)
	assert.Empty(t, recipe.Lines)

	// products is still there.
	again, err := testDB.GetRecipe(context.Background(), "Product A")
	require.NoError(t, err)
	assert.True(t, again.Found())
}

func TestGetRecipeSecondProduct(t *testing.T) {
	recipe, err := testDB.GetRecipe(context.Background(), "Product B")
	require.NoError(t, err)
	require.Len(t, recipe.Lines, 2)
	assert.Equal(t, "Water", recipe.Lines[0].MaterialName)
	assert.Equal(t, "Base", recipe.Lines[1].MaterialName)
	assert.Equal(t, 3, recipe.Lines[1].TankID)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	require.NoError(t, testDB.RunMigrations(context.Background(), migrations.FS))
}
