package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/salestrain-api/internal/catalog"
	"github.com/noah-isme/salestrain-api/internal/repository"
	"github.com/noah-isme/salestrain-api/internal/store"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func seededScenarioRepo(t *testing.T, kv store.KV) repository.ScenarioRepository {
	t.Helper()

	repo := repository.NewScenarioRepository(kv, nil, testLogger())
	bank, err := catalog.Default()
	require.NoError(t, err)
	for _, scenario := range bank.Scenarios {
		require.NoError(t, repo.Put(context.Background(), scenario.ID, scenario))
	}
	return repo
}
