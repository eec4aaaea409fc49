package main

import (
	"testing"

	"snake-search/game"
	"snake-search/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategies(t *testing.T) {
	got, err := parseStrategies("bfs, AStar", 0)
	require.NoError(t, err)
	assert.Equal(t, []types.Strategy{types.BFS, types.AStar}, got)

	got, err = parseStrategies("human,bfs", 4)
	require.NoError(t, err)
	assert.Equal(t, []types.Strategy{types.Human, types.BFS, types.BFS, types.BFS}, got)

	got, err = parseStrategies("astar,bfs,human", 1)
	require.NoError(t, err)
	assert.Equal(t, []types.Strategy{types.AStar}, got)

	_, err = parseStrategies("bfs,robot", 0)
	assert.Error(t, err)
}

func TestBuildConfigFromFlags(t *testing.T) {
	cfg, err := buildConfig("", 30, "astar", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Size)
	assert.Equal(t, game.DefaultWalls(30), cfg.Walls)
	assert.Equal(t, []types.Strategy{types.AStar, types.AStar}, cfg.Strategies)
	assert.Equal(t, uint64(5), cfg.Seed)

	_, err = buildConfig("", 2, "bfs", 1, 0)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}
