package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halo2agg/verifier-dag/transcript"
)

func TestDefaultIsPoseidonAndUsable(t *testing.T) {
	cfg := Default()
	require.Equal(t, transcript.HashPoseidon, cfg.HashKind())
	require.Equal(t, defaultLogLevel, cfg.Log.Level)
}

func TestLoadAppliesFlagOverrides(t *testing.T) {
	cfg, err := Load([]string{"--hash=sha", "--isFinalAggregator", "--targetProofMaxInstance=4"})
	require.NoError(t, err)
	require.Equal(t, transcript.HashSha, cfg.HashKind())
	require.True(t, cfg.IsFinalAggregator)
	require.Equal(t, 4, cfg.TargetProofMaxInstance)
}

func TestHashKindDefaultsOnUnknownValue(t *testing.T) {
	cfg := &Config{Hash: "not-a-hash"}
	require.Equal(t, transcript.HashPoseidon, cfg.HashKind())
}
