package voronoi

import (
	"context"
	"errors"
	"testing"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/stretchr/testify/require"
)

func TestComputeAll(t *testing.T) {
	var regs []*client.Registry
	for seed := int64(1); seed <= 8; seed++ {
		reg, err := client.NewRegistry(randomClients(seed, 100, 100))
		require.NoError(t, err)
		regs = append(regs, reg)
	}

	diagrams, err := ComputeAll(context.Background(), regs)
	require.NoError(t, err)
	require.Len(t, diagrams, len(regs))

	for i, reg := range regs {
		single, err := New().Run(reg)
		require.NoError(t, err)
		require.Equal(t, topology(single), topology(diagrams[i]))
	}
}

func TestComputeAllCancelled(t *testing.T) {
	reg, err := client.NewRegistry(randomClients(1, 10, 10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	diagrams, err := ComputeAll(ctx, []*client.Registry{reg, reg})
	require.Nil(t, diagrams)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestComputeAllNilRegistry(t *testing.T) {
	_, err := ComputeAll(context.Background(), []*client.Registry{nil})
	require.True(t, errors.Is(err, client.ErrInvalidInput))
}
