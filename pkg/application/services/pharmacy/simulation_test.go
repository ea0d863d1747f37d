package pharmacy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

func TestSimulate(t *testing.T) {
	tea := newDrug(t, entities.HerbalTea, 2, 10)
	aspirin := newDrug(t, "Aspirin", 2, 10, entities.WithStock(1))
	p := newPharmacy(t, []*entities.Drug{tea, aspirin})

	result, err := Simulate(context.Background(), p, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Days)
	require.Len(t, result.Initial, 2)
	assert.Equal(t, 10, result.Initial[0].Benefit)
	assert.True(t, result.Initial[0].Registered)
	assert.False(t, result.Initial[1].Registered)

	require.Len(t, result.Snapshots, 3)
	// tea: 2/10 -> 1/11 -> 0/12 -> -1/14
	assert.Equal(t, []int{11, 12, 14}, []int{
		result.Snapshots[0].Drugs[0].Benefit,
		result.Snapshots[1].Drugs[0].Benefit,
		result.Snapshots[2].Drugs[0].Benefit,
	})
	// aspirin: 2/10 -> 1/9 -> 0/8 -> -1/6
	final := result.Final()
	assert.Equal(t, -1, final[1].ExpiresIn)
	assert.Equal(t, 6, final[1].Benefit)

	// both drugs are expiring every day, aspirin is also low on stock
	assert.Len(t, result.Alerts, 9)
}

func TestSimulate_ZeroDays(t *testing.T) {
	p := newPharmacy(t, []*entities.Drug{newDrug(t, entities.Fervex, 20, 10)})

	result, err := Simulate(context.Background(), p, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Snapshots)
	assert.Equal(t, result.Initial, result.Final())
	assert.Empty(t, result.Alerts)
}

func TestSimulate_NegativeDays(t *testing.T) {
	p := newPharmacy(t, nil)

	_, err := Simulate(context.Background(), p, -1)
	assert.True(t, errors.Is(err, entities.ErrInvalidArgument))
}

func TestSimulate_Cancelled(t *testing.T) {
	drug := newDrug(t, entities.Dafalgan, 20, 10)
	p := newPharmacy(t, []*entities.Drug{drug})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, p, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 20, drug.ExpiresIn)
}
