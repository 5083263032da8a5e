package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	// Round numbers keep the expected values exact.
	return Config{
		IOBytesPerSec:  100,
		NetBytesPerSec: 10,
		PowerWatts:     200,
		CarbonPerKWh:   50,
		PricePerKWh:    0.15,
	}
}

func TestComputeSingleNode(t *testing.T) {
	m, err := NewModel(testConfig())
	require.NoError(t, err)

	v, err := m.Compute(1000, 100, 1)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, v.ReadTimeSec, 1e-12)     // 1000 B / 100 B/s
	assert.InDelta(t, 10.0, v.TransferTimeSec, 1e-12) // 100 B / 10 B/s
	assert.InDelta(t, 20.0, v.TimeSec, 1e-12)
	assert.Equal(t, 1, v.NodesInvolved)

	// 200 W for 20 s on one node.
	wantEnergy := 200.0 * (20.0 / 3600.0) / 1000.0
	assert.InDelta(t, wantEnergy, v.EnergyKWh, 1e-12)
	assert.InDelta(t, wantEnergy*50, v.CarbonGrams, 1e-12)
	assert.InDelta(t, wantEnergy*0.15, v.Price, 1e-12)
}

func TestComputeParallelSpeedup(t *testing.T) {
	m, err := NewModel(testConfig())
	require.NoError(t, err)

	one, err := m.Compute(10000, 0, 1)
	require.NoError(t, err)
	ten, err := m.Compute(10000, 0, 10)
	require.NoError(t, err)

	// Perfect parallelism: a tenth of the time...
	assert.InDelta(t, one.TimeSec/10, ten.TimeSec, 1e-12)
	// ...but ten nodes drawing power concurrently, so equal energy.
	assert.InDelta(t, one.EnergyKWh, ten.EnergyKWh, 1e-12)
}

func TestComputeInvalidTopology(t *testing.T) {
	m, err := NewModel(testConfig())
	require.NoError(t, err)

	for _, nodes := range []int{0, -1} {
		_, err := m.Compute(100, 0, nodes)
		var topo *InvalidTopologyError
		require.ErrorAs(t, err, &topo)
		assert.Equal(t, nodes, topo.Nodes)
	}
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	bad := testConfig()
	bad.IOBytesPerSec = 0
	_, err := NewModel(bad)
	assert.Error(t, err)

	bad = testConfig()
	bad.NetBytesPerSec = -1
	_, err = NewModel(bad)
	assert.Error(t, err)
}

func TestComputeIsDeterministic(t *testing.T) {
	m, err := NewModel(DefaultConfig())
	require.NoError(t, err)

	first, err := m.Compute(123456, 7890, 42)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := m.Compute(123456, 7890, 42)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAddIsCommutativeAndAssociative(t *testing.T) {
	a := Vector{TimeSec: 1, EnergyKWh: 0.5, CarbonGrams: 2, Price: 0.1, BytesRead: 100, BytesTransferred: 10, NodesInvolved: 3}
	b := Vector{TimeSec: 2, EnergyKWh: 0.25, CarbonGrams: 1, Price: 0.2, BytesRead: 50, BytesTransferred: 20, NodesInvolved: 7}
	c := Vector{TimeSec: 4, EnergyKWh: 1, CarbonGrams: 8, Price: 0.4, BytesRead: 25, BytesTransferred: 40, NodesInvolved: 1}

	assert.Equal(t, a.Add(b), b.Add(a))
	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestAddTakesMaxNodes(t *testing.T) {
	a := Vector{NodesInvolved: 3}
	b := Vector{NodesInvolved: 1000}

	sum := a.Add(b)
	assert.Equal(t, 1000, sum.NodesInvolved)
	// Widest fan-out, not a sum of machines.
	assert.Equal(t, sum, b.Add(a))
}

func TestZeroVectorIsIdentity(t *testing.T) {
	a := Vector{TimeSec: 1.5, EnergyKWh: 0.5, CarbonGrams: 2, Price: 0.1, BytesRead: 100, BytesTransferred: 10, NodesInvolved: 12}

	assert.Equal(t, a, a.Add(Vector{}))
	assert.Equal(t, a, Vector{}.Add(a))
}
