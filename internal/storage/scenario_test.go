package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/shardsim/internal/simulate"
)

const stockSchemaJSON = `{
	"title": "Stock",
	"type": "object",
	"properties": {
		"IDP": { "type": "integer" },
		"IDW": { "type": "integer" }
	}
}`

const productSchemaJSON = `{
	"title": "Product",
	"type": "object",
	"properties": {
		"IDP": { "type": "integer" },
		"brand": { "type": "string" },
		"categories": {
			"type": "array",
			"items": { "type": "string" }
		}
	}
}`

func writeScenario(t *testing.T, scenarioYAML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stock.json"), []byte(stockSchemaJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "product.json"), []byte(productSchemaJSON), 0o644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))
	return path
}

const baseScenario = `
database:
  name: DB1
  nodes: 1000
collections:
  - name: Stock
    schema: stock.json
    count: 21000
  - name: Product
    schema: product.json
    count: 100000
    cardinalities:
      categories: 2
shard_stats:
  - collection: Stock
    key: IDW
    distinct: 200
queries:
  - name: filter stock
    stages:
      - op: filter
        source: Stock
        key: IDW
        selectivity: 0.0001
        shard_key: IDW
        index: true
  - name: aggregate then join
    stages:
      - op: aggregate
        source: Stock
        group_key: IDP
        shard_key: IDW
        distinct_groups: 105
      - op: join
        outer: Product
        inner: prev
        key: IDP
        outer_shard_key: IDP
        inner_shard_key: IDP
`

func TestLoadScenarioAndBuild(t *testing.T) {
	path := writeScenario(t, baseScenario)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "DB1", sc.Database.Name)
	assert.Equal(t, 1000, sc.Database.Nodes)
	require.Len(t, sc.Collections, 2)
	assert.Equal(t, int64(2), sc.Collections[1].Cardinalities["categories"])

	rt, err := sc.Build(nil)
	require.NoError(t, err)

	stock, err := rt.DB.Collection("Stock")
	require.NoError(t, err)
	assert.Equal(t, int64(40), stock.DocSize) // two integers at 12+8

	product, err := rt.DB.Collection("Product")
	require.NoError(t, err)
	// IDP (20) + brand (92) + categories array (12 + 2 × 92)
	assert.Equal(t, int64(20+92+12+2*92), product.DocSize)
}

func TestRunQueries(t *testing.T) {
	path := writeScenario(t, baseScenario)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	rt, err := sc.Build(nil)
	require.NoError(t, err)

	runs, err := rt.RunQueries()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	first := runs[0]
	assert.Equal(t, "filter stock", first.Name)
	require.Len(t, first.Pipeline.Stages(), 1)
	assert.Equal(t, simulate.StrategyShardIndex, first.Pipeline.Stages()[0].Strategy)
	assert.Equal(t, 1, first.Pipeline.TotalCost().NodesInvolved)

	second := runs[1]
	require.Len(t, second.Pipeline.Stages(), 2)
	agg, join := second.Pipeline.Stages()[0], second.Pipeline.Stages()[1]
	assert.Equal(t, simulate.StrategyShuffleAggregate, agg.Strategy)
	assert.Equal(t, simulate.StrategyShardNestedLoop, join.Strategy)
	// The join read the aggregate's output, not a catalog collection.
	assert.InDelta(t, 105.0*100, agg.OutputSize, 1e-9)
	assert.Equal(t, agg.Cost.Add(join.Cost), second.Pipeline.TotalCost())
}

func TestShardStats(t *testing.T) {
	path := writeScenario(t, baseScenario)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	rt, err := sc.Build(nil)
	require.NoError(t, err)

	stats, err := rt.ShardStats()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.InDelta(t, 21.0, stats[0].DocsPerNode, 1e-9)
	assert.InDelta(t, 0.2, stats[0].DistinctPerNode, 1e-9)
}

func TestScenarioOverrides(t *testing.T) {
	path := writeScenario(t, `
database:
  name: DB1
  nodes: 4
cost:
  io_bytes_per_sec: 100
  net_bytes_per_sec: 10
params:
  group_ratio: 0.25
sizing:
  key_overhead: 4
  types:
    integer: 16
collections:
  - name: Stock
    schema: stock.json
    count: 10
queries:
  - name: aggregate
    stages:
      - op: aggregate
        source: Stock
        group_key: IDP
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	rt, err := sc.Build(nil)
	require.NoError(t, err)

	stock, err := rt.DB.Collection("Stock")
	require.NoError(t, err)
	assert.Equal(t, int64(2*(4+16)), stock.DocSize)

	runs, err := rt.RunQueries()
	require.NoError(t, err)
	// 10 rows × overridden group ratio 0.25
	assert.InDelta(t, 2.5, runs[0].Pipeline.Stages()[0].OutputRows, 1e-9)
}

func TestScenarioValidation(t *testing.T) {
	t.Run("missing database name", func(t *testing.T) {
		path := writeScenario(t, "database:\n  nodes: 10\ncollections:\n  - name: S\n    schema: stock.json\n    count: 1\n")
		_, err := LoadScenario(path)
		assert.Error(t, err)
	})
	t.Run("non-positive nodes", func(t *testing.T) {
		path := writeScenario(t, "database:\n  name: DB\n  nodes: 0\ncollections:\n  - name: S\n    schema: stock.json\n    count: 1\n")
		_, err := LoadScenario(path)
		assert.Error(t, err)
	})
	t.Run("no collections", func(t *testing.T) {
		path := writeScenario(t, "database:\n  name: DB\n  nodes: 10\n")
		_, err := LoadScenario(path)
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestRunQueriesFailures(t *testing.T) {
	header := `
database:
  name: DB1
  nodes: 10
collections:
  - name: Stock
    schema: stock.json
    count: 100
`
	cases := []struct {
		name  string
		query string
	}{
		{"unknown operator", "queries:\n  - name: q\n    stages:\n      - op: scan\n        source: Stock\n"},
		{"prev in first stage", "queries:\n  - name: q\n    stages:\n      - op: filter\n        source: prev\n        key: IDW\n        selectivity: 0.5\n"},
		{"unknown collection", "queries:\n  - name: q\n    stages:\n      - op: filter\n        source: Orders\n        key: IDW\n        selectivity: 0.5\n"},
		{"bad selectivity", "queries:\n  - name: q\n    stages:\n      - op: filter\n        source: Stock\n        key: IDW\n        selectivity: 2.0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, header+tc.query)
			sc, err := LoadScenario(path)
			require.NoError(t, err)
			rt, err := sc.Build(nil)
			require.NoError(t, err)
			_, err = rt.RunQueries()
			assert.Error(t, err)
		})
	}
}

func TestLoadSchemaErrors(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadSchema(bad)
	assert.Error(t, err)
}
