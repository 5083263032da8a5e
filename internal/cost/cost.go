// Package cost converts modeled I/O and network volumes into resource cost
// vectors: wall-clock time, energy, carbon and money. The model assumes
// perfect parallel speed-up across the nodes participating in an operation,
// with every participating node drawing power for the parallelized duration.
package cost

import "fmt"

const (
	mib            = 1024 * 1024
	secondsPerHour = 3600
)

// Config holds the hardware and pricing assumptions of one simulation run.
// It is threaded by value into a Model; there is no package-level state, so
// runs with different assumptions can execute side by side.
type Config struct {
	IOBytesPerSec  float64 // sequential read throughput of one node
	NetBytesPerSec float64 // network throughput between nodes
	PowerWatts     float64 // power draw of one busy node
	CarbonPerKWh   float64 // grid carbon intensity, grams CO2 per kWh
	PricePerKWh    float64 // energy price per kWh
}

// DefaultConfig returns the reference hardware profile: 100 MiB/s disks,
// 10 MiB/s network, 200 W nodes, 50 g/kWh grid carbon, 0.15 per kWh.
func DefaultConfig() Config {
	return Config{
		IOBytesPerSec:  100 * mib,
		NetBytesPerSec: 10 * mib,
		PowerWatts:     200,
		CarbonPerKWh:   50,
		PricePerKWh:    0.15,
	}
}

// InvalidTopologyError reports a non-positive node count passed to Compute
type InvalidTopologyError struct {
	Nodes int
}

func (e *InvalidTopologyError) Error() string {
	return fmt.Sprintf("invalid topology: %d nodes involved", e.Nodes)
}

// InvalidConfigError reports a config with non-positive throughput
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid cost config: %s", e.Reason)
}

// Vector is the resource cost of one operator execution. Vectors combine
// with Add; the zero Vector is the identity.
type Vector struct {
	TimeSec          float64
	ReadTimeSec      float64
	TransferTimeSec  float64
	EnergyKWh        float64
	CarbonGrams      float64
	Price            float64
	BytesRead        float64
	BytesTransferred float64
	NodesInvolved    int
}

// Add combines two cost vectors for pipeline accounting: every component is
// summed except NodesInvolved, which takes the maximum — the widest fan-out
// seen across the pipeline, not a count of distinct machines. Add is
// associative and commutative, so stage totals do not depend on fold order.
func (v Vector) Add(other Vector) Vector {
	nodes := v.NodesInvolved
	if other.NodesInvolved > nodes {
		nodes = other.NodesInvolved
	}
	return Vector{
		TimeSec:          v.TimeSec + other.TimeSec,
		ReadTimeSec:      v.ReadTimeSec + other.ReadTimeSec,
		TransferTimeSec:  v.TransferTimeSec + other.TransferTimeSec,
		EnergyKWh:        v.EnergyKWh + other.EnergyKWh,
		CarbonGrams:      v.CarbonGrams + other.CarbonGrams,
		Price:            v.Price + other.Price,
		BytesRead:        v.BytesRead + other.BytesRead,
		BytesTransferred: v.BytesTransferred + other.BytesTransferred,
		NodesInvolved:    nodes,
	}
}

// Model computes cost vectors under a fixed Config.
type Model struct {
	cfg Config
}

// NewModel validates the config and returns a model bound to it.
func NewModel(cfg Config) (*Model, error) {
	if cfg.IOBytesPerSec <= 0 {
		return nil, &InvalidConfigError{Reason: "IO throughput must be positive"}
	}
	if cfg.NetBytesPerSec <= 0 {
		return nil, &InvalidConfigError{Reason: "network throughput must be positive"}
	}
	if cfg.PowerWatts < 0 {
		return nil, &InvalidConfigError{Reason: "power draw must not be negative"}
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the model's configuration.
func (m *Model) Config() Config { return m.cfg }

// Compute translates modeled volumes into a cost vector.
//
// Read and transfer times are divided by the node count (perfect parallel
// speed-up); energy multiplies back by the node count because every
// participating node draws power concurrently for the shortened duration.
func (m *Model) Compute(bytesRead, bytesTransferred float64, nodesInvolved int) (Vector, error) {
	if nodesInvolved <= 0 {
		return Vector{}, &InvalidTopologyError{Nodes: nodesInvolved}
	}

	readTime := bytesRead / m.cfg.IOBytesPerSec
	transferTime := bytesTransferred / m.cfg.NetBytesPerSec
	totalTime := (readTime + transferTime) / float64(nodesInvolved)

	energy := m.cfg.PowerWatts * (totalTime / secondsPerHour) * float64(nodesInvolved) / 1000

	return Vector{
		TimeSec:          totalTime,
		ReadTimeSec:      readTime,
		TransferTimeSec:  transferTime,
		EnergyKWh:        energy,
		CarbonGrams:      energy * m.cfg.CarbonPerKWh,
		Price:            energy * m.cfg.PricePerKWh,
		BytesRead:        bytesRead,
		BytesTransferred: bytesTransferred,
		NodesInvolved:    nodesInvolved,
	}, nil
}
