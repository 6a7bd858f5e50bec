// Package mcf holds the identifiers, sentinels, and configuration knobs
// shared by every stage of the multi-commodity flow solver (path tree,
// annotation policies, edge iterators, the Dijkstra kernel, the flow pusher
// and the cycle eliminator). It has no dependencies of its own so that every
// other internal/mcf/* package, and pkg/domain, can import it without cycles.
package mcf

import "math"

// NodeID indexes a node in the link graph job. Nodes are numbered 0..Size-1.
type NodeID int32

// StationID is the opaque station identifier exposed by the job for a node.
type StationID string

// ShareID identifies one entry in a FlowStat's share map.
type ShareID uint64

const (
	// Unreachable is the UINT_MAX sentinel for an unreached path distance.
	// A chain of finite positive edge distances can never sum to this value
	// for any graph size the solver is expected to handle.
	Unreachable uint64 = math.MaxUint64

	// CapInfinity is the additive identity used for a source-root's
	// capacity (conceptually ∞, so min(x, CapInfinity) == x).
	CapInfinity uint64 = math.MaxUint64

	// FreeCapUnreached is the INT_MIN sentinel for a disconnected path's
	// free capacity.
	FreeCapUnreached int64 = math.MinInt64

	// FreeCapInfinity is the free capacity of a source root.
	FreeCapInfinity int64 = math.MaxInt64

	// SaturationUnlimited disables the per-edge saturation cap: the
	// UINT_MAX sentinel value for max_saturation.
	SaturationUnlimited uint64 = math.MaxUint64

	// WorstCapacityRatio is returned by CapacityRatio for a disconnected
	// path node, so it always sorts worst under the Capacity annotation.
	WorstCapacityRatio int64 = math.MinInt64

	// capacityRatioScale is the fixed-point scale used to turn
	// free_capacity / capacity into a comparable integer.
	capacityRatioScale int64 = 1 << 20
)

// CapacityRatioScale exposes the fixed-point scale used by CapacityRatio, so
// callers that need to interpret a raw ratio value can unscale it.
const CapacityRatioScale = capacityRatioScale

// CapRatio scales free/total into a comparable fixed-point integer. A
// disconnected path (total == 0) sorts worst via WorstCapacityRatio.
func CapRatio(free int64, total uint64) int64 {
	if total == 0 || total == CapInfinity {
		if total == CapInfinity {
			// A source root is "infinitely capacious" — treat it as the
			// best possible ratio rather than disconnected.
			return math.MaxInt64
		}
		return WorstCapacityRatio
	}
	return (free * capacityRatioScale) / int64(total)
}

// Settings are the two knobs consumed from job settings.
type Settings struct {
	// Accuracy controls increment granularity: target = demand / Accuracy.
	Accuracy uint64
	// MaxSaturation is a percentage in [1,100], or SaturationUnlimited to
	// disable the pass-1 saturation cap.
	MaxSaturation uint64
}

// ScaledCapacity applies the max_saturation cap to a raw edge capacity:
// cap = max(1, raw * max_saturation / 100) unless saturation is unlimited.
func ScaledCapacity(raw, maxSaturation uint64) uint64 {
	if maxSaturation == SaturationUnlimited {
		return raw
	}
	scaled := raw * maxSaturation / 100
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}
