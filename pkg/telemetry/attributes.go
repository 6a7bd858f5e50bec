package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Standard attribute keys.
const (
	// Job
	AttrJobID       = "job.id"
	AttrJobStations = "job.stations"
	AttrJobEdges    = "job.edges"

	// Solve
	AttrPassName          = "solve.pass"
	AttrPassIterations    = "solve.iterations"
	AttrTotalFlowPushed   = "solve.total_flow_pushed"
	AttrCyclesEliminated  = "solve.cycles_eliminated"
	AttrUnsatisfiedDemand = "solve.unsatisfied_demand"

	// Validation
	AttrValidationLevel  = "validation.level"
	AttrValidationErrors = "validation.errors"
	AttrValidationPassed = "validation.passed"
)

// JobAttributes returns the attributes describing the job being solved.
func JobAttributes(jobID string, stations, edges int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrJobID, jobID),
		attribute.Int(AttrJobStations, stations),
		attribute.Int(AttrJobEdges, edges),
	}
}

// PassAttributes returns the attributes describing the outcome of one solve pass.
func PassAttributes(pass string, iterations int, totalFlowPushed uint64, cyclesEliminated int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrPassName, pass),
		attribute.Int(AttrPassIterations, iterations),
		attribute.Int64(AttrTotalFlowPushed, int64(totalFlowPushed)),
		attribute.Int(AttrCyclesEliminated, cyclesEliminated),
	}
}

// ValidationAttributes returns the attributes describing a job validation pass.
func ValidationAttributes(level string, errorsCount int, passed bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrValidationLevel, level),
		attribute.Int(AttrValidationErrors, errorsCount),
		attribute.Bool(AttrValidationPassed, passed),
	}
}
