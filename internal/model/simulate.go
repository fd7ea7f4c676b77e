package model

// SimulationStatus is the predicted execution status of a dry run
type SimulationStatus string

const (
	SimulationSuccess SimulationStatus = "success"
	SimulationFailure SimulationStatus = "failure"
)

// SimulationResult represents the predicted effects of a transfer
type SimulationResult struct {
	Status SimulationStatus
	// GasEstimate is the computation cost in MIST, nil when the node did not report it
	GasEstimate *uint64
	// Error is the node's failure reason for a predicted failure
	Error string
}

// Succeeded reports whether the dry run predicts success
func (r *SimulationResult) Succeeded() bool {
	return r != nil && r.Status == SimulationSuccess
}
