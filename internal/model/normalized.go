package model

// NormalizedInput is the output of the C1 Input Normalizer: everything
// C2-C5 need, already validated, deduplicated and pro-rated. It is
// immutable for the rest of the solve (§3 "Lifecycle").
type NormalizedInput struct {
	Horizon *Horizon
	Demand  *Demand

	// WorkersComplete is every worker present in both the employee and
	// calendar tables (§4.1 step 3).
	WorkersComplete []*Worker

	// Workers is the solvable subset of WorkersComplete: contract cycle
	// != "Completo".
	Workers []*Worker

	// EarliestFirstDay is the minimum FirstRegisteredDay across
	// WorkersComplete. C3.11 (engine.addPostHireFirstDay) computes the
	// same minimum from the worker list it is given.
	EarliestFirstDay int
}

// ByID indexes WorkersComplete by worker id.
func (n *NormalizedInput) ByID() map[int]*Worker {
	out := make(map[int]*Worker, len(n.WorkersComplete))
	for _, w := range n.WorkersComplete {
		out[w.ID] = w
	}
	return out
}
