package model

// CheckoutState stores per-invocation state for the checkout graph.
//   - Registered as graph local state via compose.WithGenLocalState.
//   - Read and written only inside eino state handlers or compose.ProcessState,
//     which serialize access; no extra locking is needed.
type CheckoutState struct {
	Customer string
	Visited  []string // node keys in execution order
}
