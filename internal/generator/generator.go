package generator

// MinOrder is the smallest order that can carry n+1 distinct edges.
const MinOrder = 4

// DefaultMaxAttempts bounds resampling. For n >= 5 and m = n+1 a G(n,m)
// sample is connected often enough that the bound is never reached in
// practice; it exists so generation cannot hang.
const DefaultMaxAttempts = 1000

// ConnectedGenerator samples G(n, n+1) uniformly and resamples until connected.
type ConnectedGenerator struct {
	MaxAttempts int
}

// NewConnectedGenerator wires a generator with the given attempt budget;
// a non-positive budget selects DefaultMaxAttempts.
func NewConnectedGenerator(maxAttempts int) *ConnectedGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &ConnectedGenerator{MaxAttempts: maxAttempts}
}
