package analysis

// Options control one analysis pass. Every knob travels with the call;
// nothing is read from process-wide state.
type Options struct {
	// SampleCap bounds how many frames one analysis decodes.
	SampleCap int
	// ClusterCount is the palette size K.
	ClusterCount int
	// SampleDim is the square edge frames are downscaled to before
	// palette sampling.
	SampleDim int
	// Epsilon is the clustering convergence threshold. It maps onto the
	// clustering library's termination knob, see palette.go.
	Epsilon float64
	// Attempts is the number of clustering restarts; the best partition
	// wins.
	Attempts int
}

// DefaultOptions returns the standard analysis parameters
func DefaultOptions() Options {
	return Options{
		SampleCap:    20,
		ClusterCount: 5,
		SampleDim:    100,
		Epsilon:      1.0,
		Attempts:     3,
	}
}

// withDefaults fills unset fields so a zero Options value behaves like
// DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SampleCap <= 0 {
		o.SampleCap = def.SampleCap
	}
	if o.ClusterCount <= 0 {
		o.ClusterCount = def.ClusterCount
	}
	if o.SampleDim <= 0 {
		o.SampleDim = def.SampleDim
	}
	if o.Epsilon <= 0 {
		o.Epsilon = def.Epsilon
	}
	if o.Attempts <= 0 {
		o.Attempts = def.Attempts
	}
	return o
}
