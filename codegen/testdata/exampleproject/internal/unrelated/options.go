package unrelated

// Options is not annotated, anonymous struct parameters are not supported by the generator.
type Options interface {
	Apply(o struct{ Verbose bool })
}
