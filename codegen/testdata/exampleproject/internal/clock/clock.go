package clock

// Clock is not annotated, nothing is generated for it.
type Clock interface {
	Now() int64
}
