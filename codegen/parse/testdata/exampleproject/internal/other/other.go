package other

type OtherInterface interface {
	OtherMethod1(a, b, c string) (int, int, int)
}

type GenericInterface[T any] interface {
	Get() T
}
