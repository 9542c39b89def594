package example

import (
	"context"

	"github.com/dkinzler/baselib/model/response"
	"github.com/dkinzler/baselib/rx"
	yaml "gopkg.in/yaml.v3"
)

type X struct {
	A []string
	B map[string]int
}

type Y struct {
	C float64
	D map[string][]int
}

// @Autogen{"host": "https://example.com"}
type ExampleInterface interface {
	Method1(ctx context.Context, a string, x X) (Y, error)
	Method2(m map[int][]map[string]int) error
	Method3()
	// Method4 returns a stream.
	//
	// Deprecated: use Method1.
	Method4(id int, _ string, tags ...string) rx.Observable[response.BaseResponse[[]*Y]]
	Method5(n *yaml.Node, f func(int) error, c <-chan [4]byte) any
}

type (
	// @Autogen{}
	GroupedInterface interface {
		Get(key string) rx.Observable[map[string]X]
	}

	notAnInterface struct{}

	emptyInterface interface{}
)
