package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	a := assert.New(t)

	a.Equal(ErrorCode(0), Unknown)
	a.Equal(ErrorCode(1), InvalidArgument)
	a.Equal(ErrorCode(3), FailedPrecondition)

	a.Equal("Unknown", Unknown.String())
	a.Equal("InvalidArgument", InvalidArgument.String())
	a.Equal("InvalidErrorCode", ErrorCode(42).String())
}

func TestNew(t *testing.T) {
	a := assert.New(t)

	inner := stderrors.New("xyz")
	err := New(inner, "test", InvalidArgument)
	a.Equal("test", err.Origin)
	a.Equal(inner, err.Inner)
	a.Equal(InvalidArgument, err.Code)
	a.NotNil(err.StackTrace)

	//only the innermost error has a stack trace
	outer := New(err, "outer", Internal)
	a.Nil(outer.StackTrace)

	err = Error{}
	a.Equal(err.WithMessage("message").Message, "message")

	err = Newf(nil, "autogen", FailedPrecondition, "interface %v", "FooService")
	a.Equal("interface FooService", err.Message)
}

func TestErrorMessage(t *testing.T) {
	a := assert.New(t)

	a.Equal("parse: InvalidArgument", New(nil, "parse", InvalidArgument).Error())
	a.Equal("parse: bad file: xyz", New(stderrors.New("xyz"), "parse", InvalidArgument).WithMessage("bad file").Error())
	a.Equal(
		"autogen: could not plan: annotations: bad json",
		New(New(nil, "annotations", InvalidArgument).WithMessage("bad json"), "autogen", InvalidArgument).WithMessage("could not plan").Error(),
	)
	a.Equal("Internal", Error{Code: Internal}.Error())
}

func TestIs(t *testing.T) {
	a := assert.New(t)

	cases := []struct {
		Err      error
		Code     ErrorCode
		Expected bool
	}{
		{
			Err:      nil,
			Code:     InvalidArgument,
			Expected: false,
		},
		{
			Err:      stderrors.New("just some error"),
			Code:     InvalidArgument,
			Expected: false,
		},
		{
			Err:      New(nil, "test", InvalidArgument),
			Code:     InvalidArgument,
			Expected: true,
		},
		{
			Err:      New(nil, "test", InvalidArgument),
			Code:     NotFound,
			Expected: false,
		},
		{
			//wrapped with fmt.Errorf
			Err:      fmt.Errorf("generate: %w", New(nil, "test", FailedPrecondition)),
			Code:     FailedPrecondition,
			Expected: true,
		},
	}
	for i, c := range cases {
		actual := Is(c.Err, c.Code)
		a.Equal(c.Expected, actual, "case %v", i)
	}

	a.True(IsInvalidArgumentError(New(nil, "test", InvalidArgument)))
	a.False(IsInvalidArgumentError(New(nil, "test", NotFound)))
	a.True(IsNotFoundError(New(nil, "test", NotFound)))
	a.True(IsFailedPreconditionError(New(nil, "test", FailedPrecondition)))
	a.True(IsInternalError(New(nil, "test", Internal)))
}

func TestUnwrap(t *testing.T) {
	a := assert.New(t)

	inner := stderrors.New("disk full")
	err := New(inner, "gen", Internal)
	a.True(stderrors.Is(err, inner))

	var e Error
	a.True(stderrors.As(fmt.Errorf("x: %w", err), &e))
	a.Equal("gen", e.Origin)
}

func TestToMap(t *testing.T) {
	a := assert.New(t)

	err := Error{Origin: "outer", Code: Internal, Message: "m", Inner: Error{Origin: "inner", Code: NotFound}}
	a.Equal(map[string]interface{}{
		"origin":  "outer",
		"code":    "Internal",
		"message": "m",
		"inner": map[string]interface{}{
			"origin": "inner",
			"code":   "NotFound",
		},
	}, err.ToMap())
}
