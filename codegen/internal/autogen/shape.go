package autogen

import (
	"fmt"
	"path"
	"strings"

	"github.com/dkinzler/autogen/codegen/parse"
)

// ShapeKind classifies the declared return values of an interface method.
type ShapeKind int

const (
	// anything that is not exactly one observable with one type argument
	NotObservable ShapeKind = iota
	// an observable of anything but the envelope, e.g. rx.Observable[string]
	ObservableOfOpaque
	// an observable of the envelope, e.g. rx.Observable[response.BaseResponse[User]]
	ObservableOfEnvelope
)

func (k ShapeKind) String() string {
	switch k {
	case ObservableOfOpaque:
		return "OBSERVABLE_OF_OPAQUE"
	case ObservableOfEnvelope:
		return "OBSERVABLE_OF_ENVELOPE"
	default:
		return "NOT_OBSERVABLE"
	}
}

// ReturnShape is the result of ClassifyReturn.
// Inner is the type argument of the envelope and only set if Kind is ObservableOfEnvelope.
type ReturnShape struct {
	Kind  ShapeKind
	Inner parse.ParamType
}

func (s ReturnShape) String() string {
	if s.Kind == ObservableOfEnvelope && s.Inner != nil {
		return fmt.Sprintf("%v(%v)", s.Kind, typeString(s.Inner))
	}
	return s.Kind.String()
}

// ClassifyReturn determines the shape of the return values of a method.
// Matching is structural, any return values that do not match the configured observable and envelope types
// are NotObservable.
func ClassifyReturn(returns []parse.Param, config Config) ReturnShape {
	if len(returns) != 1 {
		return ReturnShape{Kind: NotObservable}
	}
	args, ok := parse.GenericArgs(returns[0].Type, config.Observable.Name, config.Observable.Package)
	if !ok || len(args) != 1 {
		return ReturnShape{Kind: NotObservable}
	}
	inner, ok := parse.GenericArgs(args[0], config.Envelope.Name, config.Envelope.Package)
	if ok && len(inner) == 1 {
		return ReturnShape{Kind: ObservableOfEnvelope, Inner: inner[0]}
	}
	return ReturnShape{Kind: ObservableOfOpaque}
}

// Short textual form of a type as it would be written in source code, used in diagnostics.
func typeString(p parse.ParamType) string {
	switch t := p.(type) {
	case parse.SimpleType:
		if t.Package == "" {
			return t.Type
		}
		return path.Base(t.Package) + "." + t.Type
	case parse.GenericType:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = typeString(arg)
		}
		return typeString(t.Type) + "[" + strings.Join(args, ", ") + "]"
	case parse.MapType:
		return "map[" + typeString(t.KeyType) + "]" + typeString(t.ValueType)
	case parse.ArrayType:
		return "[" + t.Len + "]" + typeString(t.Type)
	case parse.StarType:
		return "*" + typeString(t.Type)
	case parse.EllipsisType:
		return "..." + typeString(t.Type)
	case parse.ChanType:
		switch t.Dir {
		case parse.ChanSend:
			return "chan<- " + typeString(t.Type)
		case parse.ChanRecv:
			return "<-chan " + typeString(t.Type)
		}
		return "chan " + typeString(t.Type)
	case parse.FuncType:
		return "func(...)"
	default:
		return fmt.Sprintf("%T", p)
	}
}
