package autogen

import (
	"strings"

	"github.com/dkinzler/autogen/errors"
)

// Directive controls which transform a generated repository method applies to the result of the request.
type Directive string

const (
	// resolved from the return shape, see Resolve
	Default            Directive = "DEFAULT"
	SwitchToMain       Directive = "SWITCH_TO_MAIN"
	SwitchToIO         Directive = "SWITCH_TO_IO"
	HandleResultToMain Directive = "HANDLE_RESULT_TO_MAIN"
	HandleResultToIO   Directive = "HANDLE_RESULT_TO_IO"
	OnlyHandleResult   Directive = "ONLY_HANDLE_RESULT"
	DoNotHandle        Directive = "DO_NOT_HANDLE"
)

var directives = []Directive{
	Default,
	SwitchToMain,
	SwitchToIO,
	HandleResultToMain,
	HandleResultToIO,
	OnlyHandleResult,
	DoNotHandle,
}

// short spellings accepted in annotations
var directiveAliases = map[string]Directive{
	"SWITCH_MAIN": SwitchToMain,
	"SWITCH_IO":   SwitchToIO,
}

var transforms = map[Directive]string{
	HandleResultToMain: "handleResult",
	SwitchToMain:       "applySchedulers",
	HandleResultToIO:   "handleResultToIO",
	SwitchToIO:         "applySchedulersIO",
	OnlyHandleResult:   "onlyHandleResult",
}

// ParseDirective returns the directive for a name as written in a @Scheduler annotation.
// Names are case insensitive, an empty name is Default.
func ParseDirective(s string) (Directive, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Default, nil
	}
	if d, ok := directiveAliases[name]; ok {
		return d, nil
	}
	for _, d := range directives {
		if string(d) == name {
			return d, nil
		}
	}
	return Default, errors.Newf(nil, "autogen", errors.InvalidArgument, "unknown scheduler directive %q", s)
}

// HandlesResult reports whether the directive unwraps the envelope.
func (d Directive) HandlesResult() bool {
	return d == HandleResultToMain || d == HandleResultToIO || d == OnlyHandleResult
}

// Compatible reports whether the directive can be applied to a method with the given return shape.
//
//	HANDLE_RESULT_TO_MAIN, HANDLE_RESULT_TO_IO, ONLY_HANDLE_RESULT  observable of envelope
//	SWITCH_TO_MAIN, SWITCH_TO_IO                                    any observable
//	DO_NOT_HANDLE, DEFAULT                                          any shape
func (d Directive) Compatible(shape ReturnShape) bool {
	switch {
	case d.HandlesResult():
		return shape.Kind == ObservableOfEnvelope
	case d == SwitchToMain || d == SwitchToIO:
		return shape.Kind == ObservableOfOpaque || shape.Kind == ObservableOfEnvelope
	case d == DoNotHandle || d == Default:
		return true
	default:
		return false
	}
}

// Transform returns the name of the transform a resolved directive applies,
// empty for DO_NOT_HANDLE and DEFAULT.
func (d Directive) Transform() string {
	return transforms[d]
}

// Resolve returns the directive used for a method without an explicit directive.
func Resolve(shape ReturnShape) Directive {
	switch shape.Kind {
	case ObservableOfEnvelope:
		return HandleResultToMain
	case ObservableOfOpaque:
		return SwitchToMain
	default:
		return DoNotHandle
	}
}
