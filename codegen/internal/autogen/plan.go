package autogen

import (
	"fmt"

	"github.com/dkinzler/autogen/codegen/annotations"
	"github.com/dkinzler/autogen/codegen/parse"
	"github.com/dkinzler/autogen/errors"
)

// MethodDescriptor is an interface method together with the directive and deprecation read from its comments.
type MethodDescriptor struct {
	Name    string
	Params  []parse.Param
	Returns []parse.Param

	// Default if the method has no scheduler annotation
	Directive Directive

	Deprecated bool
	// the "Deprecated:" paragraph of the doc comment
	Deprecation string
}

type schedulerAnnotation struct {
	Directive string `json:"directive"`
}

// NewMethodDescriptor reads the @Scheduler and @CloseScheduler annotations and the deprecation paragraph of a method.
func NewMethodDescriptor(m parse.Method) (MethodDescriptor, error) {
	md := MethodDescriptor{
		Name:      m.Name,
		Params:    m.Params,
		Returns:   m.Returns,
		Directive: Default,
	}

	a, err := annotations.ParseMethodAnnotations(m)
	if err != nil {
		return md, errors.Newf(err, "autogen", errors.InvalidArgument, "method %v", m.Name)
	}
	if body, ok := a[SchedulerAnnotationName]; ok {
		var sa schedulerAnnotation
		if err := annotations.ParseJSONAnnotation(body, &sa); err != nil {
			return md, errors.Newf(err, "autogen", errors.InvalidArgument, "method %v: invalid %v annotation", m.Name, SchedulerAnnotationName)
		}
		d, err := ParseDirective(sa.Directive)
		if err != nil {
			return md, errors.Newf(err, "autogen", errors.InvalidArgument, "method %v", m.Name)
		}
		md.Directive = d
	}
	if _, ok := a[CloseSchedulerAnnotationName]; ok {
		if md.Directive != Default && md.Directive != DoNotHandle {
			return md, errors.Newf(nil, "autogen", errors.InvalidArgument, "method %v: %v conflicts with directive %v", m.Name, CloseSchedulerAnnotationName, md.Directive)
		}
		md.Directive = DoNotHandle
	}

	md.Deprecation, md.Deprecated = annotations.Deprecation(m.Comments)
	return md, nil
}

// EmissionPlan describes how the repository method for a MethodDescriptor is generated.
type EmissionPlan struct {
	Method MethodDescriptor
	// directive from the annotation, Default if there was none
	Declared Directive
	// resolved directive, never Default
	Directive Directive
	Shape     ReturnShape
	// return values of the generated method
	Returns []parse.Param
	// empty if the result of the request is returned as is
	Transform string
}

// Diagnostic is reported when a declared directive does not fit the return shape of a method
// and was replaced by the default.
type Diagnostic struct {
	Service  string
	Method   string
	Declared Directive
	Shape    ReturnShape
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v.%v: scheduler directive %v cannot be applied to return shape %v, using %v",
		d.Service, d.Method, d.Declared, d.Shape, Default)
}

// Plan decides the directive, return values and transform of the repository method generated for m.
// An incompatible directive is downgraded to Default, in that case a diagnostic is returned as well.
// Plan has no side effects, calling it again with the same arguments returns the same result.
func Plan(s Service, m MethodDescriptor) (EmissionPlan, *Diagnostic) {
	shape := ClassifyReturn(m.Returns, s.Config)

	var diagnostic *Diagnostic
	directive := m.Directive
	if directive == "" {
		directive = Default
	}
	declared := directive
	if !directive.Compatible(shape) {
		diagnostic = &Diagnostic{
			Service:  s.Name(),
			Method:   m.Name,
			Declared: declared,
			Shape:    shape,
		}
		directive = Default
	}
	if directive == Default {
		directive = Resolve(shape)
	}

	returns := m.Returns
	if directive.HandlesResult() {
		returns = []parse.Param{{
			Name: m.Returns[0].Name,
			Type: parse.GenericType{
				Type: parse.SimpleType{Type: s.Config.Observable.Name, Package: s.Config.Observable.Package},
				Args: []parse.ParamType{shape.Inner},
			},
		}}
	}

	return EmissionPlan{
		Method:    m,
		Declared:  declared,
		Directive: directive,
		Shape:     shape,
		Returns:   returns,
		Transform: directive.Transform(),
	}, diagnostic
}

// PlanService plans every method of the service, in declaration order.
func PlanService(s Service) ([]EmissionPlan, []Diagnostic) {
	plans := make([]EmissionPlan, len(s.Methods))
	var diagnostics []Diagnostic
	for i, m := range s.Methods {
		plan, d := Plan(s, m)
		plans[i] = plan
		if d != nil {
			diagnostics = append(diagnostics, *d)
		}
	}
	return plans, diagnostics
}
