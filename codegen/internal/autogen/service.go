// Package autogen generates a request and a repository type for every interface annotated with @Autogen.
//
//	// @Autogen{"host": "https://api.example.com"}
//	type FooService interface {
//		Fetch(id int) rx.Observable[response.BaseResponse[model.User]]
//		// @Scheduler{"directive": "SWITCH_TO_IO"}
//		Search(query string) rx.Observable[[]model.User]
//	}
//
// For an interface in package "<parent>/service" the request type ApiFooRequest is generated in "<parent>/request",
// the repository type AbsFooRepository in "<parent>/repository".
// Request methods pass every call on to the service, repository methods pass the result of the request through
// a transform chosen from the return type of the method and an optional scheduler directive.
package autogen

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/dkinzler/autogen/codegen/annotations"
	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/codegen/parse"
	"github.com/dkinzler/autogen/errors"
)

const AnnotationName = "Autogen"
const SchedulerAnnotationName = "Scheduler"

// Marks a method that should be passed through as is, same as @Scheduler{"directive":"DO_NOT_HANDLE"}.
const CloseSchedulerAnnotationName = "CloseScheduler"

// Service holds everything needed to generate code for one annotated interface.
// A Service is created per interface and passed explicitly to planning and generation.
type Service struct {
	Interface parse.Interface
	Module    parse.Module
	Config    Config

	// Host passed to the request helper, if empty the service is created without a host.
	Host string
	// output file names, default to the snake case type name with suffix ".gen.go"
	RequestOutput    string
	RepositoryOutput string

	// full package paths of the generated code
	RequestPackage    string
	RepositoryPackage string

	// one element per interface method, in declaration order
	Methods []MethodDescriptor
}

// body of the @Autogen annotation
type autogenAnnotation struct {
	Host             string `json:"host"`
	RequestOutput    string `json:"requestOutput"`
	RepositoryOutput string `json:"repositoryOutput"`
}

// ServiceFromAnnotation creates the Service for an interface from its @Autogen annotation.
func ServiceFromAnnotation(i parse.Interface, m parse.Module, a annotations.InterfaceAnnotation, config Config) (Service, error) {
	var aa autogenAnnotation
	if err := annotations.ParseJSONAnnotation(a.Annotation, &aa); err != nil {
		return Service{}, errors.Newf(err, "autogen", errors.InvalidArgument, "could not parse %v annotation of interface %v", AnnotationName, i.Name)
	}
	s := Service{
		Interface:        i,
		Module:           m,
		Config:           config,
		Host:             strings.TrimSpace(aa.Host),
		RequestOutput:    aa.RequestOutput,
		RepositoryOutput: aa.RepositoryOutput,
	}

	parent, err := m.ParentPackage(i.Package)
	if err != nil {
		return Service{}, errors.Newf(err, "autogen", errors.InvalidArgument, "cannot place generated code for interface %v", i.Name)
	}
	s.RequestPackage = path.Join(parent, "request")
	s.RepositoryPackage = path.Join(parent, "repository")

	if s.RequestOutput == "" {
		s.RequestOutput = gen.SnakeCase(s.RequestTypeName()) + ".gen.go"
	}
	if s.RepositoryOutput == "" {
		s.RepositoryOutput = gen.SnakeCase(s.RepositoryTypeName()) + ".gen.go"
	}
	for _, output := range []string{s.RequestOutput, s.RepositoryOutput} {
		if filepath.Base(output) != output || !strings.HasSuffix(output, ".go") {
			return Service{}, errors.Newf(nil, "autogen", errors.InvalidArgument, "interface %v: output %q must be a go file name without directory", i.Name, output)
		}
	}

	for _, method := range i.Methods {
		md, err := NewMethodDescriptor(method)
		if err != nil {
			return Service{}, errors.Newf(err, "autogen", errors.InvalidArgument, "interface %v", i.Name)
		}
		s.Methods = append(s.Methods, md)
	}
	return s, nil
}

func (s Service) Name() string {
	return s.Interface.Name
}

// Name of the interface without a trailing "Service", e.g. "Foo" for "FooService".
func (s Service) BaseName() string {
	return stripServiceSuffix(s.Interface.Name)
}

func (s Service) RequestTypeName() string {
	return "Api" + s.BaseName() + "Request"
}

func (s Service) RepositoryTypeName() string {
	return "Abs" + s.BaseName() + "Repository"
}

func (s Service) requestConstructorName() string {
	return "New" + s.RequestTypeName()
}

func (s Service) repositoryConstructorName() string {
	return "New" + s.RepositoryTypeName()
}

func stripServiceSuffix(name string) string {
	return strings.TrimSuffix(name, "Service")
}
