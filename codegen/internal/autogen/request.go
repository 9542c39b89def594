package autogen

import (
	"fmt"
	"path"

	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/errors"

	"github.com/dave/jennifer/jen"
)

const requestServiceField = "apiService"
const requestHelperVar = "apiRequestHelper"

// RequestGenerator generates the request type of a service.
// Every method of the request type calls the method of the same name on a service implementation
// created by the request helper and returns its results unchanged.
type RequestGenerator struct {
	Service Service
	g       *gen.SimpleGenerator
}

func NewRequestGenerator(s Service) *RequestGenerator {
	return &RequestGenerator{
		Service: s,
		g:       gen.NewSimpleGenerator(),
	}
}

func (rg *RequestGenerator) Generate() (result []gen.GenResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Newf(nil, "autogen", errors.Unimplemented, "could not generate %v: %v", rg.Service.RequestTypeName(), r)
		}
	}()

	s := rg.Service
	code := jen.NewFile("").Group

	rg.g.GenDocComment(code, fmt.Sprintf("%v passes calls on to a %v created by the request helper.", s.RequestTypeName(), s.Name()))
	code.Add(rg.g.GenStructType(s.RequestTypeName(), []jen.Code{
		jen.Id(requestServiceField).Qual(s.Interface.Package, s.Interface.Name),
	}))
	code.Line()
	code.Add(rg.generateConstructor())
	for _, m := range s.Methods {
		code.Line()
		rg.generateMethod(code, m)
	}

	return []gen.GenResult{{
		Code:        code,
		PackagePath: s.RequestPackage,
		PackageName: path.Base(s.RequestPackage),
		OutputFile:  s.Module.FileName(s.RequestPackage, s.RequestOutput),
	}}, nil
}

func (rg *RequestGenerator) generateConstructor() jen.Code {
	s := rg.Service
	helper := s.Config.RequestHelper

	var createService jen.Code
	if s.Host != "" {
		createService = jen.Qual(helper.Package, helper.CreateServiceWithHost).
			Types(jen.Qual(s.Interface.Package, s.Interface.Name)).
			Call(jen.Id(requestHelperVar), jen.Lit(s.Host))
	} else {
		createService = jen.Qual(helper.Package, helper.CreateService).
			Types(jen.Qual(s.Interface.Package, s.Interface.Name)).
			Call(jen.Id(requestHelperVar))
	}

	return rg.g.GenFunction(
		nil,
		s.requestConstructorName(),
		jen.Params(),
		jen.Op("*").Id(s.RequestTypeName()),
		[]jen.Code{
			jen.Id(requestHelperVar).Op(":=").Qual(helper.Package, helper.Instance).Call(),
			jen.Return(jen.Op("&").Id(s.RequestTypeName()).Values(jen.Dict{
				jen.Id(requestServiceField): createService,
			})),
		},
	)
}

func (rg *RequestGenerator) generateMethod(code *jen.Group, m MethodDescriptor) {
	s := rg.Service
	receiver := rg.g.UniqueName("r", rg.g.GenParamNames(m.Params))

	call := jen.Id(receiver).Dot(requestServiceField).Dot(m.Name).Call(rg.g.GenCallArgs(m.Params)...)
	var body jen.Code = call
	if len(m.Returns) > 0 {
		body = jen.Return(call)
	}

	rg.g.GenDocComment(code, methodDoc(fmt.Sprintf("%v calls %v.%v.", m.Name, s.Name(), m.Name), m))
	code.Add(rg.g.GenFunction(
		jen.Id(receiver).Op("*").Id(s.RequestTypeName()),
		m.Name,
		rg.g.GenFunctionParams(m.Params),
		rg.g.GenReturnParams(m.Returns),
		[]jen.Code{body},
	))
}

// Doc comment of a generated method, deprecated methods keep their "Deprecated:" paragraph.
func methodDoc(summary string, m MethodDescriptor) string {
	if !m.Deprecated {
		return summary
	}
	return summary + "\n\n" + m.Deprecation
}
