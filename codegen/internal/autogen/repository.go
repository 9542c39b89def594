package autogen

import (
	"fmt"
	"path"

	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/errors"

	"github.com/dave/jennifer/jen"
)

const repositoryRequestField = "request"

// import alias of the base repository package, the generated package is usually also called "repository"
const baseRepositoryAlias = "base"

// RepositoryGenerator generates the repository type of a service.
// Plans must contain one EmissionPlan per method of the service, see PlanService.
type RepositoryGenerator struct {
	Service Service
	Plans   []EmissionPlan
	g       *gen.SimpleGenerator
	// alias the base repository package is imported with
	base string
}

func NewRepositoryGenerator(s Service, plans []EmissionPlan) *RepositoryGenerator {
	return &RepositoryGenerator{
		Service: s,
		Plans:   plans,
		g:       gen.NewSimpleGenerator(),
	}
}

func (rg *RepositoryGenerator) Generate() (result []gen.GenResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Newf(nil, "autogen", errors.Unimplemented, "could not generate %v: %v", rg.Service.RepositoryTypeName(), r)
		}
	}()

	s := rg.Service
	if len(rg.Plans) != len(s.Methods) {
		return nil, errors.Newf(nil, "autogen", errors.Internal, "%v: got %v plans for %v methods", s.RepositoryTypeName(), len(rg.Plans), len(s.Methods))
	}

	// a parameter called like the alias would shadow the package in the method body
	var paramNames []string
	for _, m := range s.Methods {
		paramNames = append(paramNames, rg.g.GenParamNames(m.Params)...)
	}
	rg.base = rg.g.UniqueName(baseRepositoryAlias, paramNames)

	code := jen.NewFile("").Group

	rg.g.GenDocComment(code, fmt.Sprintf("%v wraps %v and post-processes the results of its calls.", s.RepositoryTypeName(), s.RequestTypeName()))
	code.Add(rg.g.GenStructType(s.RepositoryTypeName(), []jen.Code{
		jen.Qual(s.Config.Repository.Package, s.Config.Repository.Name),
		jen.Id(repositoryRequestField).Op("*").Qual(s.RequestPackage, s.RequestTypeName()),
	}))
	code.Line()
	code.Add(rg.g.GenFunction(
		nil,
		s.repositoryConstructorName(),
		jen.Params(),
		jen.Op("*").Id(s.RepositoryTypeName()),
		[]jen.Code{
			jen.Return(jen.Op("&").Id(s.RepositoryTypeName()).Values(jen.Dict{
				jen.Id(repositoryRequestField): jen.Qual(s.RequestPackage, s.requestConstructorName()).Call(),
			})),
		},
	))
	for _, plan := range rg.Plans {
		code.Line()
		rg.generateMethod(code, plan)
	}

	return []gen.GenResult{{
		Code:        code,
		PackagePath: s.RepositoryPackage,
		PackageName: path.Base(s.RepositoryPackage),
		Imports: map[string]string{
			s.Config.Repository.Package: rg.base,
		},
		OutputFile: s.Module.FileName(s.RepositoryPackage, s.RepositoryOutput),
	}}, nil
}

func (rg *RepositoryGenerator) generateMethod(code *jen.Group, plan EmissionPlan) {
	s := rg.Service
	m := plan.Method
	receiver := rg.g.UniqueName("r", rg.g.GenParamNames(m.Params))

	var result jen.Code = jen.Id(receiver).Dot(repositoryRequestField).Dot(m.Name).Call(rg.g.GenCallArgs(m.Params)...)
	if plan.Transform != "" {
		result = jen.Qual(s.Config.Repository.Package, s.Config.FunctionName(plan.Transform)).Call(result)
	}
	var body jen.Code = result
	if len(plan.Returns) > 0 {
		body = jen.Return(result)
	}

	summary := fmt.Sprintf("%v calls %v.%v.", m.Name, s.RequestTypeName(), m.Name)
	if plan.Transform != "" {
		summary = fmt.Sprintf("%v calls %v.%v, the result is passed through %v.", m.Name, s.RequestTypeName(), m.Name, s.Config.FunctionName(plan.Transform))
	}
	rg.g.GenDocComment(code, methodDoc(summary, m))
	code.Add(rg.g.GenFunction(
		jen.Id(receiver).Op("*").Id(s.RepositoryTypeName()),
		m.Name,
		rg.g.GenFunctionParams(m.Params),
		rg.g.GenReturnParams(plan.Returns),
		[]jen.Code{body},
	))
}
