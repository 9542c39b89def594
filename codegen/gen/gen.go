// Package gen implements code generation functionality that works on interface specifications from the parse package.
// Code is generated using the package "github.com/dave/jennifer/jen".
package gen

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dkinzler/autogen/codegen/parse"

	"github.com/dave/jennifer/jen"
)

// Header comment added to every generated file, recognized by go tooling and linters as generated code.
const GeneratedHeader = "Code generated by autogen. DO NOT EDIT."

// A piece of code returned by a code generator, that is assigned to a particular output package/file.
// Multiple instances of GenResult can be merged into a single code file, since different code generators might provide parts of it.
type GenResult struct {
	// Piece of code, that does not include any package or import statements.
	Code *jen.Group
	// Full path of package this code belongs to, e.g. "example.com/abc/xyz".
	PackagePath string
	// Package name of package this code belongs to, usually the last section of the package path, e.g. "xyz".
	PackageName string
	// Define explicit aliases for imports used by this code.
	// Maps from package path to alias, e.g. "example.com/abc/xyz":"x"
	Imports map[string]string
	// Path of the file the code should ultimately be written to.
	OutputFile string
}

// The interface all code generators should implement.
// A code generator should be created with a specification that defines what exactly needs to be generated.
// Calling the Generate() method should then always yield the same result.
//
// A code generator should not actually write any files, instead the Generate() method should return a list of
// GenResult values that each define a piece of code belonging to an output file.
type Generator interface {
	Generate() ([]GenResult, error)
}

type GeneratedFile struct {
	File *jen.File
	Path string
}

// Generates a list of GeneratedFile values by merging together all the code pieces for the same output file path into a single code file.
// Files are ordered by path, pieces within a file keep the order they were passed in.
func MergeResults(results []GenResult) []GeneratedFile {
	resultsByFile := make(map[string][]GenResult)
	var paths []string
	for _, result := range results {
		if _, ok := resultsByFile[result.OutputFile]; !ok {
			paths = append(paths, result.OutputFile)
		}
		resultsByFile[result.OutputFile] = append(resultsByFile[result.OutputFile], result)
	}
	sort.Strings(paths)

	result := make([]GeneratedFile, len(paths))
	for i, outputFile := range paths {
		r := resultsByFile[outputFile]
		rr := r[0]
		f := jen.NewFilePathName(rr.PackagePath, rr.PackageName)
		f.HeaderComment(GeneratedHeader)
		for path, alias := range mergeImports(r) {
			f.ImportAlias(path, alias)
		}
		for _, part := range r {
			f.Add(part.Code)
		}
		result[i] = GeneratedFile{File: f, Path: outputFile}
	}
	return result
}

func mergeImports(r []GenResult) map[string]string {
	result := make(map[string]string)
	for _, x := range r {
		for path, name := range x.Imports {
			result[path] = name
		}
	}
	return result
}

// SimpleGenerator provides functions to make it easier to generate common code elements like parameters, struct types and functions.
type SimpleGenerator struct{}

func NewSimpleGenerator() *SimpleGenerator {
	return &SimpleGenerator{}
}

// Generates a type e.g. for a function parameter or return value.
func (s *SimpleGenerator) GenParamType(p parse.ParamType) *jen.Statement {
	switch t := p.(type) {
	case parse.SimpleType:
		if t.Type == "interface{}" {
			return jen.Interface()
		}
		if t.Package == "" {
			return jen.Id(t.Type)
		}
		return jen.Qual(t.Package, t.Type)
	case parse.GenericType:
		return s.GenParamType(t.Type).Types(s.genTypeList(t.Args)...)
	case parse.MapType:
		return jen.Map(s.GenParamType(t.KeyType)).Add(s.GenParamType(t.ValueType))
	case parse.ArrayType:
		if t.Len != "" {
			return jen.Index(jen.Id(t.Len)).Add(s.GenParamType(t.Type))
		}
		return jen.Index().Add(s.GenParamType(t.Type))
	case parse.StarType:
		return jen.Op("*").Add(s.GenParamType(t.Type))
	case parse.EllipsisType:
		return jen.Op("...").Add(s.GenParamType(t.Type))
	case parse.FuncType:
		return jen.Func().Params(s.GenParamTypes(t.Params)...).Add(s.GenReturnParams(t.Returns))
	case parse.ChanType:
		switch t.Dir {
		case parse.ChanSend:
			return jen.Chan().Op("<-").Add(s.GenParamType(t.Type))
		case parse.ChanRecv:
			return jen.Op("<-").Chan().Add(s.GenParamType(t.Type))
		default:
			return jen.Chan().Add(s.GenParamType(t.Type))
		}
	default:
		panic(fmt.Sprintf("unimplemented parse.ParamType in GenParamType(): %T", p))
	}
}

func (s *SimpleGenerator) genTypeList(types []parse.ParamType) []jen.Code {
	result := make([]jen.Code, len(types))
	for i, t := range types {
		result[i] = s.GenParamType(t)
	}
	return result
}

// Generates a struct type with the given name and fields.
func (s *SimpleGenerator) GenStructType(name string, fields []jen.Code) jen.Code {
	return jen.Type().Id(name).Struct(fields...)
}

// Generates a function with the given receiver, name, parameters, return values and statements in the body.
func (s *SimpleGenerator) GenFunction(receiver jen.Code, name string, params jen.Code, returns jen.Code, body []jen.Code) jen.Code {
	result := jen.Func()
	if receiver != nil {
		result = result.Params(receiver)
	}
	if name != "" {
		result = result.Id(name)
	}
	result = result.Add(params)
	result = result.Add(returns)
	result.Block(body...)
	return result
}

func (s *SimpleGenerator) GenReturnParams(params []parse.Param) jen.Code {
	returnParams := s.GenParamTypes(params)
	// if there is only a single return value, we do not need to wrap it in "()"
	if len(returnParams) == 1 {
		return returnParams[0]
	} else if len(returnParams) > 1 {
		return jen.Params(returnParams...)
	} else {
		return jen.Empty()
	}
}

func (s *SimpleGenerator) GenParamTypes(params []parse.Param) []jen.Code {
	result := make([]jen.Code, len(params))
	for i, param := range params {
		result[i] = s.GenParamType(param.Type)
	}
	return result
}

// Generates a parameter list for the given parameter specification.
// E.g. (ctx context.Context, p1 string, p2 int)
// If parameter specifications do not contain a name, consecutive integers will be used, e.g. "p0", "p1", "p2".
func (s *SimpleGenerator) GenFunctionParams(params []parse.Param) jen.Code {
	funcParams := make([]jen.Code, len(params))
	paramNames := s.GenParamNames(params)

	for i, param := range params {
		paramName := paramNames[i]
		paramType := s.GenParamType(param.Type)
		funcParams[i] = jen.Id(paramName).Add(paramType)
	}

	return jen.Params(funcParams...)
}

// Generates the arguments to pass the given parameters on to another function, e.g. (ctx, id, tags...).
// A variadic parameter is spread with "...".
func (s *SimpleGenerator) GenCallArgs(params []parse.Param) []jen.Code {
	paramNames := s.GenParamNames(params)
	result := make([]jen.Code, len(params))
	for i, param := range params {
		arg := jen.Id(paramNames[i])
		if _, ok := param.Type.(parse.EllipsisType); ok {
			arg = arg.Op("...")
		}
		result[i] = arg
	}
	return result
}

// Returns a list of parameter names for the given parameter specification.
// If a parameter specification contains a name, that name will be used, otherwise a name is generated
// by using consecutive integers, i.e. "p0", "p1", "p2".
func (s *SimpleGenerator) GenParamNames(params []parse.Param) []string {
	result := make([]string, len(params))

	id := 0
	for i, param := range params {
		if param.Name == "" {
			result[i] = fmt.Sprintf("p%v", id)
			id++
		} else {
			result[i] = param.Name
		}
	}

	return result
}

// Returns name, or name followed by the smallest number that makes it different from all of the taken names.
// Used e.g. for method receivers, which must not shadow a parameter.
func (s *SimpleGenerator) UniqueName(name string, taken []string) string {
	isTaken := func(n string) bool {
		for _, t := range taken {
			if t == n {
				return true
			}
		}
		return false
	}
	if !isTaken(name) {
		return name
	}
	for i := 0; ; i++ {
		n := fmt.Sprintf("%v%v", name, i)
		if !isTaken(n) {
			return n
		}
	}
}

// Adds a doc comment to the group, one "//" line per line of text.
// Empty lines become empty comment lines, so that paragraphs are preserved.
func (s *SimpleGenerator) GenDocComment(g *jen.Group, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			// comments starting with "//" are rendered as is
			g.Comment("//")
		} else {
			g.Comment(line)
		}
	}
}

// Uppercase first letter of string, useful for generating e.g. exported struct or function names.
func UppercaseFirst(s string) string {
	for i, char := range s {
		return string(unicode.ToUpper(char)) + s[i+utf8.RuneLen(char):]
	}
	return ""
}

// Converts an identifier like "ApiFooRequest" or "HTTPClient" to snake case, e.g. "api_foo_request" or "http_client".
// Useful for generating file names.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
