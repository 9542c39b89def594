package parse

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"regexp"
	"strings"

	"github.com/dkinzler/autogen/errors"
)

// Returns all the interfaces in the file.
// Unsupported constructs in method signatures are recorded in Interface.Err,
// any other panic of the visitor is returned as an error for the whole file.
func findInterfacesInFile(file *ast.File, packagePath string) (result []Interface, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Newf(nil, "parse", errors.Unimplemented, "%v", r)
		}
	}()
	visitor := &Visitor{
		PackagePath: packagePath,
		Imports:     importsFromFile(file),
	}
	ast.Walk(visitor, file)
	return visitor.Interfaces, nil
}

// Visitor implements the ast.Visitor interface.
// It can be used with the ast.Walk function to traverse an AST and find all the interfaces.
type Visitor struct {
	// Result, i.e. the list of interfaces found so far in the current walk
	Interfaces []Interface
	// Full package path for the current file
	PackagePath string
	// map local package name to full package path, e.g. for
	//
	// import (
	//   p "some/random/package"
	//   "another/pkg"
	//   "gopkg.in/yaml.v3"
	// )
	//
	// the map would contain p -> "some/random/package", pkg -> "another/pkg" and yaml -> "gopkg.in/yaml.v3"
	Imports map[string]string
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// Returns the name a package is referred to by default, i.e. without an explicit import name.
// Handles major version suffixes like "example.com/abc/v2" and "gopkg.in/yaml.v3".
func defaultImportName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "_")
}

// Dot and blank imports are skipped: types from a dot import cannot be told apart from local types.
func importsFromFile(f *ast.File) map[string]string {
	result := make(map[string]string)
	for _, imp := range f.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")

		var importName string
		if imp.Name != nil {
			importName = imp.Name.Name
		} else {
			importName = defaultImportName(importPath)
		}
		if importName == "." || importName == "_" {
			continue
		}

		result[importName] = importPath
	}
	return result
}

// Checks if the current node is a type declaration.
// Every interface type declared in it is parsed into an instance of Interface.
func (v *Visitor) Visit(node ast.Node) ast.Visitor {
	gd, ok := node.(*ast.GenDecl)
	if !ok {
		return v
	}
	//check if a type is declared
	if gd.Tok != token.TYPE {
		return v
	}
	for _, spec := range gd.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		//need interface type
		it, ok := ts.Type.(*ast.InterfaceType)
		if !ok {
			continue
		}
		//skip empty and generic interfaces
		if it.Methods == nil || len(it.Methods.List) == 0 || ts.TypeParams != nil {
			continue
		}

		// in a grouped declaration "type ( ... )" the doc comment belongs to the spec
		doc := ts.Doc
		if doc == nil && len(gd.Specs) == 1 {
			doc = gd.Doc
		}

		methods, err := v.parseInterfaceMethods(ts.Name.Name, it)
		v.Interfaces = append(v.Interfaces, Interface{
			Name:     ts.Name.Name,
			Package:  v.PackagePath,
			Comments: v.parseComments(doc),
			Methods:  methods,
			Err:      err,
		})
	}

	return v
}

func (v *Visitor) parseComments(cg *ast.CommentGroup) []string {
	if cg == nil || len(cg.List) == 0 {
		return nil
	}
	var result []string
	for _, c := range cg.List {
		result = append(result, trimComment(c.Text)...)
	}
	return result
}

// Trims any leading/trailing white space and the comment characters, i.e. leading // or /* and trailing */
// Also splits multi line comments into multiple strings, one for each line
// We do not trim anything else, note that // and /* might also appear as part of the comment, i.e. not as the first characters.
func trimComment(comment string) []string {
	comment = strings.TrimSpace(comment)

	if strings.HasPrefix(comment, "//") {
		return []string{strings.TrimPrefix(comment, "//")}
	} else if strings.HasPrefix(comment, "/*") {
		result := strings.TrimPrefix(comment, "/*")
		result = strings.TrimSuffix(result, "*/")
		result = strings.TrimRight(result, "\n")
		return strings.Split(result, "\n")
	} else {
		return []string{comment}
	}
}

// Embedded interfaces are skipped, only methods declared directly in the interface are returned.
// An unsupported construct only fails the interface it appears in,
// the caller decides whether the interface is needed at all.
func (v *Visitor) parseInterfaceMethods(name string, it *ast.InterfaceType) (methods []Method, err error) {
	defer func() {
		if r := recover(); r != nil {
			methods = nil
			err = errors.Newf(nil, "parse", errors.Unimplemented, "interface %v: %v", name, r)
		}
	}()
	return v.parseMethods(it), nil
}

func (v *Visitor) parseMethods(it *ast.InterfaceType) []Method {
	if it.Methods == nil || len(it.Methods.List) == 0 {
		return nil
	}

	var methods []Method
	for _, m := range it.Methods.List {
		method, ok := v.parseMethod(m)
		if ok {
			methods = append(methods, method)
		}
	}
	return methods
}

func (v Visitor) parseMethod(method *ast.Field) (Method, bool) {
	var result Method
	//field type must be function type
	ft, ok := method.Type.(*ast.FuncType)
	if !ok {
		return result, false
	}

	if len(method.Names) == 0 {
		return result, false
	}

	result.Name = method.Names[0].Name
	result.Comments = v.parseComments(method.Doc)

	params := v.parseFieldList(ft.Params)
	// generated code has to pass every parameter on, so each one needs a usable name
	nextParamId := 0
	for i, p := range params {
		if p.Name == "" || p.Name == "_" {
			params[i].Name = defaultParamName(nextParamId)
			nextParamId++
		}
	}

	result.Params = params
	result.Returns = v.parseFieldList(ft.Results)

	return result, true
}

func defaultParamName(i int) string {
	return fmt.Sprintf("p%v", i)
}

func (v Visitor) parseFieldList(fl *ast.FieldList) []Param {
	if fl == nil {
		return nil
	}
	var result []Param
	for _, field := range fl.List {
		result = append(result, v.parseParams(field)...)
	}
	return result
}

// A single field can declare multiple parameters, e.g. for the method declaration
// Method(a, b, c int) the three parameters would be represented by a single ast.Field.
func (v Visitor) parseParams(param *ast.Field) []Param {
	paramType := v.parseParamType(param.Type)
	//param.Names is nil for unnamed parameters, e.g. in return values
	if len(param.Names) == 0 {
		return []Param{{Type: paramType}}
	}
	result := make([]Param, len(param.Names))
	for i, name := range param.Names {
		result[i] = Param{
			Name: name.Name,
			Type: paramType,
		}
	}
	return result
}

// Anonymous structs and interfaces with methods are not handled and cause a panic.
func (v Visitor) parseParamType(t ast.Expr) ParamType {
	switch pt := t.(type) {
	case *ast.SelectorExpr, *ast.Ident:
		return v.parseNamedType(pt)
	case *ast.ParenExpr:
		return v.parseParamType(pt.X)
	case *ast.ArrayType:
		inner := v.parseParamType(pt.Elt)
		var length string
		if pt.Len != nil {
			length = types.ExprString(pt.Len)
		}
		return ArrayType{Type: inner, Len: length}
	case *ast.MapType:
		kpt := v.parseParamType(pt.Key)
		vpt := v.parseParamType(pt.Value)
		return MapType{KeyType: kpt, ValueType: vpt}
	case *ast.StarExpr:
		inner := v.parseParamType(pt.X)
		return StarType{Type: inner}
	case *ast.Ellipsis:
		return EllipsisType{Type: v.parseParamType(pt.Elt)}
	case *ast.IndexExpr:
		return GenericType{
			Type: v.parseNamedType(pt.X),
			Args: []ParamType{v.parseParamType(pt.Index)},
		}
	case *ast.IndexListExpr:
		args := make([]ParamType, len(pt.Indices))
		for i, index := range pt.Indices {
			args[i] = v.parseParamType(index)
		}
		return GenericType{Type: v.parseNamedType(pt.X), Args: args}
	case *ast.FuncType:
		return FuncType{
			Params:  v.parseFieldList(pt.Params),
			Returns: v.parseFieldList(pt.Results),
		}
	case *ast.ChanType:
		dir := ChanBoth
		if pt.Dir == ast.SEND {
			dir = ChanSend
		} else if pt.Dir == ast.RECV {
			dir = ChanRecv
		}
		return ChanType{Dir: dir, Type: v.parseParamType(pt.Value)}
	case *ast.InterfaceType:
		if pt.Methods != nil && len(pt.Methods.List) > 0 {
			panic("interface types with methods are not supported as parameter types")
		}
		return SimpleType{Type: "interface{}"}
	default:
		panic(fmt.Sprintf("unsupported parameter type: %v", types.ExprString(t)))
	}
}

// Parses a possibly qualified type name, e.g. "string", "User" or "rx.Observable".
func (v Visitor) parseNamedType(t ast.Expr) SimpleType {
	switch pt := t.(type) {
	case *ast.SelectorExpr:
		typeName := pt.Sel.Name
		var typePackageFull string
		if p, ok := pt.X.(*ast.Ident); ok {
			typePackageShort := p.Name
			typePackageFull, ok = v.Imports[typePackageShort]
			if !ok {
				panic(fmt.Sprintf("visitor does not contain full package name for package alias: %v", typePackageShort))
			}
		}
		return SimpleType{Type: typeName, Package: typePackageFull}
	case *ast.Ident:
		if isBasicType(pt.Name) {
			return SimpleType{Type: pt.Name}
		}
		//a type that is not a built-in type but has no package qualifier is defined in the current package
		return SimpleType{Type: pt.Name, Package: v.PackagePath}
	default:
		panic(fmt.Sprintf("expected a type name, got: %v", types.ExprString(t)))
	}
}
