package parse

// Interface represents an interface in a more compact way than a tree from the "go/ast" package,
// which makes it easier to work with for code generation.
type Interface struct {
	// Name of the interface
	Name string
	// Package the interface is defined in
	Package string
	// Methods of the interface
	Methods []Method
	// Comments belonging to this interface, i.e. the comments directly above the type definition in the source code.
	Comments []string

	//the file (path) this interface is defined in
	File string

	// Set if the methods could not be parsed, e.g. because a parameter is an anonymous struct.
	// Methods is empty in that case.
	Err error
}

// Method represents a method of an interface.
type Method struct {
	// Name of the method
	Name string
	// Parameters/Arguments
	Params []Param
	// Return values
	Returns []Param
	// Comments belonging to this method, i.e. the comments directly above the method definition in the source code.
	Comments []string
}

// Param represents a method parameter or return value
type Param struct {
	// Name of the parameter, e.g. "ctx" for the parameter definition "ctx context.Context".
	Name string
	// Type of the parameter
	Type ParamType
}

// Represents the type of a parameter.
// Note: anonymous structs and interfaces with methods are not supported.
type ParamType interface {
	// Returns a list of all the packages required by this type.
	// E.g. a type map[context.Context]*http.Request requires the packages "context" and "net/http".
	Packages() []string
}

// Simple types are: bool, string, error, int, float (and all the variations of the numeric types), any, interface{}, structs like http.Request.
// They consist of just the type name and possibly a package prefix.
// Note that pointers (*http.Request), slices, maps, function types, channels and instantiated generic types are composite types.
type SimpleType struct {
	// Name of the type, e.g. "string" or "Request" for "http.Request"
	Type string
	// Full path of the package the type is defined in, e.g. "net/http" for "http.Request"
	// Empty for built-in types.
	Package string
}

func (t SimpleType) Packages() []string {
	if t.Package == "" {
		return nil
	}
	return []string{t.Package}
}

// Represents a map type recursively.
type MapType struct {
	KeyType   ParamType
	ValueType ParamType
}

func (t MapType) Packages() []string {
	return append(t.KeyType.Packages(), t.ValueType.Packages()...)
}

// A slice or, if Len is not empty, an array type.
type ArrayType struct {
	Type ParamType
	// Length expression of an array type as written in the source, e.g. "4", empty for slices.
	Len string
}

func (at ArrayType) Packages() []string {
	return at.Type.Packages()
}

type StarType struct {
	Type ParamType
}

func (st StarType) Packages() []string {
	return st.Type.Packages()
}

// The type of a variadic parameter, e.g. "...string". Can only appear as the type of the last parameter.
type EllipsisType struct {
	Type ParamType
}

func (et EllipsisType) Packages() []string {
	return et.Type.Packages()
}

// An instantiated generic type, e.g. rx.Observable[response.BaseResponse[User]].
type GenericType struct {
	// The generic type itself, e.g. rx.Observable
	Type SimpleType
	// Type arguments in declaration order
	Args []ParamType
}

func (gt GenericType) Packages() []string {
	result := gt.Type.Packages()
	for _, arg := range gt.Args {
		result = append(result, arg.Packages()...)
	}
	return result
}

// A function type, e.g. "func(int) error". Parameter names are kept if present.
type FuncType struct {
	Params  []Param
	Returns []Param
}

func (ft FuncType) Packages() []string {
	var result []string
	for _, p := range ft.Params {
		result = append(result, p.Type.Packages()...)
	}
	for _, p := range ft.Returns {
		result = append(result, p.Type.Packages()...)
	}
	return result
}

// ChanDir is the direction of a channel type.
type ChanDir int

const (
	ChanBoth ChanDir = iota
	ChanSend
	ChanRecv
)

type ChanType struct {
	Dir  ChanDir
	Type ParamType
}

func (ct ChanType) Packages() []string {
	return ct.Type.Packages()
}

var basicTypes = []string{
	"any",
	"bool",
	"string",
	"error",
	"int",
	"int8",
	"int16",
	"int32",
	"int64",
	"uint",
	"uint8",
	"uint16",
	"uint32",
	"uint64",
	"uintptr",
	"byte",
	"rune",
	"float32",
	"float64",
	"complex64",
	"complex128",
}

func isBasicType(t string) bool {
	for _, bt := range basicTypes {
		if t == bt {
			return true
		}
	}
	return false
}

func IsSimpleType(p ParamType, typeName, packageName string) bool {
	if st, ok := p.(SimpleType); ok {
		if st.Type == typeName && st.Package == packageName {
			return true
		}
		return false
	}
	return false
}

// GenericArgs returns the type arguments of p if p is an instantiation of the generic type packageName.typeName.
// The second return value is false for any other type, including the uninstantiated type itself.
func GenericArgs(p ParamType, typeName, packageName string) ([]ParamType, bool) {
	gt, ok := p.(GenericType)
	if !ok {
		return nil, false
	}
	if gt.Type.Type != typeName || gt.Type.Package != packageName {
		return nil, false
	}
	return gt.Args, true
}
