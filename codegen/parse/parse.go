// Package parse provides functionality to parse go files and create representations of
// code elements suitable for code generation.
package parse

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dkinzler/autogen/errors"

	"golang.org/x/mod/modfile"
)

// Recursively searches the directory given by path and parses
// any interfaces.
// Interfaces are returned ordered by package, file and position in the file.
func ParseDir(path string, module Module) ([]Interface, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.New(err, "parse", errors.InvalidArgument)
	}

	var result []Interface

	packages, err := findPackages(path, module)
	if err != nil {
		return nil, err
	}
	for _, pkg := range packages {
		i, err := findInterfacesInPackage(pkg)
		if err != nil {
			return nil, err
		}
		result = append(result, i...)
	}
	return result, nil
}

type pkgPath struct {
	// path to the package in the filesystem
	FilePath string
	// full package path, e.g. "github.com/xyz/abc"
	PackagePath string
}

// Returns a list of packages contained in directory root.
// Hidden directories, "testdata" and "vendor" directories below root are skipped, like the go tool does.
func findPackages(root string, module Module) ([]pkgPath, error) {
	var result []pkgPath
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		packagePath, err := module.PackagePathFromFilePath(path)
		if err != nil {
			return nil
		}
		result = append(result, pkgPath{
			PackagePath: packagePath,
			FilePath:    path,
		})
		return nil
	})
	if err != nil {
		return nil, errors.New(err, "parse", errors.NotFound).WithMessage("could not walk directory " + root)
	}
	return result, nil
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func findInterfacesInPackage(pkg pkgPath) ([]Interface, error) {
	var result []Interface

	// Parser.ParseDir does not work recursively, i.e. it will only consider files in the given directory and not any subdirectories.
	packageMap, err := parser.ParseDir(
		token.NewFileSet(),
		pkg.FilePath,
		func(fileInfo fs.FileInfo) bool {
			//exclude test files
			return !strings.HasSuffix(fileInfo.Name(), "_test.go")
		},
		parser.AllErrors|parser.ParseComments,
	)
	if err != nil {
		return nil, errors.Newf(err, "parse", errors.InvalidArgument, "could not parse directory %v", pkg.FilePath)
	}

	// There should at most be one package here,
	// since a single directory cannot contain files for more than one package (if the go code compiles).
	for _, p := range packageMap {
		// Name of package directory should match package path, i.e. files for a package "example.com/xyz/abc" should be in a directory "abc"
		// and each file should contain the line "package abc".
		if path.Base(pkg.PackagePath) != p.Name {
			continue
		}
		filenames := make([]string, 0, len(p.Files))
		for filename := range p.Files {
			filenames = append(filenames, filename)
		}
		sort.Strings(filenames)

		for _, filename := range filenames {
			i, err := findInterfacesInFile(p.Files[filename], pkg.PackagePath)
			if err != nil {
				return nil, errors.Newf(err, "parse", errors.Unimplemented, "could not parse interfaces in file %v", filename)
			}
			for j := 0; j < len(i); j++ {
				i[j].File = filename
			}
			result = append(result, i...)
		}
	}

	return result, nil
}

// Module provides functions to convert relative package names and file paths
// to absolute ones, based on a module.
type Module struct {
	// root path of the module in the filesystem
	Path string
	// name of the module, e.g. "github.com/xyz/abc"
	Name string
}

// Will find the module the given directory belongs to by searching for a go.mod file
// in the directory and its parents.
func NewModuleFromDir(dir string) (Module, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Module{}, errors.New(err, "parse", errors.InvalidArgument)
	}

	curr := dir
	for {
		content, err := os.ReadFile(filepath.Join(curr, "go.mod"))
		if err == nil {
			moduleName := modfile.ModulePath(content)
			if moduleName == "" {
				return Module{}, errors.Newf(nil, "parse", errors.InvalidArgument, "no module directive in %v", filepath.Join(curr, "go.mod"))
			}
			return Module{
				Path: curr,
				Name: moduleName,
			}, nil
		}
		if !os.IsNotExist(err) {
			return Module{}, errors.New(err, "parse", errors.Internal).WithMessage("error while trying to locate module")
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			break
		}
		curr = parent
	}

	return Module{}, errors.Newf(nil, "parse", errors.NotFound, "no go module found for directory %v", dir)
}

// Returns a package path without the module prefix.
// E.g. when called with "example.com/xyz/abc" on a module with name "example.com/xyz"
// will return "abc".
func (m Module) PackagePathWithoutModule(p string) string {
	result := strings.TrimPrefix(p, m.Name)
	return strings.TrimPrefix(result, "/")
}

// Returns the full package path for the given relative package, i.e. the module name is added as a prefix.
// Package paths that already start with the module name are returned unchanged.
func (m Module) FullPackagePath(p string) string {
	if p == m.Name || strings.HasPrefix(p, m.Name+"/") {
		return p
	}
	return path.Join(m.Name, p)
}

// Absolute file path for the file in the given package.
func (m Module) FileName(packageName, fileName string) string {
	packageName = m.PackagePathWithoutModule(packageName)
	return filepath.Join(m.Path, filepath.FromSlash(packageName), fileName)
}

// Returns the package path from a given file path.
// E.g. if the root module path is /abc/xyz/somemodule, the module name is somemodule
// and the file path is "/abc/xyz/somemodule/internal/xyz/file.go" then
// the resulting package path would be "somemodule/internal/xyz".
// Note that for this to work the given file path must have the root path of the module as a prefix
func (m Module) PackagePathFromFilePath(filePath string) (string, error) {
	filePath = filepath.Clean(filePath)
	if filepath.Ext(filePath) == ".go" {
		//remove filename if there is one
		filePath = filepath.Dir(filePath)
	}
	pp, err := filepath.Rel(m.Path, filePath)
	if err != nil || pp == ".." || strings.HasPrefix(pp, ".."+string(filepath.Separator)) {
		return "", errors.Newf(err, "parse", errors.InvalidArgument, "cannot compute package path, file is outside module directory: %v", filePath)
	}

	return path.Join(m.Name, filepath.ToSlash(pp)), nil
}

// Returns the parent of the given package, e.g. "example.com/abc/api" for "example.com/abc/api/service".
// Packages outside the module or the module root package itself have no parent inside the module.
func (m Module) ParentPackage(p string) (string, error) {
	if p == m.Name || !strings.HasPrefix(p, m.Name+"/") {
		return "", errors.Newf(nil, "parse", errors.InvalidArgument, "package %v has no parent package in module %v", p, m.Name)
	}
	return path.Dir(p), nil
}
