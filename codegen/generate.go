package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dkinzler/autogen/codegen/annotations"
	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/codegen/internal/autogen"
	"github.com/dkinzler/autogen/codegen/parse"
	"github.com/dkinzler/autogen/errors"
	"github.com/dkinzler/autogen/log"
)

type GeneratorConfig struct {
	InputDir string

	ModuleName string
	ModulePath string

	//whether or not stop generating on first error or continue
	FailOnError bool
	//treat downgraded scheduler directives as errors
	Strict bool
	//yaml config file, if empty autogen.yaml in the module root is used if it exists
	ConfigFile string
	//print file paths instead of writing files
	DryRun bool
}

func generate(config GeneratorConfig, logger log.Logger, out io.Writer) error {
	files, err := generateFiles(config, logger, autogen.NewConsoleReporter(os.Stderr, &logger))
	if err != nil {
		return err
	}

	for _, gf := range files {
		if config.DryRun {
			fmt.Fprintln(out, gf.Path)
			continue
		}
		if err := gf.Save(); err != nil {
			if config.FailOnError {
				return err
			}
			logger.WithError(err).Error().Log("msg", "could not save file", "file", gf.Path)
			continue
		}
		logger.Info().Log("msg", "generated file", "file", gf.Path)
	}
	return nil
}

// Returns the files generated for all @Autogen interfaces in the input directory, without writing them.
func generateFiles(config GeneratorConfig, logger log.Logger, reporter autogen.Reporter) ([]gen.GeneratedFile, error) {
	var module parse.Module
	var err error
	if config.ModuleName != "" && config.ModulePath != "" {
		module = parse.Module{
			Path: config.ModulePath,
			Name: config.ModuleName,
		}
	} else {
		logger.Debug().Log("msg", "searching for go module", "dir", config.InputDir)
		module, err = parse.NewModuleFromDir(config.InputDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Log("msg", "found go module", "module", module.Name, "dir", module.Path)
	}

	genConfig, err := loadConfig(config, module)
	if err != nil {
		return nil, err
	}
	genConfig.Strict = genConfig.Strict || config.Strict

	is, err := parse.ParseDir(config.InputDir, module)
	if err != nil {
		return nil, err
	}

	var generatedCode []gen.GenResult
	// generated type -> interface it was generated for
	generatedTypes := make(map[string]string)

	for _, i := range is {
		results, err := generateInterface(i, module, genConfig, logger, reporter, generatedTypes)
		if err != nil {
			if config.FailOnError {
				return nil, err
			}
			//move to next interface
			logger.WithError(err).Error().Log("msg", "skipping interface", "interface", i.Name)
			continue
		}
		generatedCode = append(generatedCode, results...)
	}

	return gen.MergeResults(generatedCode), nil
}

// Interfaces without an @Autogen annotation are ignored, even if their methods could not be parsed.
// Types generated for the interface are added to generatedTypes, an interface that would generate
// a type already generated for another interface is an error.
func generateInterface(i parse.Interface, module parse.Module, config autogen.Config, logger log.Logger, reporter autogen.Reporter, generatedTypes map[string]string) ([]gen.GenResult, error) {
	a, err := annotations.ParseInterfaceAnnotations(i)
	if err != nil {
		return nil, err
	}
	if _, ok := a[autogen.AnnotationName]; !ok && i.Err != nil {
		logger.WithError(i.Err).Debug().Log("msg", "ignoring interface that could not be parsed", "interface", i.Name)
		return nil, nil
	}

	var result []gen.GenResult
	for name, annotation := range a {
		if name != autogen.AnnotationName {
			logger.Debug().Log("msg", "ignoring annotation", "annotation", name, "interface", i.Name)
			continue
		}
		if i.Err != nil {
			return nil, i.Err
		}
		s, err := autogen.ServiceFromAnnotation(i, module, annotation, config)
		if err != nil {
			return nil, err
		}
		types := []string{
			s.RequestPackage + "." + s.RequestTypeName(),
			s.RepositoryPackage + "." + s.RepositoryTypeName(),
		}
		for _, t := range types {
			if other, ok := generatedTypes[t]; ok {
				return nil, errors.Newf(nil, "autogen", errors.InvalidArgument, "interfaces %v and %v both generate %v", other, i.Name, t)
			}
		}
		files, err := autogen.NewGenerator(s, reporter).Generate()
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			generatedTypes[t] = i.Name
		}
		logger.Debug().Log("msg", "generated code", "interface", i.Name, "methods", len(s.Methods))
		result = append(result, files...)
	}
	return result, nil
}

func loadConfig(config GeneratorConfig, module parse.Module) (autogen.Config, error) {
	if config.ConfigFile != "" {
		return autogen.LoadConfig(config.ConfigFile)
	}
	c, err := autogen.LoadConfig(filepath.Join(module.Path, autogen.DefaultConfigFile))
	if errors.IsNotFoundError(err) {
		return autogen.DefaultConfig(), nil
	}
	return c, err
}
