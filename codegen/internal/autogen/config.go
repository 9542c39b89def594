package autogen

import (
	"os"

	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/errors"

	"gopkg.in/yaml.v3"
)

// Name of the configuration file looked up in the module root if no file is given explicitly.
const DefaultConfigFile = "autogen.yaml"

// TypeRef identifies a named type by the full path of its package and its name.
type TypeRef struct {
	Package string `yaml:"package"`
	Name    string `yaml:"name"`
}

// Functions of the request helper package the generated request types call.
type RequestHelperConfig struct {
	Package string `yaml:"package"`
	// returns the helper instance, e.g. http.GetInstance()
	Instance string `yaml:"instance"`
	// generic function creating the service implementation, e.g. http.CreateService[I](helper)
	CreateService string `yaml:"createService"`
	// same as CreateService but takes a host as second argument
	CreateServiceWithHost string `yaml:"createServiceWithHost"`
}

// Config identifies the external types and functions that generated code refers to.
// The generator never checks that they exist, it only matches and emits them by name.
type Config struct {
	// generic reactive stream type with one type parameter
	Observable TypeRef `yaml:"observable"`
	// generic response envelope with one type parameter
	Envelope TypeRef `yaml:"envelope"`
	// Base type embedded by generated repositories.
	// The transform functions (HandleResult, ApplySchedulers, ...) are looked up in the same package.
	Repository    TypeRef             `yaml:"repository"`
	RequestHelper RequestHelperConfig `yaml:"requestHelper"`
	// Overrides the function name emitted for a transform, e.g. "handleResult": "HandleResponse".
	// By default the transform name with an uppercase first letter is used.
	Functions map[string]string `yaml:"functions"`

	// If true, a downgraded scheduler directive fails generation of the interface.
	Strict bool `yaml:"strict"`
}

func DefaultConfig() Config {
	return Config{
		Observable: TypeRef{Package: "github.com/dkinzler/baselib/rx", Name: "Observable"},
		Envelope:   TypeRef{Package: "github.com/dkinzler/baselib/model/response", Name: "BaseResponse"},
		Repository: TypeRef{Package: "github.com/dkinzler/baselib/model/repository", Name: "AbsRepository"},
		RequestHelper: RequestHelperConfig{
			Package:               "github.com/dkinzler/baselib/model/http",
			Instance:              "GetInstance",
			CreateService:         "CreateService",
			CreateServiceWithHost: "CreateServiceWithHost",
		},
	}
}

// LoadConfig reads a yaml configuration file, values that are not set in the file keep their default.
// Returns a NotFound error if the file does not exist.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, errors.Newf(err, "autogen", errors.NotFound, "config file %v not found", path)
		}
		return config, errors.Newf(err, "autogen", errors.Internal, "could not read config file %v", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), errors.Newf(err, "autogen", errors.InvalidArgument, "could not parse config file %v", path)
	}
	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

// Validate returns an InvalidArgument error if a type or function name is empty.
func (c Config) Validate() error {
	refs := map[string]TypeRef{
		"observable": c.Observable,
		"envelope":   c.Envelope,
		"repository": c.Repository,
	}
	for _, key := range []string{"observable", "envelope", "repository"} {
		ref := refs[key]
		if ref.Package == "" || ref.Name == "" {
			return errors.Newf(nil, "autogen", errors.InvalidArgument, "config: %v needs a package and a name", key)
		}
	}
	rh := c.RequestHelper
	if rh.Package == "" || rh.Instance == "" || rh.CreateService == "" || rh.CreateServiceWithHost == "" {
		return errors.Newf(nil, "autogen", errors.InvalidArgument, "config: requestHelper is incomplete")
	}
	for transform, name := range c.Functions {
		if name == "" {
			return errors.Newf(nil, "autogen", errors.InvalidArgument, "config: empty function name for transform %v", transform)
		}
	}
	return nil
}

// Name of the function in the base repository package that implements a transform.
func (c Config) FunctionName(transform string) string {
	if name, ok := c.Functions[transform]; ok {
		return name
	}
	return gen.UppercaseFirst(transform)
}
