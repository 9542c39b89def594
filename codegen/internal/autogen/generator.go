package autogen

import (
	"strings"

	"github.com/dkinzler/autogen/codegen/gen"
	"github.com/dkinzler/autogen/errors"
)

// Generator generates the request and repository code for a service.
// Diagnostics are passed to the reporter, in strict mode they also fail generation.
type Generator struct {
	Service  Service
	Reporter Reporter
}

// Reporter can be nil, diagnostics are then only considered in strict mode.
func NewGenerator(s Service, r Reporter) *Generator {
	return &Generator{
		Service:  s,
		Reporter: r,
	}
}

func (g *Generator) Generate() ([]gen.GenResult, error) {
	plans, diagnostics := PlanService(g.Service)
	if g.Reporter != nil {
		for _, d := range diagnostics {
			g.Reporter.Report(d)
		}
	}
	if g.Service.Config.Strict && len(diagnostics) > 0 {
		messages := make([]string, len(diagnostics))
		for i, d := range diagnostics {
			messages[i] = d.String()
		}
		return nil, errors.Newf(nil, "autogen", errors.FailedPrecondition, "strict mode: %v", strings.Join(messages, "; "))
	}

	request, err := NewRequestGenerator(g.Service).Generate()
	if err != nil {
		return nil, err
	}
	repository, err := NewRepositoryGenerator(g.Service, plans).Generate()
	if err != nil {
		return nil, err
	}
	return append(request, repository...), nil
}
