// Package sidebar hands the environment descriptor to a sidebar generator so
// every sibling documentation site renders the same navigation.
package sidebar

import (
	"context"

	"github.com/TileDB-Inc/docconf/internal/environment"
	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/observability"
)

// Generator produces navigation for one product site. Anything it produces is
// a side effect; only the error is consumed.
type Generator interface {
	Generate(ctx context.Context, params environment.Params, project string) error
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, params environment.Params, project string) error

func (f GeneratorFunc) Generate(ctx context.Context, params environment.Params, project string) error {
	return f(ctx, params, project)
}

// Delegate calls gen with env's named fields and project. Errors are returned
// unchanged.
func Delegate(ctx context.Context, gen Generator, env environment.Descriptor, project string) error {
	params := env.Params()
	observability.DebugContext(ctx, "Generating sidebar",
		logfields.Project(project), logfields.Hosted(params.OnRTD), logfields.Channel(params.RTDVersion.String()))
	return gen.Generate(ctx, params, project)
}
