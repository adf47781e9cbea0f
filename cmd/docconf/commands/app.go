package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	derrors "github.com/TileDB-Inc/docconf/internal/errors"
	"github.com/TileDB-Inc/docconf/internal/observability"
	"github.com/TileDB-Inc/docconf/internal/version"
)

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(args []string, in io.Reader, out, errOut io.Writer) int {
	cli := CLI{logOut: errOut}
	parser, err := kong.New(&cli,
		kong.Name("docconf"),
		kong.Description("Prepare the TileDB documentation build."),
		kong.Writers(out, errOut),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		return derrors.NewCLIErrorAdapter(false, nil).Handle(derrors.InternalError("build command parser", err))
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.WithBuildID(ctx, observability.NewBuildID())

	err = kctx.Run(&Global{Ctx: ctx, Logger: cli.logger, In: in, Out: out}, &cli)
	if err == nil {
		return 0
	}
	adapter := derrors.NewCLIErrorAdapter(cli.Verbose, cli.logger)
	adapter.SetOutput(errOut)
	return adapter.Handle(err)
}
