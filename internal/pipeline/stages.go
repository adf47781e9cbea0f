package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/TileDB-Inc/docconf/internal/logfields"
	"github.com/TileDB-Inc/docconf/internal/metrics"
	"github.com/TileDB-Inc/docconf/internal/observability"
)

// StageName is a strongly-typed identifier for a load stage.
type StageName string

// Canonical stage names.
const (
	StageEnvironment StageName = "environment"
	StageAPIDoc      StageName = "apidoc"
	StageSidebar     StageName = "sidebar"
	StageSetup       StageName = "setup"
	StageSources     StageName = "stage_sources"
	StageRender      StageName = "render"
)

// errStageSkipped lets a stage report that it had nothing to do.
var errStageSkipped = errors.New("stage skipped")

// runStage times fn and records its outcome. Stages run strictly in sequence.
func runStage(ctx context.Context, rec metrics.Recorder, name StageName, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, string(name))
	start := time.Now()
	observability.DebugContext(ctx, "Starting stage")

	err := fn(ctx)
	d := time.Since(start)
	rec.ObserveStageDuration(string(name), d)
	if errors.Is(err, errStageSkipped) {
		rec.IncStageResult(string(name), metrics.ResultSkipped)
		observability.DebugContext(ctx, "Stage skipped")
		return nil
	}
	if err != nil {
		rec.IncStageResult(string(name), metrics.ResultFatal)
		observability.ErrorContext(ctx, "Stage failed", logfields.Error(err))
		return err
	}
	rec.IncStageResult(string(name), metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage completed", logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}
