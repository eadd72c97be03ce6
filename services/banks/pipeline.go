package banks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	devenv "banks-etl/dev/env"
	"banks-etl/lib/progresslog"
	"banks-etl/lib/restyutil"

	"go.opentelemetry.io/otel/codes"
)

type Options struct {
	// receives the stage messages, defaults to slog.Default()
	Progress *slog.Logger
	// receives the query reports, defaults to os.Stdout
	Out io.Writer
	// see ExtractorOptions.Output
	HttpOutput restyutil.InstrumentOutput
}

type Pipeline struct {
	cfg       Config
	extractor *Extractor
	progress  *slog.Logger
	out       io.Writer
}

func NewPipeline(cfg Config, opts Options) *Pipeline {
	if opts.Progress == nil {
		opts.Progress = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Pipeline{
		cfg: cfg,
		extractor: NewExtractor(ExtractorOptions{
			Timeout:          cfg.Timeout(),
			UserAgent:        cfg.UserAgent,
			CloudflareBypass: cfg.CloudflareBypass,
			Output:           opts.HttpOutput,
		}),
		progress: opts.Progress,
		out:      opts.Out,
	}
}

// OpenProgressLogger returns a logger writing stage lines to the file at
// `path` as well as to `console`. Callers must close the returned file.
func OpenProgressLogger(path string, console slog.Handler) (*slog.Logger, *os.File, error) {
	path, err := devenv.ResolvePath(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := progresslog.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	handler := progresslog.Tee(progresslog.NewHandler(f, slog.LevelInfo), console)
	return slog.New(handler), f, nil
}

func (p *Pipeline) log(ctx context.Context, msg string) {
	p.progress.InfoContext(ctx, msg)
}

// Run executes extract, transform, load and the report queries once, in that
// order. The first failing stage aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Pipeline.Run")
	defer span.End()

	err := p.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline failed")
	}
	return err
}

func (p *Pipeline) run(ctx context.Context) error {
	err := p.cfg.Validate()
	if err != nil {
		return err
	}
	exchangeRatePath, err := devenv.ResolvePath(p.cfg.ExchangeRatePath)
	if err != nil {
		return err
	}
	outputPath, err := devenv.ResolvePath(p.cfg.OutputPath)
	if err != nil {
		return err
	}

	p.log(ctx, "Preliminaries complete. Initiating ETL process.")

	extracted, err := p.extractor.Extract(ctx, p.cfg.Url, p.cfg.TableAttributes)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	p.log(ctx, "Data extraction complete. Initiating Transformation process.")

	transformed, err := TransformFile(ctx, extracted, exchangeRatePath)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	p.log(ctx, "Data transformation complete. Initiating loading process.")

	err = LoadCSV(ctx, transformed, outputPath)
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}
	p.log(ctx, "Data saved to CSV file.")

	db, err := p.cfg.Database.OpenDB()
	if err != nil {
		return fmt.Errorf("load db: %w", err)
	}
	p.log(ctx, "SQL Connection initiated")

	err = LoadDB(ctx, db, transformed, p.cfg.TableName)
	if err != nil {
		db.Close()
		return fmt.Errorf("load db: %w", err)
	}
	p.log(ctx, "Data loaded to Database as table. Running the query.")

	err = RunQueries(ctx, db, p.cfg.TableName, p.out)
	if err != nil {
		db.Close()
		return fmt.Errorf("query: %w", err)
	}
	p.log(ctx, "Process Complete.")

	err = db.Close()
	if err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	p.log(ctx, "Server Connection closed")

	return nil
}

// Extract runs only the extract stage with the pipeline's settings.
func (p *Pipeline) Extract(ctx context.Context) error {
	err := p.cfg.Validate()
	if err != nil {
		return err
	}
	f, err := p.extractor.Extract(ctx, p.cfg.Url, p.cfg.TableAttributes)
	if err != nil {
		return err
	}
	result := QueryResult{Columns: f.Columns()}
	for i := 0; i < f.Len(); i++ {
		result.Rows = append(result.Rows, f.Row(i))
	}
	result.Render(p.out)
	return nil
}
