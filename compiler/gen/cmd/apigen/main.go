// apigen generates typed model bindings from schema snapshot files.
//
// Snapshots are the JSON form produced by load.MarshalSchema, one
// file per schema:
//
//	apigen -target ./models -pkg example.com/app/models \
//	    -schema example.com/app/schema ./snapshots/*.json
//
// With -watch the snapshot directory is watched and bindings are
// regenerated on change.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/TerraSkye/api-client/compiler/gen"
	"github.com/TerraSkye/api-client/compiler/load"
	"github.com/TerraSkye/api-client/internal/ctxlog"
)

func main() {
	var (
		target  = flag.String("target", "", "output directory for generated code")
		pkg     = flag.String("pkg", "", "import path of the generated package")
		schema  = flag.String("schema", "", "import path of the schema package (enables runtime.go)")
		header  = flag.String("header", "", "override the generated file header")
		workers = flag.Int("workers", 0, "parallel file writes (0 = GOMAXPROCS)")
		watch   = flag.Bool("watch", false, "watch snapshot files and regenerate on change")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "apigen: no snapshot files given")
		flag.Usage()
		os.Exit(2)
	}
	if err := run(ctx, flag.Args(), *target, *pkg, *schema, *header, *workers, *watch); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, snapshots []string, target, pkg, schema, header string, workers int, watch bool) error {
	opts := []gen.Option{
		gen.WithTarget(target),
		gen.WithPackage(pkg),
		gen.WithWorkers(workers),
	}
	if schema != "" {
		opts = append(opts, gen.WithSchema(schema))
	}
	if header != "" {
		opts = append(opts, gen.WithHeader(header))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}

	regen := func(ctx context.Context) error {
		schemas, err := readSnapshots(snapshots)
		if err != nil {
			return err
		}
		graph, err := gen.NewGraph(cfg, schemas...)
		if err != nil {
			return err
		}
		if err := gen.Generate(ctx, graph); err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("generated bindings",
			"types", len(graph.Nodes), "target", cfg.Target)
		return nil
	}

	if err := regen(ctx); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err = gen.Watch(ctx, filepath.Dir(snapshots[0]), regen)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func readSnapshots(paths []string) ([]*load.Schema, error) {
	schemas := make([]*load.Schema, 0, len(paths))
	for _, path := range paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
		}
		s, err := load.UnmarshalSchema(buf)
		if err != nil {
			return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}
