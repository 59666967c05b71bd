package main

import (
	"context"
	"flag"
	"io"
	"log"

	"github.com/eringen/iconshelf/generator"
)

type generateConfig struct {
	SourceDir string `env:"ICONSHELF_SOURCE_DIR" envDefault:"public/icons"`
	Output    string `env:"ICONSHELF_OUTPUT" envDefault:"public/icons-metadata.json"`
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg generateConfig
	if err := parseEnv(&cfg); err != nil {
		return err
	}
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.SourceDir, "source", cfg.SourceDir, "icon source directory")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "catalog document to write")
	if err := fs.Parse(args); err != nil {
		return err
	}

	summary, err := generator.Run(ctx, generator.Config{
		SourceDir: cfg.SourceDir,
		Output:    cfg.Output,
		Logger:    log.New(stderr, "", log.LstdFlags),
	})
	if err != nil {
		return err
	}
	summary.Print(stdout)
	return nil
}
