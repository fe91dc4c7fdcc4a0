package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/resume-fit-scorer/internal/app"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

const cliName = "fitscore"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           cliName,
		Short:         "fitscore extracts resume text and scores resumes against job descriptions",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			lvl := slog.LevelWarn
			if debug {
				lvl = slog.LevelDebug
			}
			// stdout carries command output; logs go to stderr.
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))
		},
	}
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	root.AddCommand(newExtractCmd(), newScoreCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", cliName, version)
		},
	}
}

// extractFile reads path and runs it through the configured extractor.
func extractFile(ctx context.Context, cfg config.Config, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, cfg.MaxUploadMB<<20+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > cfg.MaxUploadMB<<20 {
		return "", fmt.Errorf("%w: %s exceeds %d MB", domain.ErrInvalidArgument, path, cfg.MaxUploadMB)
	}
	extractor, _ := app.NewExtractor(cfg)
	doc, err := usecase.NewResumeService(extractor).Extract(ctx, domain.ResumeDocument{
		Filename: path,
		MIME:     mimetype.Detect(data).String(),
		Data:     data,
	})
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
