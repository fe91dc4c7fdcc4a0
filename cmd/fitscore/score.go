package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/resume-fit-scorer/internal/app"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

func newScoreCmd() *cobra.Command {
	var resumePath, jobPath string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume file against a job description file and print the JSON result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resumePath == "" || jobPath == "" {
				return errors.New("--resume and --job are required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			resumeText, err := extractFile(ctx, cfg, resumePath)
			if err != nil {
				return err
			}
			jobText, err := extractFile(ctx, cfg, jobPath)
			if err != nil {
				return err
			}
			embedder, err := app.NewEmbedder(ctx, cfg, nil)
			if err != nil {
				return err
			}
			res, err := usecase.NewFitScorer(embedder, cfg.GetFitConfig()).Analyze(ctx, resumeText, jobText)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file (pdf, docx or txt)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job description file (pdf, docx or txt)")
	return cmd
}
