package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statlab/adapters/excel"
	"statlab/adapters/gonumdist"
	"statlab/adapters/store"
	"statlab/app"
	"statlab/internal/config"
	"statlab/internal/render"
)

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "statlab-cli",
		Short: "Descriptive statistics and confidence intervals for sample records",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newBatchCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var samplesDir string

	cmd := &cobra.Command{
		Use:   "analyze [sample-name]",
		Short: "Analyze one sample and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := store.NewFileSource(samplesDir)
			service := app.NewAnalysisService(gonumdist.New())

			record, err := source.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report, err := service.Analyze(record)
			if err != nil {
				return fmt.Errorf("analysis of %s failed: %w", args[0], err)
			}

			render.NewConsole(cmd.OutOrStdout()).Render(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&samplesDir, "samples-dir", defaultSamplesDir(), "Directory holding sample JSON files")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var samplesDir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze every sample in the samples directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			source := store.NewFileSource(samplesDir)
			service := app.NewAnalysisService(gonumdist.New())
			runner := app.NewBatchRunner(service, concurrency)

			records, err := source.LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			results, err := runner.Run(cmd.Context(), records)
			if err != nil {
				return err
			}

			console := render.NewConsole(cmd.OutOrStdout())
			failed := 0
			for _, result := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n", result.Name)
				if result.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "failed: %v\n\n", result.Err)
					continue
				}
				console.Render(result.Report)
				fmt.Fprintln(cmd.OutOrStdout())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d samples failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&samplesDir, "samples-dir", defaultSamplesDir(), "Directory holding sample JSON files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of samples analyzed in parallel")
	return cmd
}

func newExportCmd() *cobra.Command {
	var samplesDir string
	var reportsDir string

	cmd := &cobra.Command{
		Use:   "export [sample-name]",
		Short: "Analyze one sample and export the report as an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := store.NewFileSource(samplesDir)
			service := app.NewAnalysisService(gonumdist.New())
			writer := excel.NewReportWriter(reportsDir)

			record, err := source.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report, err := service.Analyze(record)
			if err != nil {
				return fmt.Errorf("analysis of %s failed: %w", args[0], err)
			}

			path, err := writer.Write(cmd.Context(), report)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&samplesDir, "samples-dir", defaultSamplesDir(), "Directory holding sample JSON files")
	cmd.Flags().StringVar(&reportsDir, "reports-dir", "reports", "Directory for exported workbooks")
	return cmd
}

func defaultSamplesDir() string {
	if cfg, err := config.Load(); err == nil {
		return cfg.Paths.SamplesDir
	}
	return "samples"
}
