package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"

	"github.com/spf13/cobra"
)

var (
	analyzeRenderer string
	analyzePNG      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <submission.json>",
	Short: "Analyze a single task submission offline",
	Long: `Analyze reads a task submission in the same JSON shape the server accepts
and prints the resulting task analysis. With --png the trajectory image is
written to a file instead of being embedded in the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRenderer, "renderer", analysis.RendererPNG, "trajectory renderer (png or echarts)")
	analyzeCmd.Flags().StringVar(&analyzePNG, "png", "", "write the trajectory PNG to this path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read submission: %w", err)
	}

	var sub models.TaskSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}

	rendererName := analyzeRenderer
	if analyzePNG != "" {
		rendererName = analysis.RendererPNG
	}
	renderer, err := analysis.NewRenderer(rendererName, false)
	if err != nil {
		return err
	}

	result, err := analysis.NewAnalyzer(nil, renderer).ProcessTask(sub)
	if err != nil {
		return err
	}

	if analyzePNG != "" && result.Visualization != "" {
		if err := writeDataURI(analyzePNG, result.Visualization); err != nil {
			return err
		}
		result.Visualization = analyzePNG
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeDataURI(path, uri string) error {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return fmt.Errorf("visualization is not a base64 data URI")
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("failed to decode visualization: %w", err)
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
