package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/chart"
	"github.com/Zachkp/portfolio/content"
)

var (
	configPath  string
	personaKey  string
	chartOutput string
	fetchOutput string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Personal portfolio site",
		RunE:  runServe,
		// Failures are load or config errors, not usage mistakes.
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("PORTFOLIO_CONFIG", "portfolio.yaml"), "YAML config file (optional)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a persona's certifications chart to a PNG file",
		RunE:  runChart,
	}
	chartCmd.Flags().StringVar(&personaKey, "persona", "", "Persona key (default: configured default persona)")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "certifications.png", "Output PNG path")

	fetchCmd := &cobra.Command{
		Use:   "fetch [path-or-url]",
		Short: "Load a local file or URL and write its bytes",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(serveCmd, chartCmd, fetchCmd)
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	stats, err := openStatsStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer stats.Close()

	srv, err := newServer(cfg, stats, content.NewResolver())
	if err != nil {
		return err
	}
	go srv.cleanupOldVisitorData()

	log.Printf("Serving portfolio on :%s", cfg.Port)
	return srv.router("templates/*").Run(":" + cfg.Port)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	key := personaKey
	if key == "" {
		key = cfg.Chart.DefaultPersona
	}
	p, ok := personaByKey(key)
	if !ok {
		return fmt.Errorf("unknown persona: %s", key)
	}

	img, err := chart.RenderBarChart(p.Certifications, cfg.Chart.XLabel, cfg.Chart.YLabel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(chartOutput, img, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s chart to %s\n", p.Name, chartOutput)
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ref := content.ParseReference(args[0])
	data, ok := content.NewResolver().Resolve(context.Background(), ref).Bytes()
	if !ok {
		if content.IsRemote(ref) {
			return fmt.Errorf("URL '%s' could not be fetched", ref)
		}
		return fmt.Errorf("file '%s' not found", ref)
	}

	if fetchOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(fetchOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fetchOutput, err)
	}
	return nil
}
