// Command pipeline-report summarizes a pipeline run and the child workflows it started
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "default"
)

// Config holds the command line options
type Config struct {
	TemporalHost string
	Namespace    string
	WorkflowID   string
	RunID        string
	OutputFile   string
	Wait         bool
	PollInterval time.Duration
	MaxDepth     int
	MaxWorkflows int
	PageSize     int
	Concurrency  int
	QueryTimeout time.Duration
}

func main() {
	cfg := parseFlags()
	if cfg.WorkflowID == "" {
		fmt.Println("Error: -workflow-id is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)

	var last *Report
	for polls := 1; ; polls++ {
		report, err := collectReport(ctx, c, cfg, time.Now())
		if err != nil {
			if ctx.Err() != nil && last != nil {
				break
			}
			fmt.Printf("\nError collecting report: %v\n", err)
			os.Exit(1)
		}
		last = report

		if !cfg.Wait || report.Root.Closed() {
			break
		}
		fmt.Printf("\r⏳ Waiting for %s (polls: %d, elapsed: %s, children: %d)    ",
			report.Root.WorkflowType, polls, formatDuration(report.Root.Duration(report.GeneratedAt)), len(report.Descendants))

		select {
		case <-ctx.Done():
		case <-time.After(cfg.PollInterval):
			continue
		}
		fmt.Println("\nInterrupted, showing partial results")
		break
	}

	fmt.Println()
	printReport(os.Stdout, last)

	if cfg.OutputFile != "" {
		if err := writeMarkdown(cfg.OutputFile, last); err != nil {
			fmt.Printf("Warning: failed to write report: %v\n", err)
			return
		}
		fmt.Printf("Report written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.StringVar(&cfg.WorkflowID, "workflow-id", "", "Pipeline workflow ID (required)")
	flag.StringVar(&cfg.RunID, "run-id", "", "Specific run ID (optional)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Markdown report path (optional)")
	flag.BoolVar(&cfg.Wait, "wait", false, "Poll until the pipeline closes")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", 5*time.Second, "Interval between polls with -wait")
	flag.IntVar(&cfg.MaxDepth, "max-depth", 3, "Maximum child depth (0 = unlimited)")
	flag.IntVar(&cfg.MaxWorkflows, "max-workflows", 1000, "Maximum child workflows to collect (0 = unlimited)")
	flag.IntVar(&cfg.PageSize, "page-size", 1000, "Page size for visibility queries (max 1000)")
	flag.IntVar(&cfg.Concurrency, "concurrency", 5, "Concurrent visibility queries (max 10)")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 30*time.Second, "Timeout of each visibility query")
	flag.Parse()

	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		cfg.PageSize = 1000
	}
	// keep visibility load modest
	cfg.Concurrency = min(max(cfg.Concurrency, 1), 10)
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}

	return cfg
}
