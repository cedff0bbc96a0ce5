package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/siftlabs/sift/internal/config"
	"github.com/siftlabs/sift/internal/exec"
	"github.com/siftlabs/sift/internal/history"
	"github.com/siftlabs/sift/internal/llm"
	"github.com/siftlabs/sift/internal/planner"
	"github.com/siftlabs/sift/internal/sandbox"
	"github.com/siftlabs/sift/internal/search"
	"github.com/siftlabs/sift/internal/storage"
	"github.com/siftlabs/sift/internal/supervisor"
	"github.com/siftlabs/sift/internal/worker"
	"github.com/siftlabs/sift/pkg/models"
)

var (
	runBatch        bool
	runMaxRevisions int
	runNoHistory    bool
)

var runCmd = &cobra.Command{
	Use:   "run <query> [query...]",
	Short: "Run a research query end to end",
	Long: `Run one research query through the full pipeline: planning, web
research, analysis, optional code execution for visualizations, reporting,
and validation. The final report is printed as YAML.

With multiple queries, or with --batch (or SIFT_BATCH_MODE=true), each query
runs as a fully isolated instance and the reports are printed in order. In
batch mode with no arguments, queries are read from stdin, one per line.`,
	Args: cobra.ArbitraryArgs,
	RunE: runResearch,
}

func init() {
	runCmd.Flags().BoolVar(&runBatch, "batch", false, "Run queries as independent batch runs")
	runCmd.Flags().IntVar(&runMaxRevisions, "max-revisions", 0, "Override the revision budget")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Disable history recording and planner context")
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	batchMode := runBatch || strings.EqualFold(os.Getenv("SIFT_BATCH_MODE"), "true")
	if len(args) == 0 {
		if !batchMode {
			return fmt.Errorf("requires at least one query")
		}
		if args, err = readQueries(os.Stdin); err != nil {
			return fmt.Errorf("reading queries: %w", err)
		}
		if len(args) == 0 {
			return fmt.Errorf("no queries on stdin")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := buildDeps(cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	factory := func() *supervisor.Supervisor {
		return deps.newSupervisor(cfg)
	}

	if batchMode || len(args) > 1 {
		return runBatchQueries(ctx, args, factory)
	}

	report, err := factory().Run(ctx, args[0])
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	printReport(args[0], report)
	return nil
}

// readQueries reads one query per non-empty line.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			queries = append(queries, line)
		}
	}
	return queries, scanner.Err()
}

func runBatchQueries(ctx context.Context, queries []string, factory supervisor.Factory) error {
	results := supervisor.RunBatch(ctx, queries, factory)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			color.New(color.FgRed).Fprintf(os.Stderr, "query %q failed: %v\n", res.Query, res.Err)
			continue
		}
		printReport(res.Query, res.Report)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(queries))
	}
	return nil
}

// deps bundles the shared collaborators. Model and storage clients are
// stateless and safe to share; each run still gets its own Supervisor.
type deps struct {
	model    llm.Client
	embedder history.Embedder
	searcher search.Searcher
	sandbox  *sandbox.Runner
	store    *history.Store
	recorder *history.Recorder
}

func buildDeps(cfg *config.Config) (*deps, error) {
	model, err := llm.NewAnthropicClient(llm.AnthropicConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}

	d := &deps{
		model:   llm.WithRetry(model, cfg.Run.RetryAttempts, cfg.Run.RetryBackoff),
		sandbox: sandbox.NewRunner(exec.NewRunner(), cfg.Sandbox.Python),
	}

	searcher, err := search.NewFirecrawlClient(search.FirecrawlConfig{
		APIKey:  cfg.Firecrawl.APIKey,
		BaseURL: cfg.Firecrawl.BaseURL,
		Timeout: cfg.Firecrawl.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}
	d.searcher = searcher

	// Embeddings are optional; without them similar-query lookup falls back
	// to recency.
	if embedder, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	}); err == nil {
		d.embedder = embedder
	} else {
		log.Printf("[sift] embeddings unavailable: %v", err)
	}

	if !cfg.History.Disabled && !runNoHistory {
		dbPath := cfg.History.DBPath
		if dbPath == "" {
			dbPath = history.DefaultDBPath()
		}
		store, err := history.NewStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening history store: %w", err)
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrating history store: %w", err)
		}
		d.store = store
		d.recorder = history.NewRecorder(store, d.embedder)
	}

	return d, nil
}

func (d *deps) newSupervisor(cfg *config.Config) *supervisor.Supervisor {
	var hist planner.History
	if d.store != nil {
		hist = d.store
	}

	workers := supervisor.Workers{
		Research: worker.NewResearchWorker(d.searcher, cfg.Firecrawl.MaxResults),
		Analysis: worker.NewAnalysisWorker(d.model),
		Code:     worker.NewCodeExecWorker(d.model, d.sandbox, newPublisher(cfg)),
		Reporter: worker.NewReporterWorker(d.model),
	}

	var recorder supervisor.Recorder
	if d.recorder != nil {
		recorder = d.recorder
	}

	maxRevisions := cfg.Run.MaxRevisions
	if runMaxRevisions > 0 {
		maxRevisions = runMaxRevisions
	}

	return supervisor.New(
		planner.New(d.model, hist, d.embedder),
		d.model,
		workers,
		recorder,
		supervisor.WithMaxRevisions(maxRevisions),
	)
}

func (d *deps) close() {
	if d.store != nil {
		d.store.Close()
	}
}

// newPublisher returns the artifact publisher, or a discarding stub when
// Supabase is not configured so code tasks fail cleanly instead of panicking.
func newPublisher(cfg *config.Config) storage.Publisher {
	client, err := storage.NewSupabaseClient(storage.SupabaseConfig{
		URL:    cfg.Supabase.URL,
		Key:    cfg.Supabase.Key,
		Bucket: cfg.Supabase.Bucket,
	})
	if err != nil {
		log.Printf("[sift] artifact storage unavailable: %v", err)
		return storage.Unconfigured{}
	}
	return client
}

func printReport(query string, report *models.Report) {
	header := color.New(color.FgCyan, color.Bold)
	header.Println("\nFinal Research Report")
	header.Println("=====================")
	fmt.Printf("Query: %s\n\n", query)

	out, err := yaml.Marshal(report)
	if err != nil {
		fmt.Printf("%+v\n", report)
		return
	}
	fmt.Println(string(out))
}
