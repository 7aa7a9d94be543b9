// cmd/agent/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"vendor-analytics-agent/internal/agent"
	"vendor-analytics-agent/internal/agent/memory"
	"vendor-analytics-agent/internal/common/config"
	"vendor-analytics-agent/internal/common/database"
	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/common/logger"
	"vendor-analytics-agent/internal/common/observability"
	"vendor-analytics-agent/internal/tools"
)

func main() {
	var (
		query     = flag.String("query", "", "run a single query and exit")
		sessionID = flag.String("session", "", "session id for memory persisted across invocations")
		mock      = flag.Bool("mock", false, "serve deterministic synthetic data instead of Postgres")
		debug     = flag.Bool("debug", false, "debug logging plus the decision trace after each query")
		asJSON    = flag.Bool("json", false, "print the full response as JSON instead of the dashboard")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *debug {
		level = "debug"
	}
	zapLog := logger.New(level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting vendor analytics agent...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Data plane ---
	var store tools.Store
	if *mock {
		store = tools.NewMockStore(nil)
		zapLog.Info("Using mock store")
	} else {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres failed", zap.Error(err))
		}
		if err := pg.Ping(ctx); err != nil {
			zapLog.Fatal("postgres unreachable", zap.Error(err))
		}
		defer pg.Close()
		store = tools.NewPostgresStore(pg.GetDB(), nil)
		zapLog.Info("PostgreSQL connected successfully")
	}

	opts := []agent.Option{agent.WithObservability(obs)}

	// --- Session persistence ---
	var sessions *memory.Store
	if *sessionID != "" {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis failed", zap.Error(err))
		}
		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Fatal("redis unreachable", zap.Error(err))
		}
		defer redisClient.Close()

		sessions = memory.NewStore(
			redisClient.Client,
			time.Duration(cfg.Agent.MemoryTTL)*time.Second,
			log,
		)
		snap, err := sessions.Load(ctx, *sessionID)
		if err != nil {
			zapLog.Fatal("session restore failed", zap.Error(err))
		}
		opts = append(opts, agent.WithMemory(memory.NewFromSnapshot(snap)))
		zapLog.Info("Session restored", zap.String("sessionId", *sessionID))
	}

	a := agent.New(agent.Config{
		MinConfidence:    cfg.Agent.MinConfidence,
		DefaultLimit:     cfg.Agent.DefaultLimit,
		DefaultWeeks:     cfg.Agent.DefaultWeeks,
		DefaultRangeDays: cfg.Agent.DefaultRangeDays,
	}, store, log, opts...)

	// --- Metrics endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	runner := &runner{
		agent:     a,
		sessions:  sessions,
		sessionID: *sessionID,
		debug:     *debug,
		asJSON:    *asJSON,
	}

	if *query != "" {
		if !runner.run(ctx, *query) {
			os.Exit(1)
		}
		return
	}

	runner.interactive(ctx)
}

// ==========================
// Query Runner
// ==========================

type runner struct {
	agent     *agent.Agent
	sessions  *memory.Store
	sessionID string
	debug     bool
	asJSON    bool
}

// run processes one query and prints the outcome. It reports whether the
// query executed successfully.
func (r *runner) run(ctx context.Context, query string) bool {
	resp, err := r.agent.ProcessQuery(ctx, query)

	if r.asJSON {
		payload := map[string]interface{}{"response": resp}
		if err != nil {
			payload["error"] = err
		}
		out, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Println(string(out))
	} else if err != nil {
		if qe, ok := errors.AsQueryError(err); ok {
			fmt.Printf("Error [%s]: %s\n", qe.Code, qe.Message)
			if qe.Suggestion != "" {
				fmt.Printf("Hint: %s\n", qe.Suggestion)
			}
		} else {
			fmt.Printf("Error: %v\n", err)
		}
	} else {
		fmt.Println(resp.Rendered)
	}

	if r.debug && !r.asJSON {
		trace, _ := json.MarshalIndent(resp.Trace, "", "  ")
		fmt.Printf("Trace:\n%s\n", string(trace))
	}

	if err == nil && r.sessions != nil {
		if saveErr := r.sessions.Save(ctx, r.sessionID, r.agent.MemorySnapshot()); saveErr != nil {
			fmt.Fprintf(os.Stderr, "session save failed: %v\n", saveErr)
		}
	}
	return err == nil
}

// interactive reads queries from stdin until EOF or an exit command.
func (r *runner) interactive(ctx context.Context) {
	fmt.Println("Vendor analytics agent. Type a query, 'reset' to clear the session, 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return
		case line == "reset":
			r.agent.ResetSession()
			if r.sessions != nil {
				if err := r.sessions.Delete(ctx, r.sessionID); err != nil {
					fmt.Fprintf(os.Stderr, "session delete failed: %v\n", err)
				}
			}
			fmt.Println("Session cleared.")
		default:
			r.run(ctx, line)
		}
	}
}
