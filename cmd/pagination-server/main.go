// Command pagination-server serves sample tool, resource and prompt
// catalogs over stdio, paging list results with offset cursors. It is the
// reference deployment of the pagination engine: 25 tools in pages of 5,
// 30 resources in pages of 10 and 20 prompts in pages of 7.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcp-extras/pagination-server/pkg/logging"
	"github.com/mcp-extras/pagination-server/pkg/observability"
	"github.com/mcp-extras/pagination-server/pkg/pagination"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
	"github.com/mcp-extras/pagination-server/pkg/server"
	"github.com/mcp-extras/pagination-server/pkg/transport"
)

const (
	serverName    = "pagination-server"
	serverVersion = "1.0.0"
)

type options struct {
	toolsPageSize     int
	resourcesPageSize int
	promptsPageSize   int

	logLevel  string
	logFormat string

	metricsAddr string

	tracingEnabled  bool
	tracingEndpoint string
	tracingProtocol string
	tracingInsecure bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var opts options
	flag.IntVar(&opts.toolsPageSize, "tools-page-size", 5, "items per page when listing tools")
	flag.IntVar(&opts.resourcesPageSize, "resources-page-size", 10, "items per page when listing resources")
	flag.IntVar(&opts.promptsPageSize, "prompts-page-size", 7, "items per page when listing prompts")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "text", "log format (text or json)")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "address for the Prometheus endpoint, empty disables it")
	flag.BoolVar(&opts.tracingEnabled, "tracing", false, "enable OTLP trace export")
	flag.StringVar(&opts.tracingEndpoint, "tracing-endpoint", "localhost:4317", "OTLP collector endpoint")
	flag.StringVar(&opts.tracingProtocol, "tracing-protocol", "grpc", "OTLP protocol (grpc or http)")
	flag.BoolVar(&opts.tracingInsecure, "tracing-insecure", true, "use an insecure OTLP connection")
	flag.Parse()

	logger, err := buildLogger(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	store := pagination.NewStore()
	tools := sampleTools(25)
	resources := sampleResources(30)
	prompts := samplePrompts(20)

	if err := store.Register("tools", toItems(tools), opts.toolsPageSize); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	if err := store.Register("resources", toItems(resources), opts.resourcesPageSize); err != nil {
		return fmt.Errorf("failed to register resources: %w", err)
	}
	if err := store.Register("prompts", toItems(prompts), opts.promptsPageSize); err != nil {
		return fmt.Errorf("failed to register prompts: %w", err)
	}

	service := pagination.NewService(store, pagination.NewOffsetCodec())

	serverOptions := []server.ServerOption{
		server.WithName(serverName),
		server.WithVersion(serverVersion),
		server.WithDescription("Serves sample catalogs with cursor pagination"),
		server.WithLogger(logger),
		server.WithToolsProvider(server.NewPaginatedToolsProvider(service, "tools", tools)),
		server.WithResourcesProvider(server.NewPaginatedResourcesProvider(service, "resources", resources)),
		server.WithPromptsProvider(server.NewPaginatedPromptsProvider(service, "prompts", prompts)),
	}

	if opts.metricsAddr != "" {
		metrics, err := observability.NewMetrics(observability.MetricsConfig{
			ServiceName:    serverName,
			ServiceVersion: serverVersion,
			ListenAddr:     opts.metricsAddr,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics: %w", err)
		}
		if err := metrics.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics listener: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()

		serverOptions = append(serverOptions, server.WithMetrics(metrics))
		logger.Info("metrics listener started", logging.String("addr", opts.metricsAddr))
	}

	if opts.tracingEnabled {
		exporterType := observability.ExporterTypeOTLPGRPC
		if opts.tracingProtocol == "http" {
			exporterType = observability.ExporterTypeOTLPHTTP
		}

		tracing, err := observability.NewTracingProvider(observability.TracingConfig{
			ServiceName:    serverName,
			ServiceVersion: serverVersion,
			ExporterType:   exporterType,
			Endpoint:       opts.tracingEndpoint,
			Insecure:       opts.tracingInsecure,
		})
		if err != nil {
			return fmt.Errorf("failed to create tracing provider: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = tracing.Shutdown(shutdownCtx)
		}()

		serverOptions = append(serverOptions, server.WithTracing(tracing))
		logger.Info("tracing enabled", logging.String("endpoint", opts.tracingEndpoint))
	}

	t := transport.NewStdioTransport(transport.WithLogger(logger))
	s := server.New(t, serverOptions...)

	logger.Info("server starting",
		logging.Int("tools", len(tools)),
		logging.Int("resources", len(resources)),
		logging.Int("prompts", len(prompts)),
	)

	if err := s.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// buildLogger builds the process logger. Logs go to stderr because stdout
// carries the protocol stream.
func buildLogger(opts options) (logging.Logger, error) {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, err
	}

	var formatter logging.Formatter
	switch opts.logFormat {
	case "text":
		formatter = logging.NewTextFormatter()
	case "json":
		formatter = logging.NewJSONFormatter()
	default:
		return nil, fmt.Errorf("unknown log format: %s", opts.logFormat)
	}

	logger := logging.New(os.Stderr, formatter)
	logger.SetLevel(level)
	return logger, nil
}

// Sample data, numbered from 1. In real deployments the catalogs would come
// from a database or discovery layer.

func sampleTools(n int) []protocol.Tool {
	schema := json.RawMessage(`{"type":"object","properties":{"input":{"type":"string"}}}`)
	tools := make([]protocol.Tool, 0, n)
	for i := 1; i <= n; i++ {
		tools = append(tools, protocol.Tool{
			Name:        fmt.Sprintf("tool_%d", i),
			Title:       fmt.Sprintf("Tool %d", i),
			Description: fmt.Sprintf("This is sample tool number %d", i),
			InputSchema: schema,
		})
	}
	return tools
}

func sampleResources(n int) []protocol.Resource {
	resources := make([]protocol.Resource, 0, n)
	for i := 1; i <= n; i++ {
		resources = append(resources, protocol.Resource{
			URI:         fmt.Sprintf("file:///path/to/resource_%d.txt", i),
			Name:        fmt.Sprintf("resource_%d", i),
			Description: fmt.Sprintf("This is sample resource number %d", i),
		})
	}
	return resources
}

func samplePrompts(n int) []protocol.Prompt {
	prompts := make([]protocol.Prompt, 0, n)
	for i := 1; i <= n; i++ {
		prompts = append(prompts, protocol.Prompt{
			Name:        fmt.Sprintf("prompt_%d", i),
			Description: fmt.Sprintf("This is sample prompt number %d", i),
			Arguments: []protocol.PromptArgument{
				{Name: "arg1", Description: "First argument", Required: true},
			},
		})
	}
	return prompts
}

func toItems[T any](values []T) []pagination.Item {
	items := make([]pagination.Item, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return items
}
