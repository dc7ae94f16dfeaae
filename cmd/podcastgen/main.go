package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/config"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/logger"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/pipeline"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/server"
)

const version = "1.0"

// main is the application entry point
func main() {
	// Parse command line flags
	var (
		helpFlag    = flag.Bool("help", false, "Show help message")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	// Run the main application logic
	if err := runApplication(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// runApplication contains the core application logic that can be tested
func runApplication() error {
	// Load configuration from file when CONFIG_PATH is set, environment
	// variables otherwise
	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create structured logger at the configured level
	log, err := logger.NewProductionLoggerWithLevel(cfg.GetLogLevel())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("AI Podcast Script Generator starting up",
		zap.String("component", "main"),
		zap.String("version", version))

	p := pipeline.NewPipelineWithLogger(cfg, log)
	if !p.HasEnhancementProviders() {
		log.Warn("no LLM providers configured, enhancement will use local fallback only",
			zap.String("component", "main"))
	}

	srv := server.NewServer(p, log)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.GetServerAddr()); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Info("server started",
		zap.String("addr", cfg.GetServerAddr()),
		zap.String("component", "main"))

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
			zap.String("component", "main"))
	case err := <-errChan:
		log.Error("Server runtime error",
			zap.Error(err),
			zap.String("component", "main"))
		return fmt.Errorf("server runtime error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Error during server shutdown",
			zap.Error(err),
			zap.String("component", "main"))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("AI Podcast Script Generator stopped successfully",
		zap.String("component", "main"))
	return nil
}

func loadConfiguration() (*config.Configuration, error) {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return config.NewConfigurationFromFile(configPath)
	}
	return config.NewConfigurationFromEnv()
}

// printHelp displays command line usage information
func printHelp() {
	fmt.Println("AI Podcast Script Generator - Transcript to Podcast Script Pipeline")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    podcastgen [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    -help      Show this help message")
	fmt.Println("    -version   Show version information")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("    Configuration is loaded from environment variables, or from the")
	fmt.Println("    YAML file named by CONFIG_PATH. See config.example.yaml.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    podcastgen                      # Run with default configuration")
	fmt.Println("    CONFIG_PATH=config.yaml podcastgen")
}

// printVersion displays version and build information
func printVersion() {
	fmt.Println("AI Podcast Script Generator")
	fmt.Printf("Version: %s\n", version)
	fmt.Println("Build: Pipeline Orchestrator Implementation")
}
