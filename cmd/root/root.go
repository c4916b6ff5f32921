// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/hsa-bills/internal/common"
	"fjacquet/hsa-bills/internal/config"
	"fjacquet/hsa-bills/internal/exporter"
	"fjacquet/hsa-bills/internal/extractor"
	"fjacquet/hsa-bills/internal/inference"
	"fjacquet/hsa-bills/internal/processor"
	"fjacquet/hsa-bills/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	StoreFile string
	Output    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved configuration, populated in PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "hsa-bills",
		Short: "A CLI tool to track healthcare bills and export tax and HSA views.",
		Long: `hsa-bills keeps healthcare bill records in a plain CSV file.
It adds records by hand or from PDF bills, and exports yearly tax
summaries and HSA-eligible expense views.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to hsa-bills!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Propagate the configured logger to all packages
			store.SetLogger(Log)
			exporter.SetLogger(Log)
			extractor.SetLogger(Log)
			inference.SetLogger(Log)
			processor.SetLogger(Log)
			common.SetLogger(Log)

			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
			if SharedFlags.StoreFile == "" {
				SharedFlags.StoreFile = cfg.Store.File
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific add command flags
	Date        string
	Provider    string
	Amount      string
	Category    string
	Description string
	SourceRef   string

	// Specific process command flags
	InputDir  string
	Recursive bool

	// Specific export and summary command flags
	Year   int
	Format string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.StoreFile, "store", "s", "", "Backing CSV file (default from config)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// OpenStore opens and loads the record store from the configured backing file.
func OpenStore() *store.RecordStore {
	s := store.NewRecordStore(SharedFlags.StoreFile)
	if err := s.Load(); err != nil {
		Log.Fatalf("Error loading record store: %v", err)
	}
	return s
}

// NewInferrer builds the configured field-inference collaborator, or nil
// when AI is disabled or no API key is available.
func NewInferrer() inference.Inferrer {
	if Cfg == nil || !Cfg.AI.Enabled {
		return nil
	}
	apiKey := Cfg.AI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		Log.Warn("GEMINI_API_KEY not set, field inference disabled")
		return nil
	}
	return inference.NewGeminiInferrer(apiKey, Cfg.AI.Model, Cfg.AI.TimeoutSeconds)
}
