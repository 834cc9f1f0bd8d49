package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"webpackq/internal/config"
	"webpackq/internal/emit"
	"webpackq/internal/graphs"
	"webpackq/internal/ops"
	"webpackq/internal/stats"
	v5 "webpackq/internal/stats/v5"
	"webpackq/internal/store"
)

var (
	rootCmd = &cobra.Command{
		Use:               "webpackq",
		Short:             "Query a bundler's build-stats file",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	statsPath    string
	quiet        bool
	outputFormat string
	outputPath   string
	saveRun      bool

	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&statsPath, "stats", "s", "", "Path to the stats JSON file")
	_ = rootCmd.MarkPersistentFlagRequired("stats")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")

	for _, cmd := range []*cobra.Command{traverseEntrypointCmd, pathsToChunkCmd} {
		cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: json, html, or dot")
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (extension added by format)")
		cmd.Flags().BoolVar(&saveRun, "save", false, "Record this run in the history database")
	}

	rootCmd.AddCommand(listEntrypointsCmd)
	rootCmd.AddCommand(describeEntrypointCmd)
	rootCmd.AddCommand(describeChunkCmd)
	rootCmd.AddCommand(traverseEntrypointCmd)
	rootCmd.AddCommand(pathsToChunkCmd)
	rootCmd.AddCommand(historyCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadConfig("webpackq.yaml")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if quiet && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if outputFormat == "" {
		outputFormat = cfg.Output.Format
	}
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}
	return nil
}

// loadDocument reads the stats file and dispatches on its version tag.
func loadDocument() (stats.Document, error) {
	data, err := os.ReadFile(statsPath)
	if err != nil {
		return nil, err
	}

	if cfg.Stats.ValidateSchema {
		if err := stats.ValidateShape(data); err != nil {
			return nil, err
		}
	}

	major, err := stats.SniffVersion(data)
	if err != nil {
		return nil, err
	}
	switch major {
	case '5':
		return v5.Parse(data)
	default:
		return nil, stats.ErrUnsupportedVersion
	}
}

func resolveEntrypoint(doc stats.Document, name string) (stats.EntrypointInfo, error) {
	entry, ok := doc.Entrypoint(name)
	if !ok {
		return stats.EntrypointInfo{}, fmt.Errorf("entrypoint %s does not exist", name)
	}
	return entry, nil
}

var listEntrypointsCmd = &cobra.Command{
	Use:   "list-entrypoints",
	Short: "List all entrypoints and the chunks they load",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		fmt.Print(ops.EntrypointList(doc.Entrypoints()))
		return nil
	},
}

var describeEntrypointCmd = &cobra.Command{
	Use:   "describe-entrypoint <name>",
	Short: "Show the chunk-loading story and initial size of an entrypoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		entry, err := resolveEntrypoint(doc, args[0])
		if err != nil {
			return err
		}
		description, err := ops.DescribeEntrypoint(doc.Chunks(), entry)
		if err != nil {
			return err
		}
		fmt.Print(description)
		return nil
	},
}

var describeChunkCmd = &cobra.Command{
	Use:   "describe-chunk <id>",
	Short: "Show size, files, and modules of a chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid chunk id %q: %w", args[0], err)
		}
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		if description, ok := ops.DescribeChunk(stats.ChunkID(id), doc.Chunks(), doc.Modules()); ok {
			fmt.Print(description)
		}
		return nil
	},
}

var traverseEntrypointCmd = &cobra.Command{
	Use:   "traverse-entrypoint <name>",
	Short: "Traverse an entrypoint's modules and attribute each to a chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		entry, err := resolveEntrypoint(doc, args[0])
		if err != nil {
			return err
		}
		result, err := ops.TraverseEntryChunk(doc.Modules(), doc.Chunks(), entry)
		if err != nil {
			return err
		}
		return writeGraph("traverse-entrypoint", entry.Name, result)
	},
}

var pathsToChunkCmd = &cobra.Command{
	Use:   "paths-to-chunk <entrypoint> <chunk-id>",
	Short: "Find all the ways an entrypoint escapes into a target chunk, e.g. your commons chunk",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid chunk id %q: %w", args[1], err)
		}
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		entry, err := resolveEntrypoint(doc, args[0])
		if err != nil {
			return err
		}
		result, err := ops.PathsToChunk(entry, stats.ChunkID(id), doc.Chunks(), doc.Modules())
		if err != nil {
			return err
		}
		return writeGraph("paths-to-chunk", entry.Name, result)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [entrypoint]",
	Short: "List recorded analysis runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		entrypoint := ""
		if len(args) == 1 {
			entrypoint = args[0]
		}
		db, err := store.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.Runs(entrypoint)
		if err != nil {
			return err
		}
		for _, run := range runs {
			fmt.Printf("%s  %-20s %-24s nodes=%-6d edges=%-6d %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.Command, run.Entrypoint, run.NodeCount, run.EdgeCount, run.OutputPath)
		}
		return nil
	},
}

// writeGraph emits the analyzed graph in the selected format and optionally
// records the run.
func writeGraph(command, entrypoint string, g *graphs.ModuleParent) error {
	var target string

	switch outputFormat {
	case "json", "dot":
		target = outputPath + "." + outputFormat
		file, err := os.Create(target)
		if err != nil {
			return err
		}
		defer file.Close()
		if outputFormat == "json" {
			err = emit.WriteJSON(file, g)
		} else {
			err = emit.WriteDOT(file, g)
		}
		if err != nil {
			return err
		}
	case "html":
		target = outputPath + ".html"
		if err := emit.WriteHTMLDir(target, g); err != nil {
			return err
		}
		log.Info().Str("dir", target).Msg("files outputted; open folder with a web server")
	default:
		return fmt.Errorf("unknown output format %q (want json, html, or dot)", outputFormat)
	}

	if saveRun {
		db, err := store.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := db.RecordRun(store.Run{
			Command:    command,
			Entrypoint: entrypoint,
			StatsFile:  statsPath,
			NodeCount:  g.Order(),
			EdgeCount:  g.Size(),
			OutputPath: target,
		}); err != nil {
			return err
		}
	}

	return nil
}
