package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/bastiangx/sevens/internal/cli"
	"github.com/bastiangx/sevens/internal/logger"
	"github.com/bastiangx/sevens/internal/utils"
	"github.com/bastiangx/sevens/pkg/board"
	"github.com/bastiangx/sevens/pkg/config"
	"github.com/bastiangx/sevens/pkg/dictionary"
	"github.com/bastiangx/sevens/pkg/lexicon"
	"github.com/bastiangx/sevens/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	configFlag string
	debugMode  bool

	// set by the root PersistentPreRun
	appConfig    *config.Config
	pathResolver *utils.PathResolver
)

// dictFlags are shared by every command that builds a lexicon
type dictFlags struct {
	path      string
	minLength int
	quiet     bool
}

func (f *dictFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "dict-path", "", "Word list file or chunk directory (default from config)")
	cmd.Flags().IntVarP(&f.minLength, "min-word-length", "w", 0, "Drop words shorter than this (default from config)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Hide load progress")
}

// options merges flags over the loaded config
func (f *dictFlags) options() (string, lexicon.Options) {
	path := appConfig.Dict.Path
	if f.path != "" {
		path = f.path
	}
	minLength := appConfig.Dict.MinLength
	if f.minLength > 0 {
		minLength = f.minLength
	}
	return path, lexicon.Options{
		MinLength: minLength,
		Quiet:     f.quiet || appConfig.Dict.Quiet,
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "A 7x7 word game solver",
		Long:          `Fetches the daily 7x7 board and finds the words its letters can make`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			loadAppConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a config file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(createFetchCmd())
	rootCmd.AddCommand(createSolveCmd())
	rootCmd.AddCommand(createQueryCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPackCmd())
	rootCmd.AddCommand(createVersionCmd())

	return rootCmd
}

func setupLogging() {
	if debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// loadAppConfig resolves and loads the config, falling back to defaults on any failure.
func loadAppConfig() {
	var err error
	pathResolver, err = utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
		log.Warn("Using paths relative to the current directory")
	}

	defaultPath := ""
	if pathResolver != nil {
		defaultPath = pathResolver.GetConfigPath(config.FileName)
	}

	var used string
	appConfig, used = config.LoadConfigWithPriority(configFlag, defaultPath)
	if used == "" {
		log.Debug("Running with builtin config defaults")
		return
	}
	log.Debugf("Using config file: (%s)", used)
}

func resolveWordList(path string) string {
	if pathResolver == nil {
		return path
	}
	return pathResolver.GetWordListPath(path)
}

// buildReporter logs load progress regardless of the global level; Quiet is the off switch.
func buildReporter() lexicon.Reporter {
	l := logger.NewWithConfig("lexicon", log.InfoLevel, false, false, log.TextFormatter)
	return func(p lexicon.Progress) {
		if p.Done {
			l.Info("loaded", "lines", utils.FormatWithCommas(p.Lines), "words", utils.FormatWithCommas(p.Kept))
			return
		}
		l.Infof("read %s lines", utils.FormatWithCommas(p.Lines))
	}
}

// loadLexicon builds the index for a command, returning the resolved word list path too.
func loadLexicon(f *dictFlags) (*lexicon.Index, string, error) {
	path, opts := f.options()
	path = resolveWordList(path)
	opts.Reporter = buildReporter()

	log.Debugf("Loading word list %s with min length %d", path, opts.MinLength)
	start := time.Now()
	ix, err := lexicon.Build(dictionary.Open(path), opts)
	if err != nil {
		return nil, path, err
	}
	log.Debugf("Built lexicon with %d words in %v", ix.Len(), time.Since(start))
	return ix, utils.GetAbsolutePath(path), nil
}

func newFetcher() *board.Fetcher {
	timeout := time.Duration(appConfig.Board.TimeoutSeconds) * time.Second
	return board.NewFetcher(appConfig.Board.CacheDir, appConfig.Board.BaseURL, timeout)
}

func dateArg(args []string) string {
	if len(args) == 0 {
		return board.Today()
	}
	return args[0]
}

func createFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [date]",
		Short: "Fetch and cache a board (default today, YYYYMMDD)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateArg(args)
			log.Infof("Fetching board %s", date)

			b, err := newFetcher().Get(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func createSolveCmd() *cobra.Command {
	var flags dictFlags
	solveCmd := &cobra.Command{
		Use:   "solve [date]",
		Short: "Fetch a board and list the words its bottom letters make",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newFetcher().Get(cmd.Context(), dateArg(args))
			if err != nil {
				return err
			}
			ix, _, err := loadLexicon(&flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, b)

			letters := b.Available()
			words := ix.WordsFrom(letters)
			fmt.Fprintf(out, "\n%s words from '%s'\n", utils.FormatWithCommas(len(words)), letters)
			for _, w := range words {
				fmt.Fprintln(out, w)
			}
			return nil
		},
	}
	flags.register(solveCmd)
	return solveCmd
}

func createQueryCmd() *cobra.Command {
	var flags dictFlags
	var noFilter bool
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Query the lexicon interactively",
		Long:  `Reads letters or wildcard patterns from stdin. ':p <prefix>' checks a prefix and ':w <word>' checks a word.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := loadLexicon(&flags)
			if err != nil {
				return err
			}
			log.SetReportTimestamp(false)
			log.Debug("Input info:", "maxQuery", appConfig.Server.MaxQuery, "noFilter", noFilter)

			return cli.NewInputHandler(ix, appConfig.Server.MaxQuery, noFilter).
				WithIO(cmd.InOrStdin(), cmd.OutOrStdout()).
				WithLog(cmd.ErrOrStderr()).
				Start()
		},
	}
	flags.register(queryCmd)
	queryCmd.Flags().BoolVar(&noFilter, "no-filter", false, "Disable input filtering (DBG only)")
	return queryCmd
}

func createServeCmd() *cobra.Command {
	var flags dictFlags
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lexicon queries as MessagePack over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stderr belongs to the client process
			flags.quiet = true
			ix, path, err := loadLexicon(&flags)
			if err != nil {
				return err
			}
			if debugMode {
				showStartupInfo(path, ix.Len())
			}

			log.Debug("spawning IPC")
			return server.NewServer(ix, appConfig.Server).Start()
		},
	}
	flags.register(serveCmd)
	return serveCmd
}

func createPackCmd() *cobra.Command {
	var flags dictFlags
	var chunkSize int
	packCmd := &cobra.Command{
		Use:   "pack <out-dir>",
		Short: "Write the filtered word list as binary chunk files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := loadLexicon(&flags)
			if err != nil {
				return err
			}
			size := appConfig.Dict.ChunkSize
			if chunkSize > 0 {
				size = chunkSize
			}

			chunks, err := dictionary.WriteChunks(args[0], ix.Words(), size)
			if err != nil {
				return err
			}
			total := lo.SumBy(chunks, func(c dictionary.ChunkInfo) int { return c.WordCount })
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s words in %d chunks to %s\n",
				utils.FormatWithCommas(total), len(chunks), args[0])
			return nil
		},
	}
	flags.register(packCmd)
	packCmd.Flags().IntVar(&chunkSize, "chunk", 0, "Words per chunk file (default from config)")
	return packCmd
}

func createVersionCmd() *cobra.Command {
	var verbose bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
				Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			l.SetStyles(styles)

			l.Print("")
			l.Print("[ sevens ] Solves the daily 7x7 board")
			l.Print("", "version", Version)
			l.Print("")
			l.Print("use -h or --help to see available options")
			l.Print("Github Repo", "gh", gh)

			if !verbose || pathResolver == nil {
				return
			}
			l.Print("")
			info := pathResolver.GetRuntimeInfo()
			keys := lo.Keys(info)
			slices.Sort(keys)
			for _, k := range keys {
				l.Print(k, "value", info[k])
			}
		},
	}
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print runtime paths")
	return versionCmd
}
