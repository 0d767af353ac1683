package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edward-r/prompt-maker/internal/llm"
	"github.com/edward-r/prompt-maker/internal/logger"
	"github.com/edward-r/prompt-maker/internal/prompts"
	"github.com/edward-r/prompt-maker/internal/theme"
	"github.com/edward-r/prompt-maker/internal/tui"
)

type options struct {
	provider    string
	model       string
	endpoint    string
	theme       string
	historyPath string
	noHistory   bool
	noAltScreen bool
	debug       bool
	logFile     string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "promptmaker",
	Short: "Compose prompt drafts in the terminal and refine them with a language model",
	Long: `promptmaker is a terminal composer for prompt drafts. Write a draft, attach
reference files with /attach, and press Enter to have Ollama or an
OpenAI-compatible model rewrite it into a sharper prompt.`,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.provider, "provider", "", "LLM provider: ollama or openai (env PROMPTMAKER_PROVIDER)")
	flags.StringVar(&opts.model, "model", "", "model name for the provider")
	flags.StringVar(&opts.endpoint, "endpoint", "", "Ollama host or OpenAI-compatible base URL")
	flags.StringVar(&opts.theme, "theme", theme.DefaultName, "color theme")
	flags.StringVar(&opts.historyPath, "history", prompts.DefaultPath(), "path to the prompt history file")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not read or write prompt history")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", logger.DefaultLogPath(), "path to the debug log")
}

// tuiConfig turns the parsed flags into the program configuration. A client
// that cannot be built leaves the TUI running without a model.
func tuiConfig(o options) (tui.Config, error) {
	if _, ok := theme.Lookup(o.theme); !ok {
		return tui.Config{}, fmt.Errorf("unknown theme %q", o.theme)
	}
	llmConfig := llm.Config{Provider: o.provider, Model: o.model, Endpoint: o.endpoint}
	cfg := tui.Config{LLMConfig: llmConfig, Theme: o.theme}
	if !o.noHistory {
		cfg.HistoryPath = o.historyPath
	}
	client, err := llm.NewFromEnv(llmConfig)
	if err != nil {
		logger.Warn("LLM disabled: %v", err)
		return cfg, nil
	}
	cfg.LLM = client
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger.SetDebug(opts.debug)
	if err := logger.Init(opts.logFile); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := tuiConfig(opts)
	if err != nil {
		return err
	}
	model := "none"
	if cfg.LLM != nil {
		model = cfg.LLM.Name()
	}
	logger.Info("starting with model %s, theme %s, history %q", model, cfg.Theme, cfg.HistoryPath)
	logger.Debug("flags: provider=%q model=%q endpoint=%q", opts.provider, opts.model, opts.endpoint)

	programOpts := []tea.ProgramOption{}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(cfg), programOpts...)
	_, err = program.Run()
	if err != nil {
		logger.Error("program exited: %v", err)
	}
	if notice := debugLogNotice(opts.debug); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// debugLogNotice tells a --debug user where the log went once the screen is
// released.
func debugLogNotice(debug bool) string {
	path := logger.Path()
	if !debug || path == "" {
		return ""
	}
	return "debug log written to " + path
}
