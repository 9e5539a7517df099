package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/morgansundqvist/minicopilot/internal/adapters"
	"github.com/morgansundqvist/minicopilot/internal/application"
	"github.com/morgansundqvist/minicopilot/internal/config"
	"github.com/morgansundqvist/minicopilot/internal/domain"
	"github.com/morgansundqvist/minicopilot/internal/ports"
	"github.com/morgansundqvist/minicopilot/internal/spinner"
	"github.com/spf13/cobra"
)

type ctxKey string

const svcKey ctxKey = "copilotService"

const defaultLogLevel = "warn"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		model      string
		provider   string
		baseURL    string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:          "minicopilot",
		Short:        "Code and documentation assistant backed by an OpenAI-compatible model",
		Long:         "Explain, comment, test or document code, or ask a programming question, using a chat completion model.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The CLI is quieter than the server unless configured otherwise.
			base := config.New()
			base.LogLevel = defaultLogLevel
			cfg, err := config.LoadFrom(base, configPath)
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Model = model
			}
			if provider != "" {
				cfg.Provider = strings.ToLower(provider)
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			lg := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: mustLevel(cfg.LogLevel)}))
			secrets, err := adapters.NewSecretStore(cfg)
			if err != nil {
				return err
			}
			factory, err := adapters.NewLLMFactory(cfg)
			if err != nil {
				return err
			}
			svc := application.NewCopilotService(secrets, factory, application.Options{
				SecretName: cfg.SecretName,
				Model:      cfg.Model,
				Logger:     lg,
			})
			cmd.SetContext(context.WithValue(cmd.Context(), svcKey, svc))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "minicopilot.yaml", "Path to an optional YAML config file.")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model id to use (default gpt-3.5-turbo).")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Provider: openai, deepseek or mock.")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of an OpenAI-compatible endpoint.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn or error.")

	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newModelsCmd())
	rootCmd.AddCommand(newAskCmd())
	return rootCmd
}

func mustLevel(s string) slog.Level {
	level, err := config.ParseLevel(s)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func service(cmd *cobra.Command) *application.CopilotService {
	return cmd.Context().Value(svcKey).(*application.CopilotService)
}

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range domain.Tasks() {
				fmt.Fprintln(cmd.OutOrStdout(), t.String())
			}
			return nil
		},
	}
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models your key can access and check the configured one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service(cmd)
			ids, err := svc.Models(cmd.Context())
			if err != nil {
				return err
			}
			found := false
			for _, id := range ids {
				marker := " "
				if id == svc.Model() {
					marker = "*"
					found = true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, id)
			}
			if !found {
				return fmt.Errorf("model %s is not available with your API key", svc.Model())
			}
			return nil
		},
	}
}

func newAskCmd() *cobra.Command {
	var (
		taskLabel string
		filePath  string
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Run a task on code or a question",
		Long: "Run a task on the given text. Text comes from the arguments, from --file, " +
			"or from standard input when neither is given.",
		Example: `  minicopilot ask --task "Explain Code" --file main.py
  minicopilot ask What is a closure?
  cat util.py | minicopilot ask -t "Write Test Cases"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := domain.ParseTask(taskLabel)
			if err != nil {
				return fmt.Errorf("%w (run 'minicopilot tasks' for the list)", err)
			}

			files := &adapters.LocalFileReader{Stdin: cmd.InOrStdin()}
			text, err := inputText(files, filePath, args)
			if err != nil {
				return err
			}

			svc := service(cmd)
			stop := func() {}
			if !quiet {
				stop = spinner.Start(cmd.ErrOrStderr(), "Thinking...")
			}
			res, err := svc.Generate(cmd.Context(), domain.PromptRequest{Task: task, RawText: text})
			stop()
			if err != nil {
				kind, msg := domain.Describe(err)
				return fmt.Errorf("%s: %s", kind, msg)
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&taskLabel, "task", "t", domain.TaskAskAnything.String(), "Task to run.")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read the text from this file ('-' for stdin).")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show the progress spinner.")
	return cmd
}

func inputText(files ports.FileReader, filePath string, args []string) (string, error) {
	switch {
	case filePath != "" && len(args) > 0:
		return "", fmt.Errorf("use either --file or text arguments, not both")
	case filePath != "":
		return files.ReadFileContent(filePath)
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return files.ReadFileContent("-")
	}
}
