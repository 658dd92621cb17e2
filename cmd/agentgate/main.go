// Command agentgate runs the agent HTTP server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/agentgate/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentgate",
		Short: "Conversational agent gateway",
		Long: `agentgate exposes a conversational agent over HTTP: blocking chat,
server-sent event streaming and schedule triggers, dispatched to OpenAI,
Anthropic, Google or any OpenAI-compatible provider selected per request.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())

	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the agent HTTP server",
		RunE:  runServe,
	}

	flags := cmd.Flags()
	flags.String("host", "0.0.0.0", "Listen host")
	flags.Int("port", 3000, "Listen port")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-pretty", false, "Human readable console logging")

	viper.SetEnvPrefix("AGENTGATE")
	viper.AutomaticEnv()
	viper.BindPFlag("host", flags.Lookup("host"))
	viper.BindPFlag("port", flags.Lookup("port"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_pretty", flags.Lookup("log-pretty"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(viper.GetString("log_level"), viper.GetBool("log_pretty"))
	if err != nil {
		return err
	}

	srv := server.NewServer(server.ServerOptions{
		Host: viper.GetString("host"),
		Port: viper.GetInt("port"),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		return srv.Stop()
	}
}

func newLogger(level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w = os.Stderr
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	}

	return logger, nil
}
