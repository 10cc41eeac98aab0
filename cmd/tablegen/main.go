// tablegen generates Go code from project documents describing database
// tables, and builds project documents from live databases.
//
//	tablegen inspect --driver postgres --dsn "$DSN" --schema public -o shop.yaml
//	tablegen validate shop.yaml
//	tablegen generate shop.yaml --target ./models --feature inbound
//	tablegen graphql shop.yaml -o schema.graphqls
//
// Flags can also be set in a tablegen.yaml settings file or through
// TABLEGEN_ prefixed environment variables, e.g. TABLEGEN_TARGET.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	green    = color.New(color.FgGreen).SprintFunc()
	red      = color.New(color.FgRed).SprintFunc()
	yellow   = color.New(color.FgYellow).SprintFunc()
	boldCyan = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		stop()
		os.Exit(1)
	}
}

// app holds the state shared by the commands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "tablegen",
		Short:         "Generate Go code from database table descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "settings file (default is ./tablegen.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	a.bind(root.PersistentFlags(), "verbose", "verbose")

	root.AddCommand(
		newGenerateCmd(a),
		newValidateCmd(a),
		newInspectCmd(a),
		newGraphQLCmd(a),
		newFeaturesCmd(),
	)
	return root
}

// bind binds the flag named flag to the settings key.
func (a *app) bind(fs *pflag.FlagSet, key, flag string) {
	if err := a.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
		panic(fmt.Sprintf("tablegen: bind flag %q: %v", flag, err))
	}
}

// init reads the settings file and environment and sets up the logger.
func (a *app) init(stderr io.Writer) error {
	a.v.SetEnvPrefix("TABLEGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	} else {
		a.v.SetConfigName("tablegen")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read settings: %w", err)
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.Debug("settings loaded", "file", f)
	}
	return nil
}
