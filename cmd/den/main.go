// den is an interactive shell and script interpreter (spec §1/§6).
// The CLI surface is a cobra root command, grounded on kir-gadjello-llm's
// rootCmd/RunE pattern: one RunE handles interactive, -c, and script-file
// invocation, rather than a tree of subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-den/den/internal/config"
	"github.com/go-den/den/internal/logging"
	"github.com/go-den/den/internal/shell"
	"github.com/go-den/den/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	var command string
	var configPath string

	root := &cobra.Command{
		Use:           "den [script [args...]]",
		Short:         "den is an interactive shell and script interpreter",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVarP(&command, "command", "c", "", "execute COMMAND and exit")
	root.Flags().StringVar(&configPath, "config", "", "path to a den.jsonc config file")

	exitCode := 0
	root.RunE = func(cmd *cobra.Command, args []string) error {
		exitCode = runDen(command, configPath, args)
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "den:", err)
		return 2
	}
	return exitCode
}

func runDen(command, configPath string, args []string) int {
	log := logging.New()
	defer log.Sync()

	cfg, warnings, usedPath, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "den:", err)
		return 1
	}
	for _, w := range warnings {
		log.Warn("config: " + w)
	}
	if usedPath != "" {
		log.Debug("config: loaded from " + usedPath)
	}

	if command != "" {
		s, err := shell.NewHeadless(cfg, log, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, "den:", err)
			return 1
		}
		return s.RunCommand(command)
	}

	if len(args) > 0 {
		s, err := shell.NewHeadless(cfg, log, args[1:])
		if err != nil {
			fmt.Fprintln(os.Stderr, "den:", err)
			return 1
		}
		return s.RunScript(args[0])
	}

	if !term.IsTerminal(os.Stdin) {
		log.Debug("stdin is not a terminal; reading piped input as a script")
		s, err := shell.NewHeadless(cfg, log, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "den:", err)
			return 1
		}
		return s.RunStdin(os.Stdin)
	}

	s, err := shell.New(cfg, log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "den:", err)
		return 1
	}
	defer s.Close()
	return s.RunREPL()
}
