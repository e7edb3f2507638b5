package main

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bherrmann7/shell-mcp-server/internal/config"
	"github.com/bherrmann7/shell-mcp-server/internal/executor"
	"github.com/bherrmann7/shell-mcp-server/internal/log"
)

// errCommandFailed signals an unsuccessful result that was already printed.
var errCommandFailed = errors.New("command failed")

type execOptions struct {
	workdir string
	timeout time.Duration
	env     map[string]string
}

func newExecCmd() *cobra.Command {
	opts := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec [flags] -- COMMAND...",
		Short: "Run one command the way the MCP tool does and print the JSON result",
		Example: `  shell-mcp-server exec -- ls -la
  shell-mcp-server exec --workdir /tmp --timeout 5s --env NAME=value -- 'echo "$NAME"'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := config.Load()
			if err != nil {
				return err
			}
			exec := executor.New(
				executor.WithLogger(log.NewWithWriter(cmd.ErrOrStderr(), envCfg.LogLevel)),
				executor.WithTempDir(envCfg.TempDir),
			)

			res := exec.Execute(cmd.Context(), executor.Request{
				Command:          strings.Join(args, " "),
				WorkingDirectory: opts.workdir,
				Timeout:          opts.timeout,
				Env:              opts.env,
			})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Success {
				return errCommandFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.workdir, "workdir", "w", "", "working directory for the command")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", executor.DefaultTimeout, "kill the command after this duration")
	cmd.Flags().StringToStringVarP(&opts.env, "env", "e", nil, "environment override as KEY=VALUE (repeatable)")
	return cmd
}
