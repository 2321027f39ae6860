// Package cli implements the solrq command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/solrnode/client"
	"github.com/adamwoolhether/solrnode/internal/config"
)

// app holds the state shared by the subcommands.
type app struct {
	logs    io.Writer
	logger  *slog.Logger
	cfgPath string
	verbose bool
	solr    config.Solr
}

// New returns the root solrq command. Logs are written to logs.
func New(logs io.Writer) *cobra.Command {
	a := &app{logs: logs, logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "solrq",
		Short:         "Query and maintain an Apache Solr core",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.logs, &slog.HandlerOptions{Level: level}))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to the TOML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log requests at debug level")
	pf.StringVar(&a.solr.Protocol, "protocol", "", "solr protocol, http or https")
	pf.StringVar(&a.solr.Host, "host", "", "solr host")
	pf.IntVar(&a.solr.Port, "port", 0, "solr port")
	pf.StringVar(&a.solr.Core, "core", "", "solr core or collection")
	pf.StringVar(&a.solr.RootPath, "root-path", "", "path solr is served under")
	pf.StringVar(&a.solr.User, "user", "", "basic auth user")
	pf.StringVar(&a.solr.Password, "password", "", "basic auth password")

	root.AddCommand(
		a.queryCmd(),
		a.searchCmd(),
		a.pingCmd(),
		a.commitCmd(),
		a.configCmd(),
	)

	return root
}

// loadConfig reads the config file and applies the flags set on cmd.
func (a *app) loadConfig(cmd *cobra.Command) (config.File, error) {
	f, err := config.Load(a.cfgPath)
	if err != nil {
		return config.File{}, err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		set  func()
	}{
		{"protocol", func() { f.Solr.Protocol = a.solr.Protocol }},
		{"host", func() { f.Solr.Host = a.solr.Host }},
		{"port", func() { f.Solr.Port = a.solr.Port }},
		{"core", func() { f.Solr.Core = a.solr.Core }},
		{"root-path", func() { f.Solr.RootPath = a.solr.RootPath }},
		{"user", func() { f.Solr.User = a.solr.User }},
		{"password", func() { f.Solr.Password = a.solr.Password }},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			o.set()
		}
	}

	return f, nil
}

func (a *app) client(cmd *cobra.Command) (*client.Client, error) {
	f, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, client.WithLogger(a.logger))

	c, err := client.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}

	return c, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))

	return nil
}
