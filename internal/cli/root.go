// Package cli implements the catalog command used by editors to query and
// check the data files without starting the server.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"charapedia/app/internal/app/bootstrap"
	"charapedia/app/internal/catalog"
	"charapedia/app/internal/config"
	"charapedia/app/internal/data"
	applog "charapedia/app/internal/log"
	"charapedia/app/internal/showcase"
)

type rootOptions struct {
	dataLocation string
	logLevel     string
	timeout      time.Duration
}

// NewRootCommand builds the catalog command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the Charapedia data files",
		Long: `catalog loads the same tables as the web server and prints listings,
filter choices and data problems. --data accepts a directory or an http(s) base URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dataLocation, "data", "./data", "data directory or base URL")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for load diagnostics")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "fetch timeout for remote data")

	root.AddCommand(
		newListCommand(opts),
		newExhibitionCommand(opts),
		newOptionsCommand(opts),
		newCheckCommand(opts),
		newClassifyCommand(),
	)

	return root
}

// Execute runs the command tree against args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

type session struct {
	snapshot *catalog.Snapshot
	service  showcase.Service
}

// open loads the catalog once. Diagnostics go to the command's error stream.
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	logger, err := applog.NewLogger(applog.Settings{
		Level:  o.logLevel,
		Format: applog.FormatText,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	source, err := bootstrap.OpenSource(o.dataLocation, config.Config{DataFetchTimeout: o.timeout})
	if err != nil {
		return nil, eris.Wrap(err, "opening data source")
	}

	loader, err := data.NewLoader(data.LoaderOptions{Source: source, Logger: logger})
	if err != nil {
		return nil, err
	}

	store, err := data.NewStore(data.StoreOptions{Loader: loader, Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := store.Reload(cmd.Context()); err != nil {
		return nil, eris.Wrapf(err, "loading catalog from %s", source.Describe())
	}

	snapshot, err := store.Current()
	if err != nil {
		return nil, err
	}

	service, err := showcase.NewService(showcase.Options{Snapshots: store, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &session{snapshot: snapshot, service: service}, nil
}
