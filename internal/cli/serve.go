package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/pkg/api"
	"github.com/matzehuels/wraplayout/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Layouts are kept in MongoDB when server.mongo_uri (or WRAPLAYOUT_MONGO_URI) is
set, and in memory otherwise. The configured cache backend is shared with the
CLI, so a redis cache can serve several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, backend, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	r := c.report()
	r.field("address", addr)
	r.field("store", backend)
	r.field("cache", c.config.Cache.Backend)

	return api.New(runner, st, c.Logger).ListenAndServe(ctx, addr)
}

// newStore opens the layout store and names its backend.
func (c *CLI) newStore(ctx context.Context) (store.Store, string, error) {
	if c.config.Server.MongoURI == "" {
		return store.NewMemoryStore(), "memory", nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      c.config.Server.MongoURI,
		Database: c.config.Server.MongoDatabase,
	})
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, "mongo", nil
}
