package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/client/apiclient"
	"github.com/SscSPs/dealflow/internal/client/kanban"
	"github.com/SscSPs/dealflow/internal/client/memoeditor"
	"github.com/SscSPs/dealflow/internal/client/querycache"
	"github.com/SscSPs/dealflow/internal/client/session"
	"github.com/SscSPs/dealflow/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app wires the client components for one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *session.FileStore
	session *session.Session
	api     *apiclient.Client
	cache   *querycache.Cache
	board   *kanban.Board
	editor  *memoeditor.Editor
	jsonOut bool
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "dealctl",
		Short:         "DealFlow pipeline client",
		Long:          `Track venture deals through the pipeline stages and edit their investment memos.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, v)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd, v)
	rootCmd.AddCommand(
		NewLoginCmd(a),
		NewRegisterCmd(a),
		NewLogoutCmd(a),
		NewWhoamiCmd(a),
		NewDealsCmd(a),
		NewMemoCmd(a),
	)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "DealFlow API base URL (env DEALFLOW_API_URL)")
	flags.String("credentials-file", "", "where the access token is kept (env DEALFLOW_CREDENTIALS_FILE)")
	flags.Duration("timeout", 0, "HTTP request timeout (env DEALFLOW_HTTP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "log requests to stderr")
	flags.Bool("json", false, "output in JSON format")

	_ = v.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = v.BindPFlag(config.KeyCredentialsFile, flags.Lookup("credentials-file"))
	_ = v.BindPFlag(config.KeyHTTPTimeout, flags.Lookup("timeout"))
}

func (a *app) setup(cmd *cobra.Command, v *viper.Viper) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	a.jsonOut, _ = cmd.Flags().GetBool("json")

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.store = session.NewFileStore(cfg.CredentialsFile)
	a.session = session.New(a.store, session.WithLogger(a.logger))
	a.api = apiclient.New(cfg.APIURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		apiclient.WithTokenSource(a.session),
		apiclient.WithLogger(a.logger),
	)
	a.cache, err = querycache.New(querycache.DefaultSize, querycache.WithLogger(a.logger))
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	a.board = kanban.NewBoard(a.api, a.cache, kanban.NotifierFunc(func(msg string) {
		fmt.Fprintln(errOut, msg)
	}), a.logger)
	a.editor = memoeditor.New(a.api, a.cache, a.logger)
	return nil
}

// requireAuth resolves the stored token before a command that needs a user.
func (a *app) requireAuth(ctx context.Context) error {
	if a.session.Bootstrap(ctx, a.api) != session.StateAuthenticated {
		return fmt.Errorf("not logged in, run 'dealctl login': %w", apperrors.ErrUnauthorized)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
