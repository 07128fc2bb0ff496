package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/dealflow/internal/client/apiclient"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/spf13/cobra"
)

func NewLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Long:  `Exchange an email and password for an access token and keep it in the credentials file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = readLine(cmd, "Password: "); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			token, err := a.api.IssueToken(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err := a.session.Login(ctx, token, a.api); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			user := a.session.User()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToUserResponse(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func NewRegisterCmd(a *app) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.api.Register(cmd.Context(), dto.RegisterRequest{
				Email:    email,
				Password: password,
				Role:     domain.UserRole(role),
			})
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToUserResponse(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s), run 'dealctl login' to continue\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters")
	cmd.Flags().StringVar(&role, "role", "", "admin, analyst or partner (server default analyst)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func NewLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Long:  `Ask the server to revoke the stored token, then remove it locally. Local logout happens even when the server cannot be reached.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.store.Load()
			if err != nil {
				a.logger.Warn("Failed to read stored token", slog.String("error", err.Error()))
			}
			if token != "" {
				revoker := apiclient.New(a.cfg.APIURL,
					apiclient.WithTokenSource(apiclient.StaticToken(token)),
					apiclient.WithLogger(a.logger),
				)
				if err := revoker.Logout(cmd.Context()); err != nil {
					a.logger.Warn("Server-side logout failed", slog.String("error", err.Error()))
				}
			}
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func NewWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			user := a.session.User()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToUserResponse(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
}

func readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errors.New("empty input")
	}
	return line, nil
}
