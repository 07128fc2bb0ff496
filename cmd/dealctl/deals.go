package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/client/querycache"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewDealsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deals",
		Aliases: []string{"deal"},
		Short:   "Work with the deal pipeline",
	}
	cmd.AddCommand(
		newDealsListCmd(a),
		newDealsShowCmd(a),
		newDealsCreateCmd(a),
		newDealsMoveCmd(a),
		newDealsDeleteCmd(a),
		newDealsActivitiesCmd(a),
	)
	return cmd
}

func newDealsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "board"},
		Short:   "Show the pipeline board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			columns, err := a.board.Columns(ctx)
			if err != nil {
				return fmt.Errorf("list deals: %w", err)
			}
			if a.jsonOut {
				out := make(map[domain.DealStage][]dto.DealResponse, len(columns))
				for _, col := range columns {
					out[col.Stage] = dto.ToListDealResponse(col.Deals)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBoard(columns))
			return nil
		},
	}
}

func newDealsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deal-id>",
		Short: "Show a deal with its memo and activity log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseDealID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			var (
				deal       *domain.Deal
				activities []domain.Activity
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				deals, err := querycache.Fetch(gctx, a.cache, querycache.KeyDeals, a.api.ListDeals)
				if err != nil {
					return err
				}
				for i := range deals {
					if deals[i].DealID == dealID {
						deal = &deals[i]
						return nil
					}
				}
				return fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
			})
			g.Go(func() error {
				var err error
				activities, err = a.api.ListActivities(gctx, dealID)
				return err
			})
			g.Go(func() error {
				a.editor.Open(gctx, dealID)
				return nil
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("show deal: %w", err)
			}

			sections := a.editor.Sections()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"deal":       dto.ToDealResponse(deal),
					"memo":       sections.Map(),
					"activities": dto.ToListActivityResponse(activities),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDeal(deal))
			fmt.Fprintln(out, renderMemo(sections, a.editor.LoadError()))
			fmt.Fprintln(out, renderActivities(activities))
			return nil
		},
	}
}

func newDealsCreateCmd(a *app) *cobra.Command {
	var (
		name, companyURL, round, checkSize string
		ownerID                            int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deal in the Sourced stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.CreateDealRequest{Name: name}
			if companyURL != "" {
				req.CompanyURL = &companyURL
			}
			if round != "" {
				req.Round = &round
			}
			if checkSize != "" {
				size, err := decimal.NewFromString(checkSize)
				if err != nil {
					return fmt.Errorf("invalid check size %q: %w", checkSize, apperrors.ErrValidation)
				}
				req.CheckSize = &size
			}
			if cmd.Flags().Changed("owner") {
				req.OwnerID = &ownerID
			}

			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			deal, err := a.api.CreateDeal(ctx, req)
			if err != nil {
				return fmt.Errorf("create deal: %w", err)
			}
			a.cache.Invalidate(querycache.KeyDeals)

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToDealResponse(deal))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deal #%d %q in %s\n", deal.DealID, deal.Name, deal.Stage)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "company name")
	cmd.Flags().StringVar(&companyURL, "company-url", "", "company website")
	cmd.Flags().StringVar(&round, "round", "", "financing round, e.g. Seed")
	cmd.Flags().StringVar(&checkSize, "check-size", "", "check size in millions")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "owner user id (defaults to you)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDealsMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <deal-id> <stage>",
		Short: "Move a deal to another pipeline stage",
		Long:  `Move a deal to the end of another stage column. Stages: ` + stageNames() + `.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseDealID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseStageArg(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			sent, err := a.board.MoveDeal(ctx, dealID, stage)
			if err != nil {
				// The board already reported the failure and refetched.
				if sent {
					return errors.New("move failed")
				}
				return fmt.Errorf("move deal: %w", err)
			}
			if !sent {
				fmt.Fprintf(cmd.OutOrStdout(), "Deal #%d is already in %s\n", dealID, stage)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved deal #%d to %s\n", dealID, stage)
			return nil
		},
	}
}

func newDealsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <deal-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a deal (admins only)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseDealID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			if err := a.api.DeleteDeal(ctx, dealID); err != nil {
				return fmt.Errorf("delete deal: %w", err)
			}
			a.cache.Invalidate(querycache.KeyDeals, querycache.KeyMemo(dealID), querycache.KeyMemoHistory(dealID), querycache.KeyActivities(dealID))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deal #%d\n", dealID)
			return nil
		},
	}
}

func newDealsActivitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "activities <deal-id>",
		Aliases: []string{"log"},
		Short:   "Show the activity log of a deal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseDealID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			activities, err := querycache.Fetch(ctx, a.cache, querycache.KeyActivities(dealID), func(fetchCtx context.Context) ([]domain.Activity, error) {
				return a.api.ListActivities(fetchCtx, dealID)
			})
			if err != nil {
				return fmt.Errorf("list activities: %w", err)
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToListActivityResponse(activities))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderActivities(activities))
			return nil
		},
	}
}

func parseDealID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid deal id %q: %w", arg, apperrors.ErrValidation)
	}
	return id, nil
}

// parseStageArg accepts a stage name in any letter case.
func parseStageArg(arg string) (domain.DealStage, error) {
	for _, stage := range domain.DealStages {
		if strings.EqualFold(string(stage), arg) {
			return stage, nil
		}
	}
	return domain.ParseDealStage(arg)
}

func stageNames() string {
	names := make([]string, len(domain.DealStages))
	for i, s := range domain.DealStages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
