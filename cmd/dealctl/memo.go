package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/spf13/cobra"
)

func NewMemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Read and edit investment memos",
		Long:  `Investment memos have the sections ` + sectionNames() + `. Every save stores a new version.`,
	}
	cmd.AddCommand(
		newMemoShowCmd(a),
		newMemoSaveCmd(a),
		newMemoHistoryCmd(a),
	)
	return cmd
}

func newMemoShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deal-id>",
		Short: "Show the current memo of a deal",
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

			a.editor.Open(ctx, dealID)
			sections := a.editor.Sections()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), sections.Map())
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMemo(sections, a.editor.LoadError()))
			return nil
		},
	}
}

func newMemoSaveCmd(a *app) *cobra.Command {
	var (
		sets      []string
		fromBlank bool
	)

	cmd := &cobra.Command{
		Use:   "save <deal-id>",
		Short: "Save a new memo version",
		Long: `Load the current memo, apply each --set "Section=text" and save the result as a new version.
Sections not named keep their current text. If the current memo cannot be loaded
nothing is saved, unless --from-blank is given to start from empty sections.`,
		Example: `  dealctl memo save 4 --set "Summary=Strong team" --set "Open Questions=Burn rate?"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dealID, err := parseDealID(args[0])
			if err != nil {
				return err
			}
			edits, err := parseSectionEdits(sets)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			a.editor.Open(ctx, dealID)
			if loadErr := a.editor.LoadError(); loadErr != nil {
				if !fromBlank {
					return fmt.Errorf("load current memo of deal #%d, nothing saved (use --from-blank to overwrite): %w", dealID, loadErr)
				}
				a.logger.Warn("Current memo could not be loaded, starting from blank sections", slog.String("error", loadErr.Error()))
			}
			for _, e := range edits {
				if err := a.editor.Set(e.section, e.text); err != nil {
					return err
				}
			}
			versionID, err := a.editor.Save(ctx)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.SaveMemoResponse{Status: "saved", VersionID: versionID})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved memo version %d for deal #%d\n", versionID, dealID)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, `section edit as "Section=text", repeatable`)
	cmd.Flags().BoolVar(&fromBlank, "from-blank", false, "save even if the current memo failed to load, blanking sections not set")
	return cmd
}

func newMemoHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <deal-id>",
		Short: "List the saved versions of a memo",
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

			a.editor.Open(ctx, dealID)
			versions := a.editor.History(ctx)
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dto.ToListMemoVersionResponse(versions))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(versions))
			return nil
		},
	}
}

type sectionEdit struct {
	section domain.MemoSection
	text    string
}

func parseSectionEdits(sets []string) ([]sectionEdit, error) {
	edits := make([]sectionEdit, 0, len(sets))
	for _, s := range sets {
		name, text, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want Section=text: %w", s, apperrors.ErrValidation)
		}
		section, err := domain.ParseMemoSection(name)
		if err != nil {
			return nil, err
		}
		edits = append(edits, sectionEdit{section: section, text: text})
	}
	return edits, nil
}

func sectionNames() string {
	names := make([]string, len(domain.MemoSectionOrder))
	for i, s := range domain.MemoSectionOrder {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
