package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/dealflow/internal/client/kanban"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	primary = lipgloss.Color("#101F38")
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#9AA3AF")
	border  = lipgloss.Color("#D6DAE0")
	warning = lipgloss.Color("#FFC107")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	warningStyle = lipgloss.NewStyle().Foreground(warning)
	columnStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(24)
)

func renderBoard(columns []kanban.Column) string {
	blocks := make([]string, len(columns))
	for i, col := range columns {
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", col.Stage, len(col.Deals))))
		for _, d := range col.Deals {
			fmt.Fprintf(&b, "\n\n#%d %s\n%s %s", d.DealID, d.Name, formatCheckSize(d.CheckSize), statusDot(d.Status))
		}
		blocks[i] = columnStyle.Render(b.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func renderDeal(d *domain.Deal) string {
	rows := [][]string{
		{"Stage", string(d.Stage)},
		{"Status", d.Status},
		{"Round", deref(d.Round)},
		{"Check size", formatCheckSize(d.CheckSize)},
		{"Company URL", deref(d.CompanyURL)},
	}
	if d.OwnerID != nil {
		rows = append(rows, []string{"Owner", strconv.FormatInt(*d.OwnerID, 10)})
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return mutedStyle
			}
			return cellStyle
		})
	return titleStyle.Render(fmt.Sprintf("#%d %s", d.DealID, d.Name)) + "\n" + t.String()
}

func renderMemo(sections domain.MemoSections, loadErr error) string {
	var b strings.Builder
	if loadErr != nil {
		b.WriteString(warningStyle.Render("Memo could not be loaded: "+loadErr.Error()) + "\n\n")
	}
	for i, s := range domain.MemoSectionOrder {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(titleStyle.Render(string(s)))
		b.WriteString("\n")
		if text := sections.Get(s); text != "" {
			b.WriteString(text)
		} else {
			b.WriteString(mutedStyle.Render("(empty)"))
		}
	}
	return b.String()
}

func renderActivities(activities []domain.Activity) string {
	if len(activities) == 0 {
		return mutedStyle.Render("No activity yet")
	}
	t := newTable("When", "Type", "Description")
	for _, a := range activities {
		t.Row(a.Timestamp.Local().Format("2006-01-02 15:04"), string(a.Type), a.Description)
	}
	return t.String()
}

func renderHistory(versions []domain.MemoVersion) string {
	if len(versions) == 0 {
		return mutedStyle.Render("No saved versions")
	}
	t := newTable("Version", "Saved", "By")
	for _, v := range versions {
		t.Row(strconv.FormatInt(v.MemoVersionID, 10), v.CreatedAt.Local().Format("2006-01-02 15:04"), strconv.FormatInt(v.CreatedBy, 10))
	}
	return t.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatCheckSize(size *decimal.Decimal) string {
	if size == nil {
		return "-"
	}
	return "$" + size.String() + "m"
}

func statusDot(status string) string {
	if status == domain.DealStatusActive {
		return lipgloss.NewStyle().Foreground(accent).Render("●")
	}
	return mutedStyle.Render("●")
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
