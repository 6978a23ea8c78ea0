// Package presentation renders registry data for the CLI, either as indented
// JSON or as a terminal table.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
	now    func() time.Time
}

// NewFormatter creates a new formatter. With asJSON every value is written as
// indented JSON; otherwise lists render as tables and results as one line.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
		now:    time.Now,
	}
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) table(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(f.writer, mutedStyle.Render("(none)"))
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

// FormatPlates writes the authorized plates.
func (f *Formatter) FormatPlates(plates []PlateDTO) error {
	if f.json {
		return f.encode(plates)
	}
	rows := make([][]string, len(plates))
	for i, p := range plates {
		rows[i] = []string{p.ID, p.Plate, p.Owner, FormatRelativeTimeFrom(p.CreatedAt, f.now())}
	}
	return f.table([]string{"ID", "PLATE", "OWNER", "REGISTERED"}, rows)
}

// FormatBlacklist writes the blacklisted plates.
func (f *Formatter) FormatBlacklist(records []BlacklistDTO) error {
	if f.json {
		return f.encode(records)
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Plate, r.Timestamp.Local().Format("2006-01-02 15:04"), FormatRelativeTimeFrom(r.Timestamp, f.now())}
	}
	return f.table([]string{"PLATE", "BLACKLISTED", "AGE"}, rows)
}

// FormatEntries writes entry feed events, newest first.
func (f *Formatter) FormatEntries(entries []EntryDTO) error {
	if f.json {
		return f.encode(entries)
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{fmt.Sprint(e.ID), e.Plate, FormatClock(e.Timestamp), FormatRelativeTimeFrom(e.Timestamp, f.now())}
	}
	return f.table([]string{"#", "PLATE", "TIME", "AGE"}, rows)
}

// FormatResult writes a workflow outcome.
func (f *Formatter) FormatResult(result ResultDTO) error {
	if f.json {
		return f.encode(result)
	}
	_, err := fmt.Fprintln(f.writer, result.Message)
	return err
}
