package main

import (
	"fmt"
	"os"
	"time"

	lipgloss "github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/erg0nix/samtale/internal/config"
	"github.com/erg0nix/samtale/internal/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionDeleteCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionListCmd,
	}
}

func runSessionListCmd(_ *cobra.Command, _ []string) error {
	sessionsDir, err := config.SessionsDir()
	if err != nil {
		return err
	}

	names := session.List(sessionsDir)
	if len(names) == 0 {
		lipgloss.Println(styleDim.Render("No sessions found."))
		return nil
	}

	t := table.New().
		Headers("NAME", "MODEL", "MESSAGES", "SIZE", "MODIFIED").
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	for _, name := range names {
		path := session.FilePath(sessionsDir, name)

		loaded, err := session.Load(name, path)
		if err != nil {
			t.Row(name, styleError.Render("unreadable"), "-", "-", "-")
			continue
		}

		size, modified := "-", "-"
		if stat, err := os.Stat(path); err == nil {
			size = formatSize(stat.Size())
			modified = formatTime(stat.ModTime())
		}

		t.Row(name, loaded.ModelID, fmt.Sprintf("%d", len(loaded.Exchanges)), size, modified)
	}

	lipgloss.Println(t.Render())
	return nil
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show session details",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionShowCmd,
	}
}

func runSessionShowCmd(_ *cobra.Command, args []string) error {
	sessionsDir, err := config.SessionsDir()
	if err != nil {
		return err
	}

	name := args[0]
	loaded, err := session.Load(name, session.FilePath(sessionsDir, name))
	if err != nil {
		return err
	}

	info, err := loaded.Export()
	if err != nil {
		return err
	}

	fmt.Print(info)
	return nil
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionDeleteCmd,
	}
}

func runSessionDeleteCmd(_ *cobra.Command, args []string) error {
	sessionsDir, err := config.SessionsDir()
	if err != nil {
		return err
	}

	name := args[0]
	path := session.FilePath(sessionsDir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("session not found: %s", name)
		}
		return fmt.Errorf("delete session %s: %w", path, err)
	}

	lipgloss.Printf("%s session %s\n", styleSuccess.Render("Deleted"), name)
	return nil
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1fM", float64(bytes)/1024/1024)
	case bytes >= 1024:
		return fmt.Sprintf("%.1fK", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func formatTime(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	case d < 48*time.Hour:
		return "yesterday"
	default:
		return t.Format("2006-01-02")
	}
}
