package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss/v2"

	"github.com/erg0nix/samtale/internal/config"
)

// runREPL drives the interactive loop. Dot-commands mutate the config
// facade; anything else is sent as a prompt and the completed turn is
// recorded through SaveMessage.
func runREPL(cfg *config.Config) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(promptString(cfg))

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			quit, err := runCommand(cfg, line)
			if err != nil {
				lipgloss.Println(styledError(err.Error()))
			}
			if quit {
				break
			}
			continue
		}

		output, err := reply(cfg, line)
		if err != nil {
			lipgloss.Println(styledError(err.Error()))
			continue
		}
		lipgloss.Println(output)

		if err := cfg.SaveMessage(line, output, nil); err != nil {
			lipgloss.Println(styledError(err.Error()))
		}
	}

	// Leaving the REPL tears the active session down the same way
	// '.exit session' would.
	if cfg.State() != 0 {
		if err := cfg.ExitSession(); err != nil {
			lipgloss.Println(styledError(err.Error()))
		}
	}

	return scanner.Err()
}

// reply produces the assistant output for one prompt. The provider wire
// protocol lives outside this program; without one configured the turn
// is answered with a placeholder so transcript and session flow still
// work end to end.
func reply(_ *config.Config, _ string) (string, error) {
	return styleDim.Render("(no provider wired; message recorded)"), nil
}

func runCommand(cfg *config.Config, line string) (bool, error) {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ".help":
		printHelp()
	case ".info":
		info, err := cfg.Info()
		if err != nil {
			return false, err
		}
		fmt.Print(info)
	case ".set":
		return false, cfg.Update(strings.TrimSpace(strings.TrimPrefix(line, ".set")))
	case ".model":
		if arg == "" {
			return false, fmt.Errorf("usage: .model <model-id>")
		}
		return false, cfg.SetModel(arg)
	case ".session":
		return false, cfg.UseSession(arg, confirmPrompt)
	case ".sessions":
		printSessionNames(cfg.ListSessions())
	case ".save":
		if arg != "session" {
			return false, fmt.Errorf("usage: .save session [name]")
		}
		name := ""
		if len(fields) > 2 {
			name = fields[2]
		}
		return false, cfg.SaveSession(name)
	case ".clear":
		if arg != "messages" {
			return false, fmt.Errorf("usage: .clear messages")
		}
		return false, cfg.ClearSessionMessages()
	case ".exit":
		if arg == "session" {
			return false, cfg.ExitSession()
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown command '%s'; try .help", fields[0])
	}

	return false, nil
}

var assertSessionEmpty = config.AssertState{Flags: config.FlagSessionEmpty, Present: true}

// promptString renders the input prompt from the facade's render
// context. Missing keys mean the feature is inactive and its fragment
// is skipped.
func promptString(cfg *config.Config) string {
	ctx := cfg.RenderContext()

	name, ok := ctx["session"]
	if !ok {
		return stylePrompt.Render("> ")
	}

	left := name
	if tokens := ctx["consume_tokens"]; tokens != "" && tokens != "0" {
		left += fmt.Sprintf(" %s(%s%%)", tokens, ctx["consume_percent"])
	}

	if assertSessionEmpty.Check(cfg.State()) {
		return styleDim.Render(left + ") ")
	}
	return stylePromptSession.Render(left + ") ")
}

func printSessionNames(names []string) {
	if len(names) == 0 {
		lipgloss.Println(styleDim.Render("No sessions found."))
		return
	}
	for _, name := range names {
		lipgloss.Println(name)
	}
}

func printHelp() {
	lines := []struct {
		command string
		help    string
	}{
		{".help", "show this help"},
		{".info", "show current settings, or the active session"},
		{".set <key> <value>", "change a setting ('null' unsets optional keys)"},
		{".model <model-id>", "switch the chat model"},
		{".session [name]", "start a session (no name: temporary)"},
		{".sessions", "list saved sessions"},
		{".save session [name]", "save the active session, optionally renaming it"},
		{".clear messages", "clear the active session's history"},
		{".exit session", "exit the active session"},
		{".exit", "quit"},
	}
	for _, line := range lines {
		lipgloss.Println(kvLine(line.command, line.help))
	}
}
