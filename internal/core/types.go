// Package core holds the small shared types passed between the config,
// session, and CLI layers.
package core

import (
	"strings"
	"unicode/utf8"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolResult records the outcome of one tool invocation made while
// producing an assistant reply.
type ToolResult struct {
	Name    string `yaml:"name" json:"name"`
	Output  string `yaml:"output,omitempty" json:"output,omitempty"`
	IsError bool   `yaml:"is_error,omitempty" json:"is_error,omitempty"`
}

// Exchange is one conversation turn: the user input as rendered for the
// model, the assistant output, and any tool results folded into the reply.
type Exchange struct {
	Input       string       `yaml:"input" json:"input"`
	Output      string       `yaml:"output" json:"output"`
	ToolResults []ToolResult `yaml:"tool_results,omitempty" json:"tool_results,omitempty"`
}

const summaryLimit = 80

// Summary returns a one-line digest of the input, suitable for transcript
// headings.
func (e Exchange) Summary() string {
	line := strings.TrimSpace(e.Input)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if len(line) > summaryLimit {
		cut := summaryLimit - 3
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut] + "..."
	}
	return line
}
