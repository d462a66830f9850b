package config

import (
	"fmt"
	"os"

	"github.com/erg0nix/samtale/internal/core"
)

const transcriptSeparator = "--------"

// appendTranscript writes one formatted entry to the append-only message
// log, creating the file and its parents on first use. The log is never
// truncated or rewritten.
func appendTranscript(exchange core.Exchange) error {
	path, err := MessagesFile()
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open messages file %s: %w", path, err)
	}
	defer file.Close()

	entry := fmt.Sprintf(
		"# CHAT: %s [%s]\n%s\n%s\n%s\n%s\n\n",
		exchange.Summary(),
		core.Timestamp(),
		exchange.Input,
		transcriptSeparator,
		exchange.Output,
		transcriptSeparator,
	)
	if _, err := file.WriteString(entry); err != nil {
		return fmt.Errorf("append message to %s: %w", path, err)
	}
	return nil
}
