package cli

import (
	"bytes"
	"context"
	"testing"
)

func TestExecuteHelpSucceeds(t *testing.T) {
	var buf bytes.Buffer
	if err := Execute(context.Background(), &buf, []string{"--help"}); err != nil {
		t.Fatalf("Execute --help: %v", err)
	}
}

func TestExecuteUnknownCommandErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Execute(context.Background(), &buf, []string{"bogus-command"}); err == nil {
		t.Fatal("expected an error for an unknown subcommand")
	}
}
