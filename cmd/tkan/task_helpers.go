package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkanlabs/tkan/internal/config"
	"github.com/tkanlabs/tkan/internal/editor"
	"github.com/tkanlabs/tkan/internal/ui"
	"github.com/tkanlabs/tkan/task"
)

// openTaskManager loads configuration for the working directory and opens
// the board it points at.
func openTaskManager() (*task.Manager, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, nil, err
	}

	return task.NewManager(cfg.Tasks.File), cfg, nil
}

// resolveTaskIDs expands ID prefixes from the command line to full task IDs.
func resolveTaskIDs(manager *task.Manager, args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := manager.Resolve(strings.TrimSpace(arg))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func taskLogHighlighter(manager *task.Manager) func(string) string {
	return logHighlighter(manager.IDIndex().PrefixLengths(), ui.HighlightID)
}

func logHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		if id == "" {
			return id
		}
		prefixLen, ok := prefixLengths[strings.ToLower(id)]
		if !ok {
			return highlight(id, 0)
		}
		return highlight(id, prefixLen)
	}
}

func printTaskActionResults(manager *task.Manager, verb string, items []task.Task) {
	highlight := taskLogHighlighter(manager)
	for _, item := range items {
		fmt.Printf("%s %s: %s\n", verb, highlight(item.ID), item.Title)
	}
}

// resolveDescriptionFlag replaces a literal "-" description with text read
// from reader. It only looks at the flag when the user set it.
func resolveDescriptionFlag(cmd *cobra.Command, description *string, reader io.Reader) error {
	if !cmd.Flags().Changed("description") {
		return nil
	}

	value, err := resolveDescriptionFromStdin(*description, reader)
	if err != nil {
		return err
	}
	*description = value
	return nil
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	value := strings.TrimRight(string(input), "\r\n")
	return value, nil
}

// confirmDelete asks on the terminal before a task is removed. Without a
// terminal the caller has to pass --yes, so scripts never hang on a prompt.
func confirmDelete(item task.Task) (bool, error) {
	if !editor.IsInteractive() {
		return false, fmt.Errorf("confirmation required to delete %s; re-run with --yes", item.ID)
	}

	fmt.Printf("Delete task %s: %q? [y/N] ", item.ID, item.Title)
	return readConfirmAnswer(os.Stdin)
}

func readConfirmAnswer(reader io.Reader) (bool, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	answer := strings.TrimSpace(line)
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}
