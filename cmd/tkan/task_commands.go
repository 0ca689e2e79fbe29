package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkanlabs/tkan/internal/editor"
	"github.com/tkanlabs/tkan/internal/listflags"
	"github.com/tkanlabs/tkan/task"
)

// create
var taskCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively and no title or create flags are provided.
Use --no-edit to skip the editor, or --edit to force opening the editor
even when not interactive.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTaskCreate,
}

var (
	taskCreateDescription string
	taskCreatePriority    string
	taskCreateStatus      string
	taskCreateDeadline    string
	taskCreateJSON        bool
	taskCreateEdit        bool
	taskCreateNoEdit      bool
)

// update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more tasks",
	Long: `Update one or more tasks.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively and no update flags are provided (one editor
session per ID). Use --no-edit to skip the editor, or --edit to force
opening the editor even when not interactive.`,
	Aliases: []string{
		"edit",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskUpdate,
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdatePriority    string
	taskUpdateStatus      string
	taskUpdateDeadline    string
	taskUpdateEdit        bool
	taskUpdateNoEdit      bool
)

// start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Move one or more tasks to doing",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskStart,
}

// finish
var taskFinishCmd = &cobra.Command{
	Use:   "finish <id>...",
	Short: "Move one or more tasks to done",
	Aliases: []string{
		"done",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskFinish,
}

// reopen
var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Move one or more tasks back to todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskReopen,
}

// delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

var taskDeleteYes bool

// show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var (
	taskListStatus   string
	taskListPriority string
	taskListTitle    string
	taskListSort     string
	taskListJSON     bool
	taskListAll      bool
)

func init() {
	rootCmd.AddCommand(taskCreateCmd, taskUpdateCmd, taskStartCmd, taskFinishCmd, taskReopenCmd,
		taskDeleteCmd, taskShowCmd, taskListCmd)
	addDescriptionFlagAliases(taskCreateCmd, taskUpdateCmd)

	// create flags
	taskCreateCmd.Flags().StringVarP(&taskCreateDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	taskCreateCmd.Flags().StringVarP(&taskCreatePriority, "priority", "p", "", "Priority quadrant (urgent_important, not_urgent_important, urgent_not_important, not_urgent_not_important, or 0-3)")
	taskCreateCmd.Flags().StringVar(&taskCreateStatus, "status", "", "Starting column (todo, doing, done)")
	taskCreateCmd.Flags().StringVar(&taskCreateDeadline, "deadline", "", "Due date (YYYY-MM-DD)")
	taskCreateCmd.Flags().BoolVarP(&taskCreateEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no create input)")
	taskCreateCmd.Flags().BoolVar(&taskCreateNoEdit, "no-edit", false, "Do not open $EDITOR")
	listflags.AddJSONFlag(taskCreateCmd, &taskCreateJSON)

	// update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskUpdateCmd.Flags().StringVarP(&taskUpdatePriority, "priority", "p", "", "New priority quadrant")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New column (todo, doing, done)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDeadline, "deadline", "", "New due date (YYYY-MM-DD, empty clears)")
	taskUpdateCmd.Flags().BoolVarP(&taskUpdateEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateNoEdit, "no-edit", false, "Do not open $EDITOR")

	// delete flags
	taskDeleteCmd.Flags().BoolVarP(&taskDeleteYes, "yes", "y", false, "Delete without confirmation")

	// show flags
	listflags.AddJSONFlag(taskShowCmd, &taskShowJSON)

	// list flags
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status (todo, doing, done)")
	taskListCmd.Flags().StringVarP(&taskListPriority, "priority", "p", "", "Filter by priority quadrant")
	taskListCmd.Flags().StringVar(&taskListTitle, "title", "", "Filter by title substring")
	listflags.AddSortFlag(taskListCmd, &taskListSort)
	listflags.AddJSONFlag(taskListCmd, &taskListJSON)
	listflags.AddAllFlag(taskListCmd, &taskListAll)
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	if err := resolveDescriptionFlag(cmd, &taskCreateDescription, os.Stdin); err != nil {
		return err
	}

	manager, cfg, err := openTaskManager()
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(args, " "))

	status := defaultCreateStatus(cfg)
	if cmd.Flags().Changed("status") {
		status, err = task.ParseStatus(taskCreateStatus)
		if err != nil {
			return err
		}
	}

	// Determine whether to open editor:
	// - --edit forces editor
	// - --no-edit skips editor
	// - otherwise, open editor only when no title or create flags and interactive
	hasInput := title != "" || hasChangedFlags(cmd, "description", "priority", "status", "deadline")
	useEditor := shouldUseEditor(hasInput, taskCreateEdit, taskCreateNoEdit, editor.IsInteractive())

	if useEditor {
		// Pre-populate from args and flags if provided
		data := editor.DefaultCreateData()
		data.Title = title
		data.Priority = string(defaultCreatePriority(cfg))
		if cmd.Flags().Changed("priority") {
			data.Priority = taskCreatePriority
		}
		if cmd.Flags().Changed("deadline") {
			data.Deadline = taskCreateDeadline
		}
		if cmd.Flags().Changed("description") {
			data.Description = taskCreateDescription
		}

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}

		opts := parsed.ToCreateOptions()
		opts.Status = status

		created, err := manager.Create(parsed.Title, opts)
		if err != nil {
			return err
		}
		return reportCreated(manager, created)
	}

	priority := defaultCreatePriority(cfg)
	if cmd.Flags().Changed("priority") {
		priority, err = task.ParsePriority(taskCreatePriority)
		if err != nil {
			return err
		}
	}

	created, err := manager.Create(title, task.CreateOptions{
		Description: taskCreateDescription,
		Priority:    priority,
		Status:      status,
		Deadline:    taskCreateDeadline,
	})
	if err != nil {
		return err
	}
	return reportCreated(manager, created)
}

// reportCreated prints the create result and flushes the board. A nil task
// means the title trimmed to nothing and the board is unchanged; that is
// reported as a notice, not an error.
func reportCreated(manager *task.Manager, created *task.Task) error {
	if created == nil {
		fmt.Println("No task created: title is empty.")
		return nil
	}

	if taskCreateJSON {
		if err := encodeJSONToStdout(created); err != nil {
			return err
		}
		return manager.ForceSave()
	}

	highlight := taskLogHighlighter(manager)
	fmt.Printf("Created task %s: %s\n", highlight(created.ID), created.Title)
	return manager.ForceSave()
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	if err := resolveDescriptionFlag(cmd, &taskUpdateDescription, os.Stdin); err != nil {
		return err
	}

	manager, _, err := openTaskManager()
	if err != nil {
		return err
	}

	ids, err := resolveTaskIDs(manager, args)
	if err != nil {
		return err
	}

	hasFlags := hasChangedFlags(cmd, "title", "description", "priority", "status", "deadline")

	// Determine whether to open editor:
	// - --edit forces editor
	// - --no-edit skips editor
	// - otherwise, open editor only when no update flags and interactive
	useEditor := shouldUseEditor(hasFlags, taskUpdateEdit, taskUpdateNoEdit, editor.IsInteractive())
	if useEditor {
		updated := make([]task.Task, 0, len(ids))
		for _, id := range ids {
			existing, ok := manager.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
			}

			// Pre-populate from the existing task, then override with any flags
			data := editor.DataFromTask(&existing)
			if cmd.Flags().Changed("title") {
				data.Title = taskUpdateTitle
			}
			if cmd.Flags().Changed("description") {
				data.Description = taskUpdateDescription
			}
			if cmd.Flags().Changed("priority") {
				data.Priority = taskUpdatePriority
			}
			if cmd.Flags().Changed("status") {
				data.Status = taskUpdateStatus
			}
			if cmd.Flags().Changed("deadline") {
				data.Deadline = taskUpdateDeadline
			}

			parsed, err := editor.EditTaskWithData(data)
			if err != nil {
				return err
			}

			if _, err := manager.Update(id, parsed.ToUpdateOptions()); err != nil {
				return err
			}
			if current, ok := manager.Get(id); ok {
				updated = append(updated, current)
			}
		}

		printTaskActionResults(manager, "Updated", updated)
		return manager.ForceSave()
	}

	// Non-editor path: at least one flag is required
	if !hasFlags {
		return fmt.Errorf("at least one update flag is required (use --edit to open editor)")
	}

	opts := task.UpdateOptions{}

	if cmd.Flags().Changed("title") {
		opts.Title = &taskUpdateTitle
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &taskUpdateDescription
	}
	if cmd.Flags().Changed("priority") {
		priority, err := task.ParsePriority(taskUpdatePriority)
		if err != nil {
			return err
		}
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(taskUpdateStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}
	if cmd.Flags().Changed("deadline") {
		opts.Deadline = &taskUpdateDeadline
	}

	updated := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		if _, err := manager.Update(id, opts); err != nil {
			return err
		}
		if current, ok := manager.Get(id); ok {
			updated = append(updated, current)
		}
	}

	printTaskActionResults(manager, "Updated", updated)
	return manager.ForceSave()
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	return runTaskAction(args, "Started", func(m *task.Manager, id string) (bool, error) {
		return m.Start(id)
	})
}

func runTaskFinish(cmd *cobra.Command, args []string) error {
	return runTaskAction(args, "Finished", func(m *task.Manager, id string) (bool, error) {
		return m.Finish(id)
	})
}

func runTaskReopen(cmd *cobra.Command, args []string) error {
	return runTaskAction(args, "Reopened", func(m *task.Manager, id string) (bool, error) {
		return m.Reopen(id)
	})
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	manager, _, err := openTaskManager()
	if err != nil {
		return err
	}

	ids, err := resolveTaskIDs(manager, args)
	if err != nil {
		return err
	}

	highlight := taskLogHighlighter(manager)
	for _, id := range ids {
		item, ok := manager.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
		}

		if !taskDeleteYes {
			confirmed, err := confirmDelete(item)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Printf("Skipped %s: %s\n", highlight(item.ID), item.Title)
				continue
			}
		}

		if _, err := manager.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted %s: %s\n", highlight(item.ID), item.Title)
	}

	return manager.ForceSave()
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	manager, cfg, err := openTaskManager()
	if err != nil {
		return err
	}

	ids, err := resolveTaskIDs(manager, args)
	if err != nil {
		return err
	}

	items := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		item, ok := manager.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
		}
		items = append(items, item)
	}

	if taskShowJSON {
		return encodeJSONToStdout(items)
	}

	highlight := taskLogHighlighter(manager)
	now := time.Now()
	for i, item := range items {
		if i > 0 {
			fmt.Println("---")
		}
		printTaskDetail(item, highlight, cfg.Board.DeadlineWarningDays, now)
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	manager, cfg, err := openTaskManager()
	if err != nil {
		return err
	}

	filter := task.Filter{TitleSubstring: taskListTitle}

	if taskListStatus != "" {
		status, err := task.ParseStatus(taskListStatus)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	if cmd.Flags().Changed("priority") {
		priority, err := task.ParsePriority(taskListPriority)
		if err != nil {
			return err
		}
		filter.Priority = &priority
	}

	items := manager.List(filter)

	baseItems := items
	if taskListStatus == "" && !taskListAll {
		filtered := make([]task.Task, 0, len(items))
		for _, item := range items {
			if item.Status != task.StatusDone {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sortTasks, err := taskSortFunc(taskListSort)
	if err != nil {
		return err
	}
	if sortTasks != nil {
		items = sortTasks(items)
	}

	if taskListJSON {
		if items == nil {
			items = []task.Task{}
		}
		return encodeJSONToStdout(items)
	}

	if len(items) == 0 {
		hasDone := false
		for _, item := range baseItems {
			if item.Status == task.StatusDone {
				hasDone = true
			}
		}
		fmt.Println(taskEmptyListMessage(manager.Len(), taskListStatus, taskListAll, hasDone))
		return nil
	}

	printTaskTable(items, manager.IDIndex().PrefixLengths(), cfg.Board.DeadlineWarningDays, time.Now())
	return nil
}

func taskSortFunc(name string) (func([]task.Task) []task.Task, error) {
	switch name {
	case "":
		return nil, nil
	case "priority":
		return task.SortByPriority, nil
	case "date":
		return task.SortByDate, nil
	case "deadline":
		return task.SortByDeadline, nil
	default:
		return nil, fmt.Errorf("unknown sort order %q (valid: priority, date, deadline)", name)
	}
}

func runTaskAction(args []string, verb string, action func(*task.Manager, string) (bool, error)) error {
	manager, _, err := openTaskManager()
	if err != nil {
		return err
	}

	ids, err := resolveTaskIDs(manager, args)
	if err != nil {
		return err
	}

	items := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		found, err := action(manager, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
		}
		if current, ok := manager.Get(id); ok {
			items = append(items, current)
		}
	}

	printTaskActionResults(manager, verb, items)
	return manager.ForceSave()
}
