package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/types"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

// Task flag names
const (
	flagTaskID        = "id"
	flagTaskProjectID = "project-id"
	flagText          = "text"
	flagDueDate       = "due-date"
	flagAssigneeID    = "assignee-id"
	flagSortBy        = "sort-by"
	flagMine          = "mine"
)

// taskOutput represents the filtered output for a task
type taskOutput struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	DueDate    string `json:"due_date"`
	IsComplete bool   `json:"is_complete"`
	ProjectID  uint   `json:"project_id"`
	Creator    string `json:"creator,omitempty"`
	Assignee   string `json:"assignee,omitempty"`
}

// taskListOutput represents the filtered output for a list of tasks
type taskListOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Total int          `json:"total"`
}

// commentOutput represents the filtered output for a comment
type commentOutput struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// taskDetailOutput represents the filtered output for a task with its comments
type taskDetailOutput struct {
	taskOutput
	Comments []commentOutput `json:"comments"`
}

func newTaskOutput(t types.TaskView) taskOutput {
	out := taskOutput{
		ID:         t.ID,
		Text:       t.Text,
		DueDate:    t.DueDate,
		IsComplete: t.IsComplete,
		ProjectID:  t.ProjectID,
	}
	if t.Creator != nil {
		out.Creator = t.Creator.Name
	}
	if t.Assignee != nil {
		out.Assignee = t.Assignee.Name
	}
	return out
}

// GetTasksCmd returns the tasks command
func GetTasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	listTasksCmd := &cobra.Command{
		Use:   "list",
		Short: "List the open tasks assigned to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortBy, _ := cmd.Flags().GetString(flagSortBy)
			page, err := cmd.Flags().GetInt(flagPage)
			if err != nil {
				return fmt.Errorf("error getting page flag: %w", err)
			}

			tasks, err := apiClient.ListTasks(context.Background(), models.TaskOrder(sortBy), page)
			if err != nil {
				return fmt.Errorf("error listing tasks: %w", err)
			}

			output := taskListOutput{
				Tasks: make([]taskOutput, 0, len(tasks.Rows)),
				Total: tasks.Pagination.Total,
			}
			for _, t := range tasks.Rows {
				output.Tasks = append(output.Tasks, newTaskOutput(t))
			}
			return printJSON(cmd, output)
		},
	}
	listTasksCmd.Flags().String(flagSortBy, string(models.TaskOrderDueDate), "Order by due_date, project or creator")
	listTasksCmd.Flags().Int(flagPage, 1, "Page number for pagination")

	getTaskCmd := &cobra.Command{
		Use:   "get",
		Short: "Show a task and its comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}

			detail, err := apiClient.GetTask(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error getting task: %w", err)
			}

			output := taskDetailOutput{
				taskOutput: newTaskOutput(detail.Task),
				Comments:   make([]commentOutput, 0, len(detail.Comments)),
			}
			for _, c := range detail.Comments {
				out := commentOutput{ID: c.ID, Text: c.Text}
				if c.Author != nil {
					out.Author = c.Author.Name
				}
				output.Comments = append(output.Comments, out)
			}
			return printJSON(cmd, output)
		},
	}
	getTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	mustMarkRequired(getTaskCmd, flagTaskID)

	createTaskCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a task to a project you created",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := getID(cmd, flagTaskProjectID)
			if err != nil {
				return err
			}
			params, err := taskParams(cmd)
			if err != nil {
				return err
			}

			if _, err := apiClient.CreateTask(context.Background(), projectID, params); err != nil {
				return fmt.Errorf("error creating task: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' created successfully\n", params.Text)
			return err
		},
	}
	createTaskCmd.Flags().Uint(flagTaskProjectID, 0, "Project ID")
	addTaskFlags(createTaskCmd)
	mustMarkRequired(createTaskCmd, flagTaskProjectID, flagText, flagDueDate, flagAssigneeID)

	updateTaskCmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a task you created",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}

			// Unset flags keep their current value
			ctx := context.Background()
			form, err := apiClient.GetTaskForm(ctx, id)
			if err != nil {
				return fmt.Errorf("error getting task: %w", err)
			}
			if form.Task == nil {
				return fmt.Errorf("task %d not returned by the server", id)
			}
			params := handlers.TaskParams{Text: form.Task.Text, DueDate: form.Task.DueDate, AssigneeID: form.Task.AssigneeID}
			if cmd.Flags().Changed(flagText) {
				params.Text, _ = cmd.Flags().GetString(flagText)
			}
			if cmd.Flags().Changed(flagDueDate) {
				params.DueDate, _ = cmd.Flags().GetString(flagDueDate)
			}
			if cmd.Flags().Changed(flagAssigneeID) {
				params.AssigneeID, _ = cmd.Flags().GetUint(flagAssigneeID)
			}

			if _, err := apiClient.UpdateTask(ctx, id, params); err != nil {
				return fmt.Errorf("error updating task: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task %d updated successfully\n", id)
			return err
		},
	}
	updateTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	addTaskFlags(updateTaskCmd)
	mustMarkRequired(updateTaskCmd, flagTaskID)

	dueDateCmd := &cobra.Command{
		Use:   "due-date",
		Short: "Move the due date of a task assigned to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}
			dueDate, _ := cmd.Flags().GetString(flagDueDate)

			if _, err := apiClient.UpdateDueDate(context.Background(), id, handlers.DueDateParams{DueDate: dueDate}); err != nil {
				return fmt.Errorf("error updating due date: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now due %s\n", id, dueDate)
			return err
		},
	}
	dueDateCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	dueDateCmd.Flags().String(flagDueDate, "", "Due date, YYYY-MM-DD")
	mustMarkRequired(dueDateCmd, flagTaskID, flagDueDate)

	markTaskCmd := &cobra.Command{
		Use:   "mark",
		Short: "Toggle the completion of a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}
			mine, _ := cmd.Flags().GetBool(flagMine)

			ctx := context.Background()
			if mine {
				_, err = apiClient.MarkMyTask(ctx, id)
			} else {
				_, err = apiClient.MarkTask(ctx, id)
			}
			if err != nil {
				return fmt.Errorf("error marking task: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task %d toggled\n", id)
			return err
		},
	}
	markTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	markTaskCmd.Flags().Bool(flagMine, false, "Use the assignee route, for tasks assigned to you")
	mustMarkRequired(markTaskCmd, flagTaskID)

	deleteTaskCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task you created, with its comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}
			if _, err := apiClient.DeleteTask(context.Background(), id); err != nil {
				return fmt.Errorf("error deleting task: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted successfully\n", id)
			return err
		},
	}
	deleteTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	mustMarkRequired(deleteTaskCmd, flagTaskID)

	commentCmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagTaskID)
			if err != nil {
				return err
			}
			text, _ := cmd.Flags().GetString(flagText)

			if _, err := apiClient.AddComment(context.Background(), id, handlers.CommentParams{Text: text}); err != nil {
				return fmt.Errorf("error adding comment: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comment added to task %d\n", id)
			return err
		},
	}
	commentCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	commentCmd.Flags().String(flagText, "", "Comment text")
	mustMarkRequired(commentCmd, flagTaskID, flagText)

	tasksCmd.AddCommand(listTasksCmd, getTaskCmd, createTaskCmd, updateTaskCmd, dueDateCmd, markTaskCmd, deleteTaskCmd, commentCmd)
	return tasksCmd
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagText, "", "Task text")
	cmd.Flags().String(flagDueDate, "", "Due date, YYYY-MM-DD")
	cmd.Flags().Uint(flagAssigneeID, 0, "ID of the user the task is assigned to")
}

func taskParams(cmd *cobra.Command) (handlers.TaskParams, error) {
	text, _ := cmd.Flags().GetString(flagText)
	dueDate, _ := cmd.Flags().GetString(flagDueDate)
	assigneeID, err := cmd.Flags().GetUint(flagAssigneeID)
	if err != nil {
		return handlers.TaskParams{}, fmt.Errorf("error getting %s flag: %w", flagAssigneeID, err)
	}
	return handlers.TaskParams{Text: text, DueDate: dueDate, AssigneeID: assigneeID}, nil
}
