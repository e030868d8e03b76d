package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

// Project flag names
const (
	flagProjectID   = "id"
	flagTitle       = "title"
	flagDescription = "description"
)

// projectOutput represents the filtered output for a project
type projectOutput struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Date        string       `json:"date,omitempty"`
	Creator     string       `json:"creator,omitempty"`
	Tasks       []taskOutput `json:"tasks,omitempty"`
}

// projectListOutput represents the filtered output for a list of projects
type projectListOutput struct {
	Projects []projectOutput `json:"projects"`
	Total    int             `json:"total"`
}

// GetProjectsCmd returns the projects command
func GetProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	listProjectsCmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects you collaborate on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := cmd.Flags().GetInt(flagPage)
			if err != nil {
				return fmt.Errorf("error getting page flag: %w", err)
			}

			projects, err := apiClient.ListProjects(context.Background(), page)
			if err != nil {
				return fmt.Errorf("error listing projects: %w", err)
			}

			output := projectListOutput{
				Projects: make([]projectOutput, 0, len(projects.Rows)),
				Total:    projects.Pagination.Total,
			}
			for _, p := range projects.Rows {
				out := projectOutput{ID: p.ID, Title: p.Title, Description: p.Description, Date: p.Date}
				if p.Creator != nil {
					out.Creator = p.Creator.Name
				}
				output.Projects = append(output.Projects, out)
			}
			return printJSON(cmd, output)
		},
	}
	listProjectsCmd.Flags().Int(flagPage, 1, "Page number for pagination")

	createProjectCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, _ := cmd.Flags().GetString(flagTitle)
			description, _ := cmd.Flags().GetString(flagDescription)

			params := handlers.ProjectParams{Title: title, Description: description}
			if _, err := apiClient.CreateProject(context.Background(), params); err != nil {
				return fmt.Errorf("error creating project: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Project '%s' created successfully\n", title)
			return err
		},
	}
	createProjectCmd.Flags().StringP(flagTitle, "t", "", "Project title")
	createProjectCmd.Flags().StringP(flagDescription, "d", "", "Project description")
	mustMarkRequired(createProjectCmd, flagTitle)

	getProjectCmd := &cobra.Command{
		Use:   "get",
		Short: "Show a project and its tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagProjectID)
			if err != nil {
				return err
			}

			detail, err := apiClient.GetProject(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}

			output := projectOutput{
				ID:          detail.Project.ID,
				Title:       detail.Project.Title,
				Description: detail.Project.Description,
				Date:        detail.Project.Date,
			}
			if detail.Project.Creator != nil {
				output.Creator = detail.Project.Creator.Name
			}
			for _, t := range detail.Tasks {
				output.Tasks = append(output.Tasks, newTaskOutput(t))
			}
			return printJSON(cmd, output)
		},
	}
	getProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	mustMarkRequired(getProjectCmd, flagProjectID)

	updateProjectCmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a project you created",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagProjectID)
			if err != nil {
				return err
			}

			// Unset flags keep their current value
			ctx := context.Background()
			params, err := apiClient.GetProjectForm(ctx, id)
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}
			if cmd.Flags().Changed(flagTitle) {
				params.Title, _ = cmd.Flags().GetString(flagTitle)
			}
			if cmd.Flags().Changed(flagDescription) {
				params.Description, _ = cmd.Flags().GetString(flagDescription)
			}

			if _, err := apiClient.UpdateProject(ctx, id, params); err != nil {
				return fmt.Errorf("error updating project: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Project %d updated successfully\n", id)
			return err
		},
	}
	updateProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	updateProjectCmd.Flags().StringP(flagTitle, "t", "", "New project title")
	updateProjectCmd.Flags().StringP(flagDescription, "d", "", "New project description")
	mustMarkRequired(updateProjectCmd, flagProjectID)

	deleteProjectCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project with its tasks and comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := getID(cmd, flagProjectID)
			if err != nil {
				return err
			}

			if _, err := apiClient.DeleteProject(context.Background(), id); err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Project %d deleted successfully\n", id)
			return err
		},
	}
	deleteProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	mustMarkRequired(deleteProjectCmd, flagProjectID)

	projectsCmd.AddCommand(listProjectsCmd, createProjectCmd, getProjectCmd, updateProjectCmd, deleteProjectCmd)
	return projectsCmd
}
