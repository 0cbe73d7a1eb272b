package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newNotesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List, save, rename and delete notes",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every note below the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				list, err := a.lib.ListNotes(root)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(list)
				}
				for _, note := range list {
					fmt.Fprintln(out, note.Path())
				}
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print notes with content as JSON")

	var content string
	saveCmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Create or overwrite a note",
		Long:  `Create or overwrite a note. The content comes from --content or, when the flag is absent, from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				text := content
				if !cmd.Flags().Changed("content") {
					data, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("failed to read note content: %w", err)
					}
					text = string(data)
				}
				return a.lib.SaveNote(root, args[0], text)
			})
		},
	}
	saveCmd.Flags().StringVar(&content, "content", "", "note content")

	deleteCmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				return a.lib.DeleteNote(root, args[0])
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename or move a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				return a.lib.RenameNote(root, args[0], args[1])
			})
		},
	}

	cmd.AddCommand(listCmd, saveCmd, deleteCmd, renameCmd)
	return cmd
}
