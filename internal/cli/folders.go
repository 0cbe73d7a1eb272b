package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newFoldersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List, create, rename and delete folders",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the top-level folders of the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				folders, err := a.lib.ListFolders(root)
				if err != nil {
					return err
				}
				for _, name := range folders {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder, including missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				folder, err := folderPath(root, args[0])
				if err != nil {
					return err
				}
				return a.lib.CreateFolder(folder)
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename or move a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				return a.lib.RenameFolder(root, args[0], args[1])
			})
		},
	}

	var moveContents bool
	deleteCmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a folder",
		Long: `Delete a folder and everything in it. With --move-contents the notes in the
folder are first moved to the root, renamed on collision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				folder, err := folderPath(root, args[0])
				if err != nil {
					return err
				}
				if moveContents {
					return a.lib.DeleteFolderMoveContents(folder, root)
				}
				return a.lib.DeleteFolderRecursive(folder)
			})
		},
	}
	deleteCmd.Flags().BoolVar(&moveContents, "move-contents", false, "move notes to the root before deleting")

	cmd.AddCommand(listCmd, createCmd, renameCmd, deleteCmd)
	return cmd
}

// folderPath joins a folder name to root. Names that resolve to the root
// itself or leave it are rejected.
func folderPath(root, name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if name == "" || rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid folder name %q", name)
	}
	return filepath.Join(root, rel), nil
}
