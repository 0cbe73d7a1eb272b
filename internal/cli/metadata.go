package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/harun/notiz/pkg/metadata"
	"github.com/spf13/cobra"
)

// Output formats for metadata show
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func newMetadataCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Show, check and edit the notes metadata file",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the metadata, migrating the legacy file if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var encodeFn func(metadata.AppMetadata) ([]byte, error)
			switch strings.ToLower(format) {
			case formatJSON:
				encodeFn = metadata.EncodeJSON
			case formatYAML:
				encodeFn = metadata.EncodeYAML
			default:
				return fmt.Errorf("unsupported format %q (must be: json, yaml)", format)
			}

			return opts.run(cmd, func(a *app, root string) error {
				out, err := encodeFn(a.lib.ReadMetadata(root))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			})
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, yaml)")

	saveCmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Replace the metadata with a JSON document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read metadata document: %w", err)
			}

			issues, err := metadata.Validate(data)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				return fmt.Errorf("invalid metadata document: %s", strings.Join(issues, "; "))
			}

			md, err := metadata.DecodeJSON(data)
			if err != nil {
				return err
			}

			return opts.run(cmd, func(a *app, root string) error {
				return a.lib.SaveMetadata(root, md)
			})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the metadata file against its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				current, _ := metadata.Paths(root)
				out := cmd.OutOrStdout()

				data, err := os.ReadFile(current)
				if errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(out, "%s: not present, defaults apply\n", current)
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to read metadata: %w", err)
				}

				issues, err := metadata.Validate(data)
				if err != nil {
					return err
				}
				if len(issues) == 0 {
					fmt.Fprintf(out, "%s: ok\n", current)
					return nil
				}

				for _, issue := range issues {
					fmt.Fprintf(out, "%s: %s\n", current, issue)
				}
				return fmt.Errorf("metadata has %d schema issue(s)", len(issues))
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set PATH JSON",
		Short: "Set one field of the metadata",
		Long: `Set one field of the metadata to a JSON value and save it.

PATH uses dot syntax, for example:
  notiz metadata set settings.theme '"dark"'
  notiz metadata set pinnedNotes.-1 '"todo.md"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(a *app, root string) error {
				md, err := metadata.SetField(a.lib.ReadMetadata(root), args[0], args[1])
				if err != nil {
					return err
				}
				return a.lib.SaveMetadata(root, md)
			})
		},
	}

	cmd.AddCommand(showCmd, saveCmd, checkCmd, setCmd)
	return cmd
}
