package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// ParsedVersion returns the build version as a semantic version
func ParsedVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", version, err)
	}
	return v, nil
}

func newVersionCmd() *cobra.Command {
	var constraint string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Long: `Print the version. With --check the version is tested against a
constraint such as ">= 0.1, < 1" and the command fails when it does not match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := ParsedVersion()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if constraint == "" {
				fmt.Fprintf(out, "%s version %s\n", cmd.Root().Name(), v)
				return nil
			}

			c, err := semver.NewConstraint(constraint)
			if err != nil {
				return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
			}
			if ok, errs := c.Validate(v); !ok {
				for _, e := range errs {
					fmt.Fprintln(out, e)
				}
				return fmt.Errorf("version %s does not satisfy %s", v, constraint)
			}

			fmt.Fprintf(out, "version %s satisfies %s\n", v, constraint)
			return nil
		},
	}
	cmd.Flags().StringVar(&constraint, "check", "", "semantic version constraint to test against")

	return cmd
}
