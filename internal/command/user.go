package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillback/pointsboard/internal/sec"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userHashCommand(),
	)
	return cmd
}

func userHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Generate a password hash",
		Long: "Generates a bcrypt hash for a password, for pasting into the password_hash\n" +
			"field of a config users entry. Passwords may be provided via stdin or through\n" +
			"the interactive prompt.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			hash, err := sec.HashPassword(passwd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(hash))
			return err
		},
	}
}
