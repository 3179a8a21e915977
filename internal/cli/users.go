package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thefortaiagency/bendavis/internal/usecase"
)

var errEmptyPassword = errors.New("password must not be empty")

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management helpers",
	}

	hash := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for auth.users[].password_hash; reads stdin without an argument",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errEmptyPassword
			}

			hashed, err := usecase.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}

	cmd.AddCommand(hash)
	return cmd
}
