package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"landingwaitlist/internal/adapters/auth"
)

var hashCost int

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 0, "bcrypt cost (default bcrypt.DefaultCost)")
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long: `Hash an admin password with bcrypt. The password is read from the first
argument, or from stdin when no argument is given.

Examples:
  waitlistd hash-password 's3cret'
  echo 's3cret' | waitlistd hash-password`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassword,
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := auth.NewBcryptHasher(hashCost).Hash(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
