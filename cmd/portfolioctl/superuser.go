package main

import (
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	superuserEmail    string
	superuserPassword string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a superuser or promote an existing user",
	Long: `create-superuser creates a new active superuser, or promotes the user
with the given email. The password is optional when promoting.

Example:
  portfolioctl create-superuser --email admin@example.com --password s3cretpass`,
	Args: cobra.NoArgs,
	RunE: runCreateSuperuser,
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "superuser email (required)")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "superuser password")
	_ = createSuperuserCmd.MarkFlagRequired("email")
}

func runCreateSuperuser(cmd *cobra.Command, args []string) error {
	repos, err := app.repositories()
	if err != nil {
		return err
	}

	// 관리자 생성에는 토큰과 메일이 필요하지 않습니다
	users := usecase.NewUserUseCase(app.logger, usecase.AuthConfig{
		HashCost:          app.cfg.Auth.HashCost,
		PasswordMinLength: app.cfg.Auth.PasswordMinLength,
	}, repos.Transactor, repos.User, nil, nil)

	user, err := users.EnsureSuperuser(cmd.Context(), superuserEmail, superuserPassword)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s ready (id %s)\n", user.Email, user.ID)
	return nil
}
