package cli

import (
	"errors"
	"fmt"

	"rental-service/internal/repository"
	"rental-service/pkg/database"
	"rental-service/pkg/jwtutil"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewTokenCommand creates the token command, an operator tool that mints a
// bearer token for an existing user
func NewTokenCommand() *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user-id is required")
			}

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := openMigrated(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			user, err := repository.NewUserRepository(db.WithContext(cmd.Context())).FindByID(userID)
			if err != nil {
				return fmt.Errorf("user %d: %w", userID, err)
			}

			token, err := jwtutil.NewJWTUtil(&cfg.JWT).GenerateToken(user.ID, user.Username, string(user.Role))
			if err != nil {
				return err
			}
			log.Info("Token issued", zap.Uint("user_id", user.ID))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().UintVar(&userID, "user-id", 0, "id of the user the token is issued for")
	return cmd
}
