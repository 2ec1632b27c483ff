package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/middleware"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := repository.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := repository.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func replayCmd() *cobra.Command {
	var notification domain.ConfirmationNotification

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed a payment confirmation through the reconciler",
		Long: `Replay a payment network confirmation that was lost or rejected.

The notification goes through the same reconciliation as the webhook, so
replaying an already applied confirmation changes nothing.

Examples:
  dailypayctl replay --transaction-id TXN-... --amount 50.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Reconciler.ReconcileConfirmation(cmd.Context(), notification)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(result); err != nil {
				return err
			}

			if !result.Accepted {
				return fmt.Errorf("confirmation not accepted: %s", result.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&notification.TransactionID, "transaction-id", "", "transaction id issued with the daily charge")
	cmd.Flags().StringVar(&notification.Amount, "amount", "", "settled amount")
	cmd.Flags().StringVar(&notification.Status, "status", domain.NetworkStatusConfirmed, "network status")
	cmd.Flags().StringVar(&notification.Timestamp, "timestamp", "", "network settlement timestamp")
	_ = cmd.MarkFlagRequired("transaction-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func expireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Mark pending charges past their expiry as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Reconciler.ExpireStaleCharges(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "expired %d pending charges\n", n)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		identity domain.Identity
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with AUTH_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			auth, err := middleware.NewAuthenticator(cfg.Auth.JWTSecret, logger.Discard())
			if err != nil {
				return err
			}

			token, err := auth.Issue(identity, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&identity.UserID, "user", "", "user id placed in the sub claim")
	cmd.Flags().StringVar(&identity.Role, "role", "", "optional role, e.g. admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
