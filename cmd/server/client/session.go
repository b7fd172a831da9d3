package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
)

var (
	playerID      string
	sessionID     string
	startingPoint int32
)

var startSessionCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Start a progression session",
	Long:  `Start a new progression session for a player with a fresh skill point balance.`,
	RunE:  runStartSession,
}

var getSessionCmd = &cobra.Command{
	Use:   "get-session",
	Short: "Get a progression session",
	RunE:  runGetSession,
}

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "End a progression session",
	Long:  `End a progression session. Watchers receive a session.ended event.`,
	RunE:  runEndSession,
}

func init() {
	startSessionCmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	startSessionCmd.Flags().Int32Var(&startingPoint, "skill-points", 0, "Starting skill points (server default when unset)")
	_ = startSessionCmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{getSessionCmd, endSessionCmd} {
		cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
		_ = cmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
	}
}

func runStartSession(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req := &skilltreev1alpha1.StartSessionRequest{
		PlayerId: playerID,
	}
	if cmd.Flags().Changed("skill-points") {
		req.SkillPoints = &startingPoint
	}

	resp, err := client.StartSession(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	fmt.Printf("Session started\n\n")
	printSession(os.Stdout, resp.Session)
	return nil
}

func runGetSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetSession(ctx, &skilltreev1alpha1.GetSessionRequest{
		SessionId: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	printSession(os.Stdout, resp.Session)
	return nil
}

func runEndSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.EndSession(ctx, &skilltreev1alpha1.EndSessionRequest{
		SessionId: sessionID,
	}); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	fmt.Printf("Session %s ended\n", sessionID)
	return nil
}
