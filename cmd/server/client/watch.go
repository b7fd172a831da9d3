package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
)

var watchSessionCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream a session's changes",
	Long:  `Print each change to a session until it ends or you press Ctrl+C. The --timeout flag does not apply.`,
	RunE:  runWatchSession,
}

func init() {
	watchSessionCmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = watchSessionCmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
}

func runWatchSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stream, err := client.WatchSession(ctx, &skilltreev1alpha1.WatchSessionRequest{
		SessionId: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to watch session: %w", err)
	}

	if _, err := stream.Header(); err != nil {
		return fmt.Errorf("failed to watch session: %w", err)
	}
	fmt.Printf("Watching %s\n", sessionID)

	for {
		event, err := stream.Recv()
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("watch ended: %w", err)
		}
		printEvent(os.Stdout, event)
	}
}
