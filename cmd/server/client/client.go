// Package client provides commands that exercise the progression gRPC service
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the progression service",
	Long:  `Client commands let you drive a running server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Session commands
	ClientCmd.AddCommand(startSessionCmd)
	ClientCmd.AddCommand(getSessionCmd)
	ClientCmd.AddCommand(endSessionCmd)
	ClientCmd.AddCommand(watchSessionCmd)

	// Progression commands
	ClientCmd.AddCommand(grantPointsCmd)
	ClientCmd.AddCommand(unlockSkillCmd)
	ClientCmd.AddCommand(listSkillsCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createProgressionClient creates a progression service client
func createProgressionClient() (skilltreev1alpha1.ProgressionServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	client := skilltreev1alpha1.NewProgressionServiceClient(conn)
	return client, cleanup, nil
}
