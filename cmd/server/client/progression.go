package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
)

var (
	grantCount int32
	skillID    string
	tier       int32
)

var grantPointsCmd = &cobra.Command{
	Use:   "grant-points",
	Short: "Grant skill points to a session",
	RunE:  runGrantPoints,
}

var unlockSkillCmd = &cobra.Command{
	Use:   "unlock-skill",
	Short: "Unlock a skill for a session",
	Long: `Purchase a skill from the catalog. A rejected purchase is reported with
its status (purchased, prerequisites_not_met or cannot_afford).`,
	RunE: runUnlockSkill,
}

var listSkillsCmd = &cobra.Command{
	Use:   "list-skills",
	Short: "List catalog skills",
	Long:  `List catalog skills, optionally for one tier and with purchase status for a session.`,
	RunE:  runListSkills,
}

func init() {
	grantPointsCmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	grantPointsCmd.Flags().Int32Var(&grantCount, "count", 1, "Number of points to grant")
	_ = grantPointsCmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init

	unlockSkillCmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	unlockSkillCmd.Flags().StringVar(&skillID, "skill-id", "", "Skill ID (required)")
	_ = unlockSkillCmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
	_ = unlockSkillCmd.MarkFlagRequired("skill-id")   // nolint:errcheck // safe to ignore in init

	listSkillsCmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID for purchase status")
	listSkillsCmd.Flags().Int32Var(&tier, "tier", 0, "Tier to list (0 lists all)")
}

func runGrantPoints(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GrantSkillPoints(ctx, &skilltreev1alpha1.GrantSkillPointsRequest{
		SessionId: sessionID,
		Count:     grantCount,
	})
	if err != nil {
		return fmt.Errorf("failed to grant skill points: %w", err)
	}

	fmt.Printf("Granted %d skill point(s), balance is now %d\n", grantCount, resp.Session.SkillPoints)
	return nil
}

func runUnlockSkill(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.UnlockSkill(ctx, &skilltreev1alpha1.UnlockSkillRequest{
		SessionId: sessionID,
		SkillId:   skillID,
	})
	if err != nil {
		return fmt.Errorf("failed to unlock skill: %w", err)
	}

	if resp.Unlocked {
		fmt.Printf("Unlocked %s\n\n", skillID)
	} else {
		fmt.Printf("Could not unlock %s: %s\n\n", skillID, resp.Status)
	}
	printSession(os.Stdout, resp.Session)
	return nil
}

func runListSkills(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createProgressionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListSkills(ctx, &skilltreev1alpha1.ListSkillsRequest{
		Tier:      tier,
		SessionId: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	fmt.Printf("Found %d skills:\n\n", len(resp.Skills))
	for _, skill := range resp.Skills {
		printSkill(os.Stdout, skill)
	}
	return nil
}
