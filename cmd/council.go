package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/nexusdebate/internal/agents"
	"github.com/nexusdebate/internal/debate"
)

// CouncilCommand returns the council command
func CouncilCommand() *cli.Command {
	return &cli.Command{
		Name:      "council",
		Usage:     "Convene the three-chair council on a decision query",
		ArgsUsage: "QUERY",
		Action:    runCouncil,
	}
}

func runCouncil(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: decision query")
	}
	query := strings.Join(c.Args().Slice(), " ")

	cfg, err := loadValidConfig(c)
	if err != nil {
		return err
	}

	roster, err := agents.BuildRoster(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("failed to build agents: %w", err)
	}

	council := debate.NewCouncil(roster.Legal, roster.Tax, roster.GrowthChair)

	sessionID := uuid.NewString()
	printHeader(query, sessionID)

	result, err := council.Deliberate(c.Context, query, sessionID)
	if err != nil {
		return fmt.Errorf("council deliberation failed: %w", err)
	}

	for _, msg := range result.Messages {
		printMessage(msg)
	}

	bold := color.New(color.Bold)
	fmt.Println()
	bold.Println(strings.Repeat("=", 60))
	fmt.Println(result.Decision.Decision)
	fmt.Println()

	if result.Decision.Consensus {
		color.Green("Consensus reached")
	} else {
		color.Yellow("No consensus")
	}
	for _, dissent := range result.Decision.Dissents {
		fmt.Printf("  - %s\n", dissent)
	}

	fmt.Printf("\nRisk assessment: %s\n", result.Decision.RiskAssessment)
	fmt.Printf("Audit hash:      %s\n", result.AuditHash)

	return nil
}
