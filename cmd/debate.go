package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/nexusdebate/internal/agents"
	"github.com/nexusdebate/internal/audit"
	"github.com/nexusdebate/internal/debate"
	"github.com/nexusdebate/pkg/models"
)

// DebateCommand returns the debate command
func DebateCommand() *cli.Command {
	return &cli.Command{
		Name:  "debate",
		Usage: "Run an adversarial debate on a decision query",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "stream",
				Aliases: []string{"s"},
				Usage:   "Render messages as they are produced, with pacing",
			},
			&cli.BoolFlag{
				Name:  "no-audit",
				Usage: "Skip the ledger audit step",
			},
		},
		ArgsUsage: "QUERY",
		Action:    runDebate,
	}
}

func runDebate(c *cli.Context) error {
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

	opts := []debate.Option{}
	if c.Bool("stream") {
		opts = append(opts, debate.WithPacing(debate.Pacing{
			Thinking: cfg.Pacing.Thinking,
			Message:  cfg.Pacing.Message,
		}))
	}
	engine := debate.NewEngine(roster.Risk, roster.Growth, roster.Mediator, opts...)

	sessionID := uuid.NewString()
	printHeader(query, sessionID)

	var final *debate.Context
	if c.Bool("stream") {
		for ev := range engine.Stream(c.Context, query, sessionID) {
			switch ev.Kind {
			case debate.EventMessage:
				printMessage(*ev.Message)
			case debate.EventComplete:
				final = ev.Final
			case debate.EventError:
				return fmt.Errorf("debate failed: %w", ev.Err)
			}
		}
	} else {
		final, err = engine.Run(c.Context, query, sessionID)
		if err != nil {
			return fmt.Errorf("debate failed: %w", err)
		}
		for _, msg := range final.Messages {
			printMessage(msg)
		}
	}

	printSynthesis(*final.Synthesis)

	if c.Bool("no-audit") {
		return nil
	}

	recorder := audit.NewRecorder(audit.NewSimulatedLedger(cfg.Ledger.SubmitDelay))
	receipt, err := recorder.Record(c.Context, query, final.Messages, *final.Synthesis, sessionID)
	if err != nil {
		color.Red("Audit failed: %s (debate result remains valid)", err)
		return nil
	}
	printReceipt(receipt)

	return nil
}

var roleColors = map[models.Role]*color.Color{
	models.RoleRisk:     color.New(color.FgRed, color.Bold),
	models.RoleGrowth:   color.New(color.FgGreen, color.Bold),
	models.RoleMediator: color.New(color.FgCyan, color.Bold),
	models.RoleLegal:    color.New(color.FgBlue, color.Bold),
	models.RoleTax:      color.New(color.FgMagenta, color.Bold),
}

func printHeader(query, sessionID string) {
	bold := color.New(color.Bold)
	bold.Println(strings.Repeat("=", 60))
	bold.Println("NEXUS ADVERSARIAL DEBATE")
	fmt.Printf("Query:   %s\n", query)
	fmt.Printf("Session: %s\n", sessionID)
	bold.Println(strings.Repeat("=", 60))
}

func printMessage(msg models.DebateMessage) {
	c := roleColors[msg.Role]
	if c == nil {
		c = color.New(color.Bold)
	}

	marker := ""
	if msg.IsRebuttal {
		marker = " [rebuttal]"
	}

	fmt.Println()
	c.Printf("--- %s (%s)%s ---\n", msg.Agent, msg.Round, marker)
	fmt.Println(msg.Content)
}

func printSynthesis(s models.Synthesis) {
	bold := color.New(color.Bold)
	fmt.Println()
	bold.Println(strings.Repeat("=", 60))
	bold.Println("DECISION")
	fmt.Printf("Risk score:    %s\n", s.RiskScore)
	fmt.Printf("Confidence:    %d%%\n", s.Confidence)
	fmt.Printf("Cost of delay: %s\n", s.CostOfDelay)
	fmt.Printf("Approach:      %s\n", s.Approach)
	bold.Println(strings.Repeat("=", 60))
}

func printReceipt(r models.Receipt) {
	green := color.New(color.FgGreen)
	fmt.Println()
	green.Println("Audit recorded")
	fmt.Printf("Tx hash:  %s\n", r.TxHash)
	fmt.Printf("Block:    %d\n", r.BlockNumber)
	fmt.Printf("Explorer: %s\n", r.ExplorerURL)
}
