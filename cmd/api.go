package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nexusdebate/internal/agents"
	"github.com/nexusdebate/internal/api"
	"github.com/nexusdebate/internal/audit"
	"github.com/nexusdebate/internal/debate"
	"github.com/nexusdebate/internal/session"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the NexusDebate API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides config)",
			},
		},
		Action: runAPI,
	}
}

func runAPI(c *cli.Context) error {
	cfg, err := loadValidConfig(c)
	if err != nil {
		return err
	}

	roster, err := agents.BuildRoster(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("failed to build agents: %w", err)
	}

	engine := debate.NewEngine(roster.Risk, roster.Growth, roster.Mediator,
		debate.WithPacing(debate.Pacing{
			Thinking: cfg.Pacing.Thinking,
			Message:  cfg.Pacing.Message,
		}))

	recorder := audit.NewRecorder(audit.NewSimulatedLedger(cfg.Ledger.SubmitDelay))
	store := session.NewStore(cfg.Session.TTL)

	port := cfg.Server.Port
	if c.Int("port") != 0 {
		port = c.Int("port")
	}

	fmt.Printf("Starting NexusDebate API server on port %d...\n", port)

	server := api.NewServer(port, cfg.Server.RateLimit, engine, recorder, store)
	return server.Start()
}
