// Command planner generates a trip itinerary from the terminal using the same
// prompt, client and parser as the HTTP service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"travelwise/internal/config"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
	"travelwise/internal/services"
	"travelwise/pkg/aiclient"
	"travelwise/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "planner",
		Usage: "generate a day-by-day trip itinerary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Required: true, Usage: "where to go"},
			&cli.StringFlag{Name: "start", Usage: "start date, e.g. 10 Mar 2025"},
			&cli.StringFlag{Name: "end", Usage: "end date, e.g. 14 Mar 2025"},
			&cli.StringFlag{Name: "budget", Usage: "total budget"},
			&cli.IntFlag{Name: "people", Usage: "number of travellers"},
			&cli.StringFlag{Name: "notes", Usage: "preferences passed to the model"},
			&cli.StringFlag{Name: "style", Usage: "structured or free_text (defaults to PROMPT_STYLE)"},
			&cli.BoolFlag{Name: "prompt-only", Usage: "print the prompt and exit"},
			&cli.BoolFlag{Name: "raw", Usage: "print the model text before the parsed plan"},
		},
		Action: run,
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	log := logger.New(cfg.LogLevel, "text")
	defer func() { _ = log.Sync() }()

	trip := request_models.TripRequest{
		Destination: c.String("destination"),
		StartDate:   c.String("start"),
		EndDate:     c.String("end"),
		PartySize:   c.Int("people"),
		Budget:      c.String("budget"),
		Notes:       c.String("notes"),
	}.Normalized()
	if err := services.ValidateTripRequest(trip); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	style := services.ParsePromptStyle(cfg.Generation.PromptStyle)
	if s := c.String("style"); s != "" {
		style = services.ParsePromptStyle(s)
	}
	prompt := services.NewPromptBuilder().Build(trip, style)
	if c.Bool("prompt-only") {
		fmt.Fprintln(c.App.Writer, prompt)
		return nil
	}

	client, err := aiclient.NewGenerationClient(cfg.AIClientConfig(), log)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer client.Close()

	log.Info("generating itinerary",
		zap.String("destination", trip.Destination),
		zap.String("provider", client.Provider()),
		zap.String("style", string(style)))

	var outcome aiclient.Outcome
	select {
	case outcome = <-client.GenerateAsync(c.Context, prompt):
	case <-c.Context.Done():
		return cli.Exit("cancelled", 130)
	}
	if !outcome.OK() {
		return cli.Exit(outcome.Message(), 1)
	}

	if c.Bool("raw") {
		fmt.Fprintln(c.App.Writer, outcome.Text)
		fmt.Fprintln(c.App.Writer)
	}

	p := cfg.Parser
	parser := services.NewItineraryParser(services.ParserOptions{
		MinProseLength:      p.MinProseLength,
		BulletPrefixes:      p.BulletPrefixes,
		TitleMaxLength:      p.TitleMaxLength,
		ProseTitleMaxLength: p.ProseTitleMaxLength,
		MaxDays:             p.MaxDays,
		MergeSynthetic:      p.MergeSynthetic,
	}, nil)

	result := parser.Parse(outcome.Text, trip)
	if len(result.Days) == 0 {
		return cli.Exit("Could not generate a detailed plan from the response.", 1)
	}
	printItinerary(c.App.Writer, trip.Destination, result)
	return nil
}

func printItinerary(w io.Writer, destination string, result services.ParseResult) {
	fmt.Fprintf(w, "%s (%s)\n", destination, result.Tier)
	for _, day := range result.Days {
		fmt.Fprintf(w, "\nDay %d  %s\n", day.DayNumber, day.DateFull)
		for _, a := range day.Activities {
			printActivity(w, a)
		}
	}
}

func printActivity(w io.Writer, a response_models.Activity) {
	when := a.Time
	if when == "" {
		when = "-"
	}
	fmt.Fprintf(w, "  %-10s [%s] %s\n", when, a.Type, a.Title)
	if a.Description != "" && a.Description != a.Title {
		fmt.Fprintf(w, "  %-10s %s\n", "", a.Description)
	}
	if a.Hotel != nil {
		fmt.Fprintf(w, "  %-10s hotel: %s\n", "", a.Hotel.Name)
	}
}
