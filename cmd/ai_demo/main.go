// README: Prints the advisory prompt and the generated text for the default trip.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tourcalc/internal/ai"
	"tourcalc/internal/config"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
)

func main() {
	kind := flag.String("kind", "analysis", "proposal or analysis")
	participants := flag.Int("participants", 8, "participant count")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout+10*time.Second)
	defer cancel()

	gen, err := ai.New(ctx, ai.Settings{
		Provider:     cfg.AI.Provider,
		GeminiAPIKey: cfg.AI.GeminiKey,
		GeminiModel:  cfg.AI.GeminiModel,
		OpenAIAPIKey: cfg.AI.OpenAIKey,
		OpenAIModel:  cfg.AI.OpenAIModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	if c, ok := gen.(interface{ Close() }); ok {
		defer c.Close()
	}

	p := trip.DefaultParams()
	p.ParticipantCount = *participants
	b := pricing.Calculate(p)

	var prompt string
	switch *kind {
	case "proposal":
		prompt = ai.ProposalPrompt(p, b)
	case "analysis":
		prompt = ai.AnalysisPrompt(b)
	default:
		log.Fatalf("unknown kind %q", *kind)
	}
	fmt.Printf("Prompt:\n%s\n\n", prompt)

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		log.Fatalf("Error generating text: %v", err)
	}
	fmt.Printf("Reply:\n%s\n", text)
}
