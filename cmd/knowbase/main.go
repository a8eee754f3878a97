// Copyright 2025 Sellsense Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sellsense/knowbase"
	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/extract"
	"github.com/sellsense/knowbase/training"
	"github.com/sellsense/knowbase/vectorindex"
)

func main() {
	// A missing .env is fine; flags and real env still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "knowbase",
		Usage: "Product knowledge base and sales training generator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data directory",
				Value:   "./knowbase-data",
				EnvVars: []string{"KNOWBASE_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				EnvVars: []string{"KNOWBASE_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "ai-token",
				Usage:   "Service API token",
				EnvVars: []string{"KNOWBASE_AI_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "qdrant-url",
				Usage:   "Qdrant base URL (omit to use the in-process index)",
				EnvVars: []string{"KNOWBASE_QDRANT_URL"},
			},
			&cli.StringFlag{
				Name:    "qdrant-api-key",
				Usage:   "Qdrant API key",
				EnvVars: []string{"KNOWBASE_QDRANT_API_KEY"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest files into the knowledge base",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "entity",
						Aliases: []string{"e"},
						Usage:   "Entity (product) ID to tag the files with",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the knowledge base",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.StringFlag{
						Name:    "entity",
						Aliases: []string{"e"},
						Usage:   "Restrict results to one entity (product) ID",
					},
				},
			},
			{
				Name:   "generate",
				Usage:  "Generate training materials for an entity",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "entity",
						Aliases:  []string{"e"},
						Usage:    "Entity (product) ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "product",
						Usage: "Product name (defaults to the entity ID)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Product category",
					},
				},
			},
			{
				Name:   "plan",
				Usage:  "Generate a personalized training plan for a user",
				Action: planCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "focus",
						Usage: "Requested focus area (repeatable)",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show knowledge base statistics",
				Action: statsCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete all stored knowledge, materials, and analytics",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openKnowledgeBase(c *cli.Context) (*knowbase.KnowledgeBase, error) {
	var configOpts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if token := c.String("ai-token"); token != "" {
		configOpts = append(configOpts, ai.WithToken(token))
	}

	opts := []knowbase.OpenOption{
		knowbase.WithAIConfig(ai.NewConfig(configOpts...)),
	}
	if url := c.String("qdrant-url"); url != "" {
		opts = append(opts, knowbase.WithQdrant(vectorindex.QdrantConfig{
			URL:    url,
			APIKey: c.String("qdrant-api-key"),
		}))
	}
	return knowbase.Open(c.String("data"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	files := make([]extract.File, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, extract.File{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	results, err := kb.Store().Ingest(context.Background(), c.String("entity"), files)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Success {
			fmt.Printf("ok   %s (%d chunks)\n", result.Filename, result.ChunksCreated)
		} else {
			failed++
			fmt.Printf("fail %s: %s\n", result.Filename, result.Error)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	hits, err := kb.Store().SearchEntity(context.Background(), query, c.String("entity"), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, hit := range hits {
		fmt.Printf("%d. [%.3f] %s (%s)\n", i+1, hit.Similarity, hit.Metadata.Filename, hit.Metadata.ContentType)
		fmt.Printf("   %s\n", hit.Text)
	}
	return nil
}

func generateCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	ctx := context.Background()
	entityID := c.String("entity")

	// Feed whatever knowledge we have for the entity into generation.
	docs, err := kb.Store().GetKnowledge(ctx, entityID)
	if err != nil {
		return err
	}
	var knowledgeText strings.Builder
	for _, doc := range docs {
		knowledgeText.WriteString(doc.RawText)
		knowledgeText.WriteString("\n\n")
	}

	productName := c.String("product")
	if productName == "" {
		productName = entityID
	}

	result, err := kb.Synthesizer().Generate(ctx, training.ProductAttributes{
		Name:     productName,
		Category: c.String("category"),
	}, knowledgeText.String())
	if err != nil {
		return err
	}

	if err := kb.Store().SetTrainingMaterials(ctx, entityID, result.Materials); err != nil {
		return fmt.Errorf("storing materials: %w", err)
	}

	m := result.Materials
	fmt.Printf("generated materials for %s:\n", entityID)
	fmt.Printf("  quizzes: %d, scenarios: %d, objection handlers: %d\n",
		len(m.Quizzes), len(m.Scenarios), len(m.ObjectionHandlers))
	fmt.Printf("  comparisons: %d, talking points: %d, role plays: %d\n",
		len(m.Comparisons), len(m.TalkingPoints), len(m.RolePlayScripts))
	if len(result.FallbackCategories) > 0 {
		fmt.Printf("  fallbacks used: %s\n", strings.Join(result.FallbackCategories, ", "))
	}
	return nil
}

func planCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	ctx := context.Background()
	userID := c.String("user")

	history, err := kb.Store().AnalyticsByUser(ctx, userID, 50)
	if err != nil {
		return err
	}

	plan, err := kb.Synthesizer().GeneratePersonalizedPlan(ctx, userID, history, training.Preferences{
		FocusAreas: c.StringSlice("focus"),
	})
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func statsCommand(c *cli.Context) error {
	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	stats, err := kb.Store().Stats(context.Background())
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func clearCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		fmt.Print("This deletes all stored knowledge, materials, and analytics. Type 'yes' to continue: ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
			fmt.Println("aborted")
			return nil
		}
	}

	kb, err := openKnowledgeBase(c)
	if err != nil {
		return err
	}
	defer kb.Close()

	if err := kb.Store().ClearAll(context.Background()); err != nil {
		return err
	}
	fmt.Println("cleared")
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
