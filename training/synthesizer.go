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


package training

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

const (
	defaultPoolSize        = 6
	defaultKnowledgeWindow = 6000
)

// ProductAttributes describes the product the materials are generated for.
type ProductAttributes struct {
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	Features       []string `json:"features,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	PriceRange     string   `json:"priceRange,omitempty"`
}

// GenerateResult reports a synthesis run. The material set is always
// complete; FallbackCategories names the categories that used the
// hand-authored fallback items instead of generated ones.
type GenerateResult struct {
	Success            bool                      `json:"success"`
	Materials          *core.TrainingMaterialSet `json:"materials"`
	GeneratedAt        time.Time                 `json:"generatedAt"`
	FallbackCategories []string                  `json:"fallbackCategories,omitempty"`
}

// AnalyticsRecorder persists generated plans as analytics events.
// *knowledge.Store satisfies it.
type AnalyticsRecorder interface {
	RecordAnalytics(ctx context.Context, event *core.AnalyticsEvent) error
}

// Synthesizer generates sales-training materials from product knowledge.
type Synthesizer struct {
	completer       ai.Completer
	recorder        AnalyticsRecorder
	pool            *ants.Pool
	knowledgeWindow int
	logger          *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithPoolSize sets the worker pool size for concurrent category
// generation. Default is 6, one worker per category.
func WithPoolSize(size int) Option {
	return func(s *Synthesizer) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithKnowledgeWindow bounds how many leading characters of knowledge text
// are included in each generation prompt. Default is 6000.
func WithKnowledgeWindow(chars int) Option {
	return func(s *Synthesizer) error {
		if chars < 1 {
			return fmt.Errorf("knowledge window must be positive, got %d", chars)
		}
		s.knowledgeWindow = chars
		return nil
	}
}

// WithAnalyticsRecorder sets the sink personalized plans are persisted to.
// Without one, plans are returned but not recorded.
func WithAnalyticsRecorder(recorder AnalyticsRecorder) Option {
	return func(s *Synthesizer) error {
		s.recorder = recorder
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a training material synthesizer.
func NewSynthesizer(completer ai.Completer, opts ...Option) (*Synthesizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{
		completer:       completer,
		pool:            pool,
		knowledgeWindow: defaultKnowledgeWindow,
		logger:          slog.Default().With("component", "training"),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// Generate produces all six training material categories for a product.
// Categories run concurrently; each one resolves independently to either
// generated items or its fallback set, so the call as a whole never fails
// once the inputs are valid: Success reports that a complete material set
// was produced, and FallbackCategories names any degraded categories.
func (s *Synthesizer) Generate(ctx context.Context, product ProductAttributes, knowledgeText string) (*GenerateResult, error) {
	if strings.TrimSpace(product.Name) == "" && strings.TrimSpace(knowledgeText) == "" {
		return nil, ErrEmptyProduct
	}

	productName := strings.TrimSpace(product.Name)
	if productName == "" {
		productName = "the product"
	}
	promptContext := s.buildContext(product, knowledgeText)

	materials := &core.TrainingMaterialSet{GeneratedAt: time.Now().UTC()}
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		fallbacks []string
	)

	run := func(category string, generate func() bool) {
		wg.Add(1)
		job := func() {
			defer wg.Done()
			if !generate() {
				mu.Lock()
				fallbacks = append(fallbacks, category)
				mu.Unlock()
			}
		}
		// A saturated pool falls back to inline execution rather than
		// dropping the category.
		if err := s.pool.Submit(job); err != nil {
			job()
		}
	}

	run(categoryQuizzes, func() bool {
		items, ok := generateItems[core.QuizItem](ctx, s, categoryQuizzes, quizzesPrompt, promptContext)
		if !ok {
			items = fallbackQuizzes(productName)
		}
		materials.Quizzes = items
		return ok
	})
	run(categoryScenarios, func() bool {
		items, ok := generateItems[core.Scenario](ctx, s, categoryScenarios, scenariosPrompt, promptContext)
		if !ok {
			items = fallbackScenarios(productName)
		}
		materials.Scenarios = items
		return ok
	})
	run(categoryObjections, func() bool {
		items, ok := generateItems[core.ObjectionHandler](ctx, s, categoryObjections, objectionsPrompt, promptContext)
		if !ok {
			items = fallbackObjectionHandlers(productName)
		}
		materials.ObjectionHandlers = items
		return ok
	})
	run(categoryComparisons, func() bool {
		items, ok := generateItems[core.Comparison](ctx, s, categoryComparisons, comparisonsPrompt, promptContext)
		if !ok {
			items = fallbackComparisons(productName)
		}
		materials.Comparisons = items
		return ok
	})
	run(categoryTalkingPoints, func() bool {
		items, ok := generateItems[core.TalkingPoint](ctx, s, categoryTalkingPoints, talkingPointsPrompt, promptContext)
		if !ok {
			items = fallbackTalkingPoints(productName)
		}
		materials.TalkingPoints = items
		return ok
	})
	run(categoryRolePlays, func() bool {
		items, ok := generateItems[core.RolePlayScript](ctx, s, categoryRolePlays, rolePlaysPrompt, promptContext)
		if !ok {
			items = fallbackRolePlayScripts(productName)
		}
		materials.RolePlayScripts = items
		return ok
	})

	wg.Wait()

	return &GenerateResult{
		Success:            true,
		Materials:          materials,
		GeneratedAt:        materials.GeneratedAt,
		FallbackCategories: fallbacks,
	}, nil
}

// generateItems runs one category's prompt-and-parse call.
// Returns ok=false on service failure, unparsable output, or an empty item
// list; the caller substitutes the category fallback.
func generateItems[T any](ctx context.Context, s *Synthesizer, category, prompt, knowledgeContext string) ([]T, bool) {
	userPrompt := fmt.Sprintf("%s\n\n%s", prompt, knowledgeContext)

	response, err := s.completer.Complete(ctx, trainingSystemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("category generation failed", "category", category, "error", err)
		return nil, false
	}

	var parsed struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal([]byte(ai.CleanJSONResponse(response)), &parsed); err != nil {
		s.logger.Warn("category response unparsable", "category", category, "error", err)
		return nil, false
	}
	if len(parsed.Items) == 0 {
		s.logger.Warn("category response empty", "category", category)
		return nil, false
	}
	return parsed.Items, true
}

// buildContext assembles the prompt context from product attributes and the
// bounded knowledge window.
func (s *Synthesizer) buildContext(product ProductAttributes, knowledgeText string) string {
	var b strings.Builder

	b.WriteString("Product information:\n")
	if product.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", product.Name)
	}
	if product.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", product.Category)
	}
	if len(product.Features) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(product.Features, "; "))
	}
	if product.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", product.TargetAudience)
	}
	if product.PriceRange != "" {
		fmt.Fprintf(&b, "Price range: %s\n", product.PriceRange)
	}

	knowledgeText = strings.TrimSpace(knowledgeText)
	if knowledgeText != "" {
		if len(knowledgeText) > s.knowledgeWindow {
			knowledgeText = knowledgeText[:s.knowledgeWindow]
		}
		b.WriteString("\nKnowledge base excerpts:\n")
		b.WriteString(knowledgeText)
	}
	return b.String()
}

// Release releases the worker pool. The synthesizer should not be used
// after calling Release.
func (s *Synthesizer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
