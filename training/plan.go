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
	"strings"
	"time"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

// Preferences guide plan generation.
type Preferences struct {
	FocusAreas    []string `json:"focusAreas,omitempty"`
	WeeklyTimeMin int      `json:"weeklyTimeMinutes,omitempty"`
}

// GeneratePersonalizedPlan builds a development plan for a user from their
// recent activity. Generation failures degrade to a fixed default plan; the
// call fails only on invalid input. When a recorder is configured, the plan
// is persisted as a training_plan analytics event.
func (s *Synthesizer) GeneratePersonalizedPlan(ctx context.Context, userID string, history []*core.AnalyticsEvent, prefs Preferences) (*core.TrainingPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.ErrEmptyUserID
	}

	plan := s.generatePlan(ctx, userID, history, prefs)
	plan.UserID = userID
	plan.CreatedAt = time.Now().UTC()

	if s.recorder != nil {
		event := &core.AnalyticsEvent{
			UserID:    userID,
			EventType: core.EventTrainingPlan,
			Plan:      plan,
			Timestamp: plan.CreatedAt,
		}
		if err := s.recorder.RecordAnalytics(ctx, event); err != nil {
			s.logger.Error("error recording training plan", "err", err)
		}
	}
	return plan, nil
}

func (s *Synthesizer) generatePlan(ctx context.Context, userID string, history []*core.AnalyticsEvent, prefs Preferences) *core.TrainingPlan {
	userPrompt := fmt.Sprintf("%s\n\n%s", planPrompt, summarizeHistory(history, prefs))

	response, err := s.completer.Complete(ctx, planSystemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("plan generation failed", "userId", userID, "error", err)
		return defaultPlan(userID)
	}

	var parsed struct {
		Goals      []string `json:"goals"`
		Milestones []string `json:"milestones"`
		FocusAreas []string `json:"focusAreas"`
		Summary    string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(ai.CleanJSONResponse(response)), &parsed); err != nil {
		s.logger.Warn("plan response unparsable", "userId", userID, "error", err)
		return defaultPlan(userID)
	}
	if len(parsed.Goals) == 0 {
		s.logger.Warn("plan response empty", "userId", userID)
		return defaultPlan(userID)
	}

	return &core.TrainingPlan{
		Goals:      parsed.Goals,
		Milestones: parsed.Milestones,
		FocusAreas: parsed.FocusAreas,
		Summary:    parsed.Summary,
	}
}

// summarizeHistory condenses recent events into prompt context: activity
// counts, average scenario score, and the last few interactions.
func summarizeHistory(history []*core.AnalyticsEvent, prefs Preferences) string {
	var b strings.Builder

	counts := map[core.EventType]int{}
	var scoreSum float64
	var scored int
	for _, event := range history {
		counts[event.EventType]++
		if event.Score > 0 {
			scoreSum += event.Score
			scored++
		}
	}

	b.WriteString("Representative activity:\n")
	fmt.Fprintf(&b, "Chat interactions: %d\n", counts[core.EventChatInteraction])
	fmt.Fprintf(&b, "Training sessions: %d\n", counts[core.EventTrainingSession])
	if scored > 0 {
		fmt.Fprintf(&b, "Average session score: %.1f\n", scoreSum/float64(scored))
	}

	const recentLimit = 5
	recent := history
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	if len(recent) > 0 {
		b.WriteString("Recent activity:\n")
		for _, event := range recent {
			switch {
			case event.Scenario != "":
				fmt.Fprintf(&b, "- %s: %s (score %.1f)\n", event.EventType, event.Scenario, event.Score)
			case event.Message != "":
				fmt.Fprintf(&b, "- %s: %s\n", event.EventType, event.Message)
			default:
				fmt.Fprintf(&b, "- %s\n", event.EventType)
			}
		}
	}

	if len(prefs.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Requested focus areas: %s\n", strings.Join(prefs.FocusAreas, "; "))
	}
	if prefs.WeeklyTimeMin > 0 {
		fmt.Fprintf(&b, "Available training time: %d minutes per week\n", prefs.WeeklyTimeMin)
	}
	return b.String()
}
