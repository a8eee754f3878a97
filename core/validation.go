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


package core

import (
	"fmt"
	"strings"
)

// ValidateSearchQuery validates a search query string.
//
// Validation rules:
//   - query must not be empty or whitespace-only
func ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// ValidateAnalyticsEvent validates an AnalyticsEvent according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - EventType must be one of the known types
//
// NOT validated (populated by the store):
//   - Timestamp (zero value is replaced at append time)
func ValidateAnalyticsEvent(event *AnalyticsEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidAnalyticsEvent)
	}

	if event.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnalyticsEvent, ErrEmptyUserID)
	}

	if !ValidEventType(event.EventType) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidAnalyticsEvent, ErrInvalidEventType, event.EventType)
	}

	return nil
}
