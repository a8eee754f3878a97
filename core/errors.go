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

import "errors"

// Domain validation errors. These are caller-facing and fatal for the
// request that triggered them; no partial work is performed.
var (
	// ErrEmptyQuery indicates a search was requested with an empty query string.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoFiles indicates an ingest was requested with no files.
	ErrNoFiles = errors.New("file list cannot be empty")

	// ErrEmptyFilename indicates a file was supplied without a name.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyUserID indicates an analytics event without a user.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrEmptyEntityID indicates an operation that requires an entity id.
	ErrEmptyEntityID = errors.New("entity id cannot be empty")

	// ErrInvalidEventType indicates an analytics event with an unknown type.
	ErrInvalidEventType = errors.New("invalid event type")

	// ErrInvalidAnalyticsEvent indicates an AnalyticsEvent failed validation.
	ErrInvalidAnalyticsEvent = errors.New("invalid analytics event")
)
