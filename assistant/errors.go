// Copyright 2025 Poiesic Systems
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


package assistant

import "errors"

var (
	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyInput is returned when the user input is blank.
	ErrEmptyInput = errors.New("empty input")

	// ErrProjectIDRequired is returned when an update has no project id.
	ErrProjectIDRequired = errors.New("project id required for updates")

	// ErrProjectNotFound is returned when the project id is not in the index.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoRelevantProject is returned when similarity search finds nothing.
	ErrNoRelevantProject = errors.New("no relevant project found")
)

// IsUserError reports whether err is a correctable input problem rather
// than a failure of an external service.
func IsUserError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrProjectIDRequired) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrNoRelevantProject)
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Provide input."
	case errors.Is(err, ErrProjectIDRequired):
		return "Project ID required for updates."
	case errors.Is(err, ErrProjectNotFound):
		return "Project not found."
	case errors.Is(err, ErrNoRelevantProject):
		return "No relevant project found."
	default:
		return err.Error()
	}
}
