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


package core

import (
	"fmt"
	"strings"
)

// ValidateSourceRow validates a SourceRow according to domain rules.
//
// Every field is required. Values are opaque strings; only presence is checked.
func ValidateSourceRow(row *SourceRow) error {
	if row == nil {
		return fmt.Errorf("%w: row is nil", ErrInvalidSourceRow)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"client_name", row.ClientName},
		{"project_id", row.ProjectID},
		{"project_details", row.ProjectDetails},
		{"last_interaction", row.LastInteraction},
		{"customer_id", row.CustomerID},
		{"dev_id", row.DevID},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidSourceRow, ErrMissingField, f.name)
		}
	}
	return nil
}

// ValidateProjectRecord validates a ProjectRecord according to domain rules.
//
// Validation rules:
//   - ProjectID must not be blank
//   - the rendered text must not be empty
//
// NOT validated:
//   - Vector (checked against the index dimension by the storage layer)
func ValidateProjectRecord(record *ProjectRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidProjectRecord)
	}

	if strings.TrimSpace(record.ProjectID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProjectRecord, ErrEmptyProjectID)
	}

	if strings.TrimSpace(record.Text()) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProjectRecord, ErrEmptyContent)
	}

	return nil
}

// ValidateIndexSpec validates an IndexSpec.
func ValidateIndexSpec(spec *IndexSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrInvalidIndexSpec)
	}
	if spec.Name == "" {
		return fmt.Errorf("%w: %w: name", ErrInvalidIndexSpec, ErrMissingField)
	}
	if spec.Dimension <= 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidIndexSpec, ErrInvalidDimension, spec.Dimension)
	}
	if err := ValidateMetric(spec.Metric); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, err)
	}
	return nil
}

// ValidateMetric validates that a Metric has a valid value.
func ValidateMetric(m Metric) error {
	if m != MetricCosine && m != MetricDotProduct && m != MetricEuclidean {
		return fmt.Errorf("%w: value %d", ErrInvalidMetric, m)
	}
	return nil
}

// ParseMetric converts a metric name into a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cosine":
		return MetricCosine, nil
	case "dotproduct", "dot_product", "dot":
		return MetricDotProduct, nil
	case "euclidean":
		return MetricEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMetric, name)
	}
}
