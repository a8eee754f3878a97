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


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/sellsense/knowbase/core"
)

// Records are stored as JSON so the embedded database and the flat-file
// fallback share one codec, and so the open-keyed maps produced by the
// language model round-trip without a schema migration.

// MarshalKnowledgeDocument serializes a knowledge document.
func MarshalKnowledgeDocument(doc *core.KnowledgeDocument) ([]byte, error) {
	return marshalRecord(doc)
}

// UnmarshalKnowledgeDocument deserializes a knowledge document.
func UnmarshalKnowledgeDocument(data []byte) (*core.KnowledgeDocument, error) {
	return unmarshalRecord[core.KnowledgeDocument](data)
}

// MarshalTrainingMaterialSet serializes a training material set.
func MarshalTrainingMaterialSet(set *core.TrainingMaterialSet) ([]byte, error) {
	return marshalRecord(set)
}

// UnmarshalTrainingMaterialSet deserializes a training material set.
func UnmarshalTrainingMaterialSet(data []byte) (*core.TrainingMaterialSet, error) {
	return unmarshalRecord[core.TrainingMaterialSet](data)
}

// MarshalAnalyticsEvent serializes an analytics event.
func MarshalAnalyticsEvent(event *core.AnalyticsEvent) ([]byte, error) {
	return marshalRecord(event)
}

// UnmarshalAnalyticsEvent deserializes an analytics event.
func UnmarshalAnalyticsEvent(data []byte) (*core.AnalyticsEvent, error) {
	return unmarshalRecord[core.AnalyticsEvent](data)
}

// MarshalID serializes an ID for index values.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from an index value.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: ID value has %d bytes", ErrSerializationFailed, len(data))
	}
	return core.ID(binary.LittleEndian.Uint64(data)), nil
}

func marshalRecord[T any](record *T) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshalRecord[T any](data []byte) (*T, error) {
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
