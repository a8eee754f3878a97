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


package extract

import (
	"regexp"
	"strings"
)

// DefaultMaxChunkChars is the default chunk size bound.
const DefaultMaxChunkChars = 1000

var sentenceSplitter = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// ChunkText splits text into chunks on sentence boundaries, greedily packing
// sentences into chunks of at most maxChars characters. A single sentence
// longer than the bound becomes its own oversized chunk; sentences are never
// split. The function is pure: the same input always yields the same chunks.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() == 0 {
			current.WriteString(sentence)
			continue
		}
		if current.Len()+1+len(sentence) <= maxChars {
			current.WriteByte(' ')
			current.WriteString(sentence)
			continue
		}
		chunks = append(chunks, current.String())
		current.Reset()
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// SplitSentences splits text on sentence-terminating punctuation.
// Text without any terminator is returned as a single sentence; a trailing
// fragment after the last terminator is kept as its own sentence so no
// content is lost.
func SplitSentences(text string) []string {
	indexes := sentenceSplitter.FindAllStringIndex(text, -1)
	if len(indexes) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	sentences := make([]string, 0, len(indexes)+1)
	for _, idx := range indexes {
		s := strings.TrimSpace(text[idx[0]:idx[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	// Keep any trailing text that lacks terminal punctuation.
	if tail := strings.TrimSpace(text[indexes[len(indexes)-1][1]:]); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}
