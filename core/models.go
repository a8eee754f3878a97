package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content hashes so identical content maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID, which makes re-ingestion of the
// same file an upsert rather than a duplicate.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentType tags the format family a document was extracted from.
// The set is closed; extraction dispatches over exactly these values.
type ContentType string

const (
	ContentTypePDF         ContentType = "pdf"
	ContentTypeWord        ContentType = "word"
	ContentTypeSpreadsheet ContentType = "spreadsheet"
	ContentTypeImage       ContentType = "image"
	ContentTypeMedia       ContentType = "media"
	ContentTypeText        ContentType = "text"
)

// StructuredData holds machine-parseable fields pulled out of free-form content.
// Extraction is best-effort: a failed or unparsable service call yields the
// empty-but-well-typed value from EmptyStructuredData, never nil fields.
type StructuredData struct {
	Products       []string          `json:"products"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Pricing        map[string]string `json:"pricing"`
	KeyPoints      []string          `json:"keyPoints"`
}

// EmptyStructuredData returns a StructuredData with all collections allocated
// and empty. Callers never need to branch on "missing" vs "failed extraction".
func EmptyStructuredData() StructuredData {
	return StructuredData{
		Products:       []string{},
		Features:       []string{},
		Specifications: map[string]string{},
		Pricing:        map[string]string{},
		KeyPoints:      []string{},
	}
}

// IsEmpty reports whether no structured fields were extracted.
func (s StructuredData) IsEmpty() bool {
	return len(s.Products) == 0 && len(s.Features) == 0 &&
		len(s.Specifications) == 0 && len(s.Pricing) == 0 && len(s.KeyPoints) == 0
}

// KnowledgeDocument is the stored record of one successfully extracted file.
// It is immutable once stored except for metadata updates; documents are
// removed only by entity cascade deletes or a bulk clear.
type KnowledgeDocument struct {
	Id          ID             `json:"id"`
	Filename    string         `json:"filename"`
	EntityID    string         `json:"entityId,omitempty"`
	ContentType ContentType    `json:"contentType"`
	RawText     string         `json:"rawText"`
	Structured  StructuredData `json:"structuredData"`
	ChunkCount  int            `json:"chunkCount"`
	ChunkIDs    []string       `json:"chunkIds,omitempty"`
	SizeBytes   int64          `json:"sizeBytes"`
	MimeType    string         `json:"mimeType,omitempty"`
	ProcessedAt time.Time      `json:"processedAt"`
}

// ChunkMetadata travels with every embedded chunk in the vector index.
// Filename is the join key back to the owning KnowledgeDocument.
type ChunkMetadata struct {
	Filename    string      `json:"filename"`
	EntityID    string      `json:"entityId,omitempty"`
	ContentType ContentType `json:"contentType"`
	UploadedAt  time.Time   `json:"uploadedAt"`
}

// QuizItem is a single multiple-choice training question.
type QuizItem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Difficulty         string   `json:"difficulty"`
	Category           string   `json:"category"`
}

// Scenario is a practice sales situation with a target outcome.
type Scenario struct {
	Title             string `json:"title"`
	CustomerProfile   string `json:"customerProfile"`
	Situation         string `json:"situation"`
	Objective         string `json:"objective"`
	SuggestedApproach string `json:"suggestedApproach"`
}

// ObjectionHandler pairs a common customer objection with a recommended response.
type ObjectionHandler struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
	Tip       string `json:"tip,omitempty"`
}

// Comparison positions the product against a competitor.
type Comparison struct {
	Competitor string `json:"competitor"`
	Advantage  string `json:"advantage"`
	TalkTrack  string `json:"talkTrack"`
}

// TalkingPoint is a short, lead-with statement about the product.
type TalkingPoint struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

// ScriptLine is one turn in a role-play script.
type ScriptLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// RolePlayScript is a scripted dialogue for rehearsing a sales conversation.
type RolePlayScript struct {
	Title        string       `json:"title"`
	CustomerRole string       `json:"customerRole"`
	SalesGoal    string       `json:"salesGoal"`
	Lines        []ScriptLine `json:"lines"`
}

// TrainingMaterialSet holds all generated training artifacts for one entity.
// Regeneration overwrites the prior set for the same entity.
type TrainingMaterialSet struct {
	EntityID          string             `json:"entityId"`
	GeneratedAt       time.Time          `json:"generatedAt"`
	Quizzes           []QuizItem         `json:"quizzes"`
	Scenarios         []Scenario         `json:"scenarios"`
	ObjectionHandlers []ObjectionHandler `json:"objectionHandlers"`
	Comparisons       []Comparison       `json:"comparisons"`
	TalkingPoints     []TalkingPoint     `json:"talkingPoints"`
	RolePlayScripts   []RolePlayScript   `json:"rolePlayScripts"`
}

// EventType identifies the source of an analytics event.
type EventType string

const (
	EventChatInteraction EventType = "chat_interaction"
	EventTrainingSession EventType = "training_session"
	EventTrainingPlan    EventType = "training_plan"
)

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventChatInteraction, EventTrainingSession, EventTrainingPlan:
		return true
	}
	return false
}

// AnalyticsEvent is an append-only usage record. Events are never mutated
// and are queried by user and time range for reporting.
type AnalyticsEvent struct {
	UserID    string        `json:"userId"`
	EventType EventType     `json:"eventType"`
	Message   string        `json:"message,omitempty"`
	Response  string        `json:"response,omitempty"`
	Scenario  string        `json:"scenario,omitempty"`
	Score     float64       `json:"score,omitempty"`
	Plan      *TrainingPlan `json:"plan,omitempty"` // populated for training_plan events
	Timestamp time.Time     `json:"timestamp"`
}

// TrainingPlan is a personalized, multi-field development plan for one user.
type TrainingPlan struct {
	UserID     string    `json:"userId"`
	Goals      []string  `json:"goals"`
	Milestones []string  `json:"milestones"`
	FocusAreas []string  `json:"focusAreas"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IngestResult reports the outcome of ingesting a single file.
// Failures are carried per file; one bad file never aborts a batch.
type IngestResult struct {
	Filename      string         `json:"filename"`
	Success       bool           `json:"success"`
	ChunksCreated int            `json:"chunksCreated"`
	Structured    StructuredData `json:"structuredData"`
	Error         string         `json:"error,omitempty"`
}

// SearchHit is one enriched vector-search result. Document is populated only
// when the primary store is reachable; under fallback storage the join is
// best-effort and may be nil.
type SearchHit struct {
	Text       string             `json:"text"`
	Metadata   ChunkMetadata      `json:"metadata"`
	Similarity float32            `json:"similarity"`
	Document   *KnowledgeDocument `json:"document,omitempty"`
}
