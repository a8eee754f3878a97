package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "spec-sheet.pdf",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "Model X brochure with a much longer name that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("brochure.pdf")
	id2 := IDFromContent("pricing.xlsx")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEmptyStructuredData(t *testing.T) {
	s := EmptyStructuredData()

	if s.Products == nil || s.Features == nil || s.Specifications == nil ||
		s.Pricing == nil || s.KeyPoints == nil {
		t.Fatalf("EmptyStructuredData() returned nil collections: %+v", s)
	}
	if !s.IsEmpty() {
		t.Errorf("EmptyStructuredData() is not empty")
	}
}

func TestStructuredData_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data StructuredData
		want bool
	}{
		{
			name: "zero value",
			data: StructuredData{},
			want: true,
		},
		{
			name: "with products",
			data: StructuredData{Products: []string{"Model X"}},
			want: false,
		},
		{
			name: "with specifications",
			data: StructuredData{Specifications: map[string]string{"horsepower": "300"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidEventType(t *testing.T) {
	for _, et := range []EventType{EventChatInteraction, EventTrainingSession, EventTrainingPlan} {
		if !ValidEventType(et) {
			t.Errorf("ValidEventType(%q) = false, want true", et)
		}
	}
	if ValidEventType("page_view") {
		t.Errorf("ValidEventType(page_view) = true, want false")
	}
}
