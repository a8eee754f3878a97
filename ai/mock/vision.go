package mock

import (
	"context"
)

// MockVision is a test double for ai.VisionService.
// It allows custom behavior injection via function fields.
type MockVision struct {
	// DescribeFunc is called by Describe if set.
	DescribeFunc func(ctx context.Context, mimeType string, image []byte) (string, error)

	// OCRFunc is called by OCR if set.
	OCRFunc func(ctx context.Context, mimeType string, image []byte) (string, error)

	callCount int
}

// NewMockVision creates a mock vision service with default fixed responses.
// Note: Returns concrete type to allow test assertions.
func NewMockVision() *MockVision {
	return &MockVision{}
}

// Describe returns a fixed description or delegates to DescribeFunc.
func (m *MockVision) Describe(ctx context.Context, mimeType string, image []byte) (string, error) {
	m.callCount++

	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, mimeType, image)
	}
	return "a product photo", nil
}

// OCR returns fixed image text or delegates to OCRFunc.
func (m *MockVision) OCR(ctx context.Context, mimeType string, image []byte) (string, error) {
	m.callCount++

	if m.OCRFunc != nil {
		return m.OCRFunc(ctx, mimeType, image)
	}
	return "text in image", nil
}

// CallCount returns the number of times any method was called.
func (m *MockVision) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockVision) Reset() {
	m.callCount = 0
	m.DescribeFunc = nil
	m.OCRFunc = nil
}
