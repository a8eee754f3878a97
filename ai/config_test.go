package ai

import (
	"testing"
	"time"
)

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantHost string
	}{
		{
			name:     "adds /v1 suffix",
			host:     "http://localhost:11434",
			wantHost: "http://localhost:11434/v1",
		},
		{
			name:     "trailing slash removed before suffix",
			host:     "http://localhost:11434/",
			wantHost: "http://localhost:11434/v1",
		},
		{
			name:     "suffix already present",
			host:     "http://localhost:11434/v1",
			wantHost: "http://localhost:11434/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			if cfg.Host != tt.wantHost {
				t.Errorf("Normalize() host = %q, want %q", cfg.Host, tt.wantHost)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg = NewConfig(WithEmbeddingModel(""))
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() should reject empty embedding model")
	}

	cfg = NewConfig(WithRequestTimeout(-1))
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("Normalize() should reset non-positive timeout, got %v", cfg.RequestTimeout)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain object untouched",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "strips json fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "strips bare fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "repairs missing opening quote",
			in:   `{"name":"x", type":"y"}`,
			want: `{"name":"x", "type":"y"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.in); got != tt.want {
				t.Errorf("CleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
