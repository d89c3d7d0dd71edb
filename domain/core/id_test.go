package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseDatasetID tests dataset ID parsing
func TestParseDatasetID(t *testing.T) {
	valid := NewDatasetID()

	tests := []struct {
		name     string
		input    string
		hasError bool
	}{
		{"valid uuid", valid.String(), false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"not a uuid", "dataset-1", true},
	}

	for _, test := range tests {
		result, err := ParseDatasetID(test.input)
		if test.hasError && err == nil {
			t.Errorf("%s: expected error for input '%s', but got none", test.name, test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if !test.hasError && result.String() != test.input {
			t.Errorf("%s: expected '%s', got '%s'", test.name, test.input, result)
		}
	}
}

// TestHashDeterminism tests that equal inputs hash equal
func TestHashDeterminism(t *testing.T) {
	a := NewHash([]byte("some content"))
	b := NewHash([]byte("some content"))
	if !a.Equals(b) {
		t.Errorf("Expected identical hashes, got %s and %s", a, b)
	}

	c := NewHash([]byte("other content"))
	if a.Equals(c) {
		t.Error("Expected different content to hash differently")
	}
	if a.IsEmpty() {
		t.Error("Expected non-empty hash")
	}
}
