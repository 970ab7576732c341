package subscriber

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSubscribersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subscribers.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderLoadsValidSubscribers(t *testing.T) {
	path := writeSubscribersFile(t, `[
  {"name": "Alice", "contact": "94712345678", "status": "active"},
  {"name": "Bob", "contact": "bob@example.com", "status": "active"}
]`)

	collection, err := NewLoader(path).LoadAll()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if collection.Size() != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", collection.Size())
	}
	if collection.Get("94712345678").Name != "Alice" {
		t.Error("Expected Alice keyed by mobile contact")
	}
	if collection.Get("bob@example.com").Status != "active" {
		t.Error("Expected Bob's status to be loaded")
	}
}

func TestLoaderDropsInvalidContacts(t *testing.T) {
	path := writeSubscribersFile(t, `[
  {"name": "Alice", "contact": "94712345678", "status": "active"},
  {"name": "Mallory", "contact": "not-a-contact", "status": "active"},
  {"name": "Trent", "contact": "0712345678", "status": "active"}
]`)

	collection, err := NewLoader(path).LoadAll()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if collection.Size() != 1 {
		t.Fatalf("Expected invalid contacts to be dropped, got %d subscribers", collection.Size())
	}
	if !collection.Contains("94712345678") {
		t.Error("Expected the valid subscriber to survive")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.json")).LoadAll(); err == nil {
		t.Error("Expected error for missing subscribers file")
	}
}

func TestLoaderMalformedJSON(t *testing.T) {
	path := writeSubscribersFile(t, `{"not": "a list"}`)
	if _, err := NewLoader(path).LoadAll(); err == nil {
		t.Error("Expected error for malformed subscribers file")
	}
}
