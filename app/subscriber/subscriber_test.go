package subscriber

import (
	"testing"
)

func TestIsValidContact(t *testing.T) {
	tests := []struct {
		contact string
		valid   bool
	}{
		{"94712345678", true},
		{"94702345678", true},
		{"94782345678", true},
		{"alice@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"94312345678", false}, // not a mobile prefix
		{"0712345678", false},  // missing country code
		{"9471234567", false},  // too short
		{"947123456789", false},
		{"not-a-contact", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidContact(tt.contact); got != tt.valid {
			t.Errorf("IsValidContact(%q) = %v, expected %v", tt.contact, got, tt.valid)
		}
	}
}

func TestCollectionKeyedByContact(t *testing.T) {
	c := NewCollection()
	c.Add(&Subscriber{Name: "Alice", Contact: "94712345678", Status: "active"})
	c.Add(&Subscriber{Name: "Bob", Contact: "94722345678", Status: "active"})

	if c.Size() != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", c.Size())
	}
	if !c.Contains("94712345678") {
		t.Error("Expected collection to contain Alice's contact")
	}
	if c.Get("94722345678").Name != "Bob" {
		t.Error("Expected to get Bob by contact")
	}
}

func TestCollectionDuplicateContactLastWriteWins(t *testing.T) {
	c := NewCollection()
	c.Add(&Subscriber{Name: "Alice", Contact: "94712345678"})
	c.Add(&Subscriber{Name: "Alice Updated", Contact: "94712345678"})

	if c.Size() != 1 {
		t.Fatalf("Expected duplicate contact to overwrite, size is %d", c.Size())
	}
	if c.Get("94712345678").Name != "Alice Updated" {
		t.Error("Expected the later insert to win")
	}
}

func TestCollectionListPreservesInsertionOrder(t *testing.T) {
	c := NewCollection()
	c.Add(&Subscriber{Name: "Alice", Contact: "94712345678"})
	c.Add(&Subscriber{Name: "Bob", Contact: "94722345678"})
	c.Add(&Subscriber{Name: "Carol", Contact: "94752345678"})

	list := c.List()
	if list[0].Name != "Alice" || list[1].Name != "Bob" || list[2].Name != "Carol" {
		t.Errorf("Expected insertion order, got %v", c.String())
	}
}
