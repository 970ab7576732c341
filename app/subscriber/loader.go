package subscriber

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// subscriberRecord is a single row of the subscribers file.
type subscriberRecord struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Status  string `json:"status"`
}

// Loader reads the subscriber list from a static JSON file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// LoadAll reads and validates the subscriber file. Rows whose contact
// is neither a valid email address nor a valid mobile number are
// dropped with a warning; they cannot be reached on any channel.
func (l *Loader) LoadAll() (*Collection, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscribers file: %w", err)
	}

	var records []subscriberRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse subscribers file %s: %w", l.path, err)
	}

	collection := NewCollection()
	dropped := 0
	for _, record := range records {
		if !IsValidContact(record.Contact) {
			slog.Warn("Subscriber contact is not valid, skipping", "contact", record.Contact)
			dropped++
			continue
		}
		collection.Add(&Subscriber{
			Name:    record.Name,
			Contact: record.Contact,
			Status:  record.Status,
		})
	}

	slog.Info("Loaded subscribers", "file", l.path, "loaded", collection.Size(), "dropped", dropped)
	return collection, nil
}
