package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/run417/bit-announcement-notifier/app/announcement"
	"github.com/run417/bit-announcement-notifier/app/subscriber"
)

// recordingAgent captures every send and can fail selected calls.
type recordingAgent struct {
	calls   []sendCall
	failOn  int // 1-based call index to fail, 0 for never
	deliver int
}

type sendCall struct {
	message    string
	recipients []string
}

func (a *recordingAgent) Send(_ context.Context, message string, recipients []string) (bool, error) {
	a.calls = append(a.calls, sendCall{message: message, recipients: recipients})
	if a.failOn == len(a.calls) {
		return false, errors.New("gateway unreachable")
	}
	a.deliver += len(recipients)
	return true, nil
}

func newAnnouncements(titles ...string) *announcement.Collection {
	c := announcement.NewCollection()
	for i, title := range titles {
		c.Add(announcement.New(announcement.Data{
			Title:       title,
			URL:         "http://bit.lk/" + title,
			PublishedAt: time.Date(2020, time.May, 10+i, 14, 0, 0, 0, time.UTC),
			RetrievedAt: time.Now(),
		}))
	}
	return c
}

func newSubscribers(contacts ...string) *subscriber.Collection {
	c := subscriber.NewCollection()
	for _, contact := range contacts {
		c.Add(&subscriber.Subscriber{Name: contact, Contact: contact, Status: "active"})
	}
	return c
}

func TestNotifierFanOut(t *testing.T) {
	agent := &recordingAgent{}
	notifier := NewNotifier(
		newAnnouncements("first", "second"),
		NewTextitFormatter(),
		newSubscribers("94712345678", "94722345678", "email@example.com", "94752345678"),
		NewTextitFilter(),
		agent,
	)

	notifier.Notify(context.Background())

	// 2 messages, each posted once with the 3 compliant recipients:
	// 6 deliveries attempted in total.
	if len(agent.calls) != 2 {
		t.Fatalf("Expected 2 gateway calls, got %d", len(agent.calls))
	}
	if agent.deliver != 6 {
		t.Errorf("Expected 6 deliveries attempted, got %d", agent.deliver)
	}
	for _, call := range agent.calls {
		if len(call.recipients) != 3 {
			t.Errorf("Expected 3 recipients per call, got %v", call.recipients)
		}
		for _, r := range call.recipients {
			if r == "email@example.com" {
				t.Error("Email contact must not pass the SMS channel filter")
			}
		}
	}
}

func TestNotifierContinuesAfterSendFailure(t *testing.T) {
	agent := &recordingAgent{failOn: 1}
	notifier := NewNotifier(
		newAnnouncements("first", "second"),
		NewTextitFormatter(),
		newSubscribers("94712345678"),
		NewTextitFilter(),
		agent,
	)

	notifier.Notify(context.Background())

	if len(agent.calls) != 2 {
		t.Errorf("Expected the batch to continue after a failed send, got %d calls", len(agent.calls))
	}
}

func TestNotifierNoEligibleRecipients(t *testing.T) {
	agent := &recordingAgent{}
	notifier := NewNotifier(
		newAnnouncements("first"),
		NewTextitFormatter(),
		newSubscribers("email@example.com"),
		NewTextitFilter(),
		agent,
	)

	notifier.Notify(context.Background())

	if len(agent.calls) != 0 {
		t.Errorf("Expected no gateway calls without eligible recipients, got %d", len(agent.calls))
	}
}

func TestErrorReporter(t *testing.T) {
	agent := &recordingAgent{}
	NewErrorReporter(agent, "94712345678").Report(context.Background(), "run failed: fetch failed")

	if len(agent.calls) != 1 {
		t.Fatalf("Expected 1 gateway call, got %d", len(agent.calls))
	}
	call := agent.calls[0]
	if len(call.recipients) != 1 || call.recipients[0] != "94712345678" {
		t.Errorf("Expected the report to go to the operator only, got %v", call.recipients)
	}
	if call.message != "run failed: fetch failed" {
		t.Errorf("Unexpected report message: %q", call.message)
	}
}

func TestErrorReporterWithoutRecipient(t *testing.T) {
	agent := &recordingAgent{}
	NewErrorReporter(agent, "").Report(context.Background(), "boom")

	if len(agent.calls) != 0 {
		t.Error("Report without a recipient must not call the gateway")
	}
}
