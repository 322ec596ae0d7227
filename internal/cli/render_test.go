package cli

import (
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/intent"
	"bytes"
	"regexp"
	"strings"
	"testing"

	dfv2 "google.golang.org/api/dialogflow/v2"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func record(id, displayName, parentID string, phrases ...string) *intent.Record {
	const prefix = "projects/demo/agent/intents/"
	r := &intent.Record{Name: prefix + id, DisplayName: displayName}
	if parentID != "" {
		r.ParentFollowupIntentName = prefix + parentID
	}
	for _, p := range phrases {
		r.TrainingPhrases = append(r.TrainingPhrases, &dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase{
			Parts: []*dfv2.GoogleCloudDialogflowV2IntentTrainingPhrasePart{{Text: p}},
		})
	}
	return r
}

func linkedRegistry(t *testing.T) *intent.Registry {
	t.Helper()

	welcome := record("w1", "welcome", "", "hi", "hello")
	welcome.Messages = []*dfv2.GoogleCloudDialogflowV2IntentMessage{
		{Text: &dfv2.GoogleCloudDialogflowV2IntentMessageText{Text: []string{"Hello there"}}},
	}

	registry := intent.NewRegistry()
	registry.Ingest([]*intent.Record{
		welcome,
		record("o1", "order", "", "I want pizza"),
		record("o2", "order - yes", "o1", "yes"),
		record("o3", "order - yes - size", "o2"),
	})
	if err := registry.LinkParents(); err != nil {
		t.Fatalf("LinkParents: %v", err)
	}
	return registry
}

func TestRenderTreeIndentsByDepth(t *testing.T) {
	var buf bytes.Buffer
	if err := renderTree(&buf, linkedRegistry(t)); err != nil {
		t.Fatalf("renderTree: %v", err)
	}

	want := []string{
		"welcome",
		"order (no text response)",
		"  order - yes (no text response)",
		"    order - yes - size (no text response)",
	}
	got := strings.Split(strings.TrimRight(plain(buf.String()), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("lines = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRenderListShowsParentAndPhraseCount(t *testing.T) {
	var buf bytes.Buffer
	if err := renderList(&buf, linkedRegistry(t)); err != nil {
		t.Fatalf("renderList: %v", err)
	}

	out := plain(buf.String())
	for _, line := range []string{
		"welcome [2 phrases]",
		"order - yes <- order [1 phrases]",
		"order - yes - size <- order - yes [0 phrases]",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in\n%s", line, out)
		}
	}
}

func TestRenderIntentSkipsEmptySections(t *testing.T) {
	registry := linkedRegistry(t)
	order, err := registry.ByDisplayName("order")
	if err != nil {
		t.Fatalf("ByDisplayName: %v", err)
	}

	var buf bytes.Buffer
	if err := renderIntent(&buf, order); err != nil {
		t.Fatalf("renderIntent: %v", err)
	}

	out := plain(buf.String())
	if !strings.Contains(out, "training phrases:\n  - I want pizza\n") {
		t.Errorf("training phrases missing:\n%s", out)
	}
	if !strings.Contains(out, "followups:\n  - order - yes\n") {
		t.Errorf("followups missing:\n%s", out)
	}
	for _, section := range []string{"messages:", "parent:", "input contexts:"} {
		if strings.Contains(out, section) {
			t.Errorf("unexpected section %q in\n%s", section, out)
		}
	}
}

func TestRenderContextKeepsParameterOrder(t *testing.T) {
	var buf bytes.Buffer
	err := renderContext(&buf, &dialogflow.Context{
		Name:          "projects/demo/agent/sessions/s-1/contexts/order-followup",
		LifespanCount: 2,
		Parameters:    []byte(`{"size":"large","amount":2}`),
	})
	if err != nil {
		t.Fatalf("renderContext: %v", err)
	}

	if got, want := plain(buf.String()), "order-followup [lifespan 2] {\"size\":\"large\",\"amount\":2}\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderContextRejectsTruncatedParameters(t *testing.T) {
	var buf bytes.Buffer
	err := renderContext(&buf, &dialogflow.Context{
		Name:       "projects/demo/agent/sessions/s-1/contexts/broken",
		Parameters: []byte(`{"size":"lar`),
	})
	if err == nil {
		t.Fatalf("expected an error, wrote %q", buf.String())
	}
}
