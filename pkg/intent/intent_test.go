package intent

import (
	"reflect"
	"strings"
	"testing"

	dfv2 "google.golang.org/api/dialogflow/v2"
)

func phrase(parts ...string) *dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase {
	p := &dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase{Type: "EXAMPLE"}
	for _, text := range parts {
		p.Parts = append(p.Parts, &dfv2.GoogleCloudDialogflowV2IntentTrainingPhrasePart{Text: text})
	}
	return p
}

func textMessage(alternatives ...string) *dfv2.GoogleCloudDialogflowV2IntentMessage {
	return &dfv2.GoogleCloudDialogflowV2IntentMessage{
		Text: &dfv2.GoogleCloudDialogflowV2IntentMessageText{Text: alternatives},
	}
}

func TestTrainingPhrasesJoinsParts(t *testing.T) {
	it := New(&Record{
		TrainingPhrases: []*dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase{
			phrase("I want ", "pizza"),
			phrase("large ", "margherita", " please"),
			phrase(),
		},
	})

	want := []string{"I want pizza", "large margherita please", ""}
	if got := it.TrainingPhrases(); !reflect.DeepEqual(got, want) {
		t.Fatalf("training phrases = %q, want %q", got, want)
	}
}

func TestSetTrainingPhrasesRoundTrip(t *testing.T) {
	it := New(&Record{TrainingPhrases: []*dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase{phrase("old ", "one")}})

	it.SetTrainingPhrases([]string{"book a table", "reserve for two"})

	if got, want := it.TrainingPhrases(), []string{"book a table", "reserve for two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("training phrases = %q, want %q", got, want)
	}
	for _, p := range it.Record().TrainingPhrases {
		if p.Type != "EXAMPLE" || len(p.Parts) != 1 {
			t.Fatalf("unexpected phrase shape: %+v", p)
		}
	}
}

func TestMessagesSkipsNonTextResponses(t *testing.T) {
	it := New(&Record{
		Messages: []*dfv2.GoogleCloudDialogflowV2IntentMessage{
			textMessage("Sure.", "Of course."),
			{Card: &dfv2.GoogleCloudDialogflowV2IntentMessageCard{Title: "menu"}},
			{QuickReplies: &dfv2.GoogleCloudDialogflowV2IntentMessageQuickReplies{QuickReplies: []string{"yes"}}},
			textMessage("Anything else?"),
		},
	})

	want := []string{"Sure.", "Of course.", "Anything else?"}
	if got := it.Messages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
}

func TestHasMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []*dfv2.GoogleCloudDialogflowV2IntentMessage
		want     bool
	}{
		{name: "no messages", want: false},
		{name: "all empty text", messages: []*dfv2.GoogleCloudDialogflowV2IntentMessage{textMessage(""), textMessage("", "")}, want: false},
		{name: "only non-text", messages: []*dfv2.GoogleCloudDialogflowV2IntentMessage{{Image: &dfv2.GoogleCloudDialogflowV2IntentMessageImage{ImageUri: "x"}}}, want: false},
		{name: "one non-empty", messages: []*dfv2.GoogleCloudDialogflowV2IntentMessage{textMessage(""), textMessage("hi")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := New(&Record{Messages: tt.messages})
			if got := it.HasMessages(); got != tt.want {
				t.Fatalf("HasMessages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextNamesUseLastSegment(t *testing.T) {
	it := New(&Record{
		InputContextNames: []string{
			"projects/demo/agent/sessions/-/contexts/awaiting-size",
			"plain",
		},
		OutputContexts: []*dfv2.GoogleCloudDialogflowV2Context{
			{Name: "projects/demo/agent/sessions/-/contexts/order-followup", LifespanCount: 2},
		},
	})

	if got, want := it.InputContextNames(), []string{"awaiting-size", "plain"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("input contexts = %q, want %q", got, want)
	}
	if got, want := it.OutputContextNames(), []string{"order-followup"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("output contexts = %q, want %q", got, want)
	}
}

func TestRecordKeepsUninterpretedFields(t *testing.T) {
	record := &Record{
		Name:   "projects/demo/agent/intents/1",
		Action: "order.pizza",
		Parameters: []*dfv2.GoogleCloudDialogflowV2IntentParameter{
			{Name: "size", DisplayName: "size", EntityTypeDisplayName: "@size", Value: "$size"},
		},
	}
	it := New(record)

	if it.Record() != record {
		t.Fatal("Record should return the wrapped record")
	}
	if it.ID() != "1" {
		t.Fatalf("ID = %q", it.ID())
	}

	dump := it.String()
	for _, want := range []string{"Intent name: projects/demo/agent/intents/1", "Action: order.pizza", "entity_type_display_name: @size"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("dump missing %q:\n%s", want, dump)
		}
	}
}

func TestNewWithNilRecord(t *testing.T) {
	it := New(nil)
	if it.Name() != "" || it.HasMessages() || len(it.TrainingPhrases()) != 0 {
		t.Fatalf("unexpected view over nil record: %+v", it.Record())
	}
}
