// Package intent wraps Dialogflow intent records in read views and links them into the
// followup forest described by their parent references.
package intent

import (
	"fmt"
	"strings"

	dfv2 "google.golang.org/api/dialogflow/v2"
)

// Record is the platform representation of an intent. Every field of the record, including the
// ones this package does not interpret, stays reachable through Intent.Record.
type Record = dfv2.GoogleCloudDialogflowV2Intent

const phraseTypeExample = "EXAMPLE"

type Intent struct {
	record   *Record
	parent   *Intent
	children []*Intent
}

// New wraps record. A nil record is replaced by an empty one.
func New(record *Record) *Intent {
	if record == nil {
		record = &Record{}
	}
	return &Intent{record: record}
}

func (i *Intent) Record() *Record {
	return i.record
}

func (i *Intent) Name() string {
	return i.record.Name
}

func (i *Intent) DisplayName() string {
	return i.record.DisplayName
}

// ParentName is the stable name of the parent followup intent, empty for top-level intents.
func (i *Intent) ParentName() string {
	return i.record.ParentFollowupIntentName
}

// Parent returns the linked parent, or nil before linking and for top-level intents.
func (i *Intent) Parent() *Intent {
	return i.parent
}

// Children returns the linked followup intents in registry order. The slice is a copy.
func (i *Intent) Children() []*Intent {
	out := make([]*Intent, len(i.children))
	copy(out, i.children)
	return out
}

// TrainingPhrases joins the parts of every training phrase, one string per phrase.
func (i *Intent) TrainingPhrases() []string {
	result := make([]string, 0, len(i.record.TrainingPhrases))
	for _, phrase := range i.record.TrainingPhrases {
		if phrase == nil {
			result = append(result, "")
			continue
		}
		var sb strings.Builder
		for _, part := range phrase.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		result = append(result, sb.String())
	}
	return result
}

// SetTrainingPhrases replaces the training phrases with one single-part EXAMPLE phrase per
// string. Entity annotations on the previous phrases are dropped.
func (i *Intent) SetTrainingPhrases(phrases []string) {
	trainingPhrases := make([]*dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase, 0, len(phrases))
	for _, phrase := range phrases {
		trainingPhrases = append(trainingPhrases, &dfv2.GoogleCloudDialogflowV2IntentTrainingPhrase{
			Type: phraseTypeExample,
			Parts: []*dfv2.GoogleCloudDialogflowV2IntentTrainingPhrasePart{
				{Text: phrase},
			},
		})
	}
	i.record.TrainingPhrases = trainingPhrases
}

// Messages returns the text alternatives of every text response, in order. Cards, images,
// quick replies and custom payloads are not text and are skipped.
func (i *Intent) Messages() []string {
	var result []string
	for _, message := range i.record.Messages {
		if message == nil || message.Text == nil {
			continue
		}
		result = append(result, message.Text.Text...)
	}
	return result
}

// HasMessages reports whether the text responses contain at least one character.
func (i *Intent) HasMessages() bool {
	count := 0
	for _, message := range i.Messages() {
		count += len(message)
	}
	return count > 0
}

// InputContextNames returns the short names (last path segment) of the input contexts.
func (i *Intent) InputContextNames() []string {
	names := make([]string, 0, len(i.record.InputContextNames))
	for _, name := range i.record.InputContextNames {
		names = append(names, shortName(name))
	}
	return names
}

func (i *Intent) OutputContextNames() []string {
	names := make([]string, 0, len(i.record.OutputContexts))
	for _, c := range i.record.OutputContexts {
		if c != nil {
			names = append(names, shortName(c.Name))
		}
	}
	return names
}

// ID is the last segment of the stable name.
func (i *Intent) ID() string {
	return shortName(i.record.Name)
}

func shortName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func (i *Intent) String() string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)
	r := i.record

	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Intent name: %s\n", r.Name)
	fmt.Fprintf(&sb, "Intent display_name: %s\n", r.DisplayName)
	fmt.Fprintf(&sb, "Root followup intent: %s\n", r.RootFollowupIntentName)
	fmt.Fprintf(&sb, "Parent followup intent: %s\n\n", r.ParentFollowupIntentName)

	sb.WriteString("Input contexts:\n")
	for _, name := range r.InputContextNames {
		fmt.Fprintf(&sb, "\tName: %s\n", name)
	}

	sb.WriteString("Output contexts:\n")
	for _, c := range r.OutputContexts {
		if c != nil {
			fmt.Fprintf(&sb, "\tName: %s\n", c.Name)
		}
	}

	if r.Action != "" {
		fmt.Fprintf(&sb, "Action: %s\n", r.Action)
	}

	if len(r.Parameters) > 0 {
		sb.WriteString("Parameters:\n")
		for _, p := range r.Parameters {
			if p == nil {
				continue
			}
			fmt.Fprintf(&sb, "\tname: %s\n", p.Name)
			fmt.Fprintf(&sb, "\tdisplay_name: %s\n", p.DisplayName)
			fmt.Fprintf(&sb, "\tentity_type_display_name: %s\n", p.EntityTypeDisplayName)
			fmt.Fprintf(&sb, "\tvalue: %s\n", p.Value)
		}
	}

	if phrases := i.TrainingPhrases(); len(phrases) > 0 {
		sb.WriteString("Training Phrases:\n")
		for _, phrase := range phrases {
			fmt.Fprintf(&sb, "\t%s\n", phrase)
		}
	}

	sb.WriteString(rule + "\n")
	return sb.String()
}
