package cli

import (
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/structconv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// renderTree writes the followup forest, one intent per line, indented by depth. Intents
// without a text response are marked.
func renderTree(w io.Writer, registry *intent.Registry) error {
	return registry.Walk(func(it *intent.Intent, depth int) error {
		marker := ""
		if !it.HasMessages() {
			marker = " " + mutedStyle.Render("(no text response)")
		}
		_, err := fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), nameStyle.Render(it.DisplayName()), marker)
		return err
	})
}

func renderList(w io.Writer, registry *intent.Registry) error {
	for _, it := range registry.All() {
		parent := ""
		if p := it.Parent(); p != nil {
			parent = mutedStyle.Render(" <- " + p.DisplayName())
		}
		if _, err := fmt.Fprintf(w, "%s%s %s\n",
			nameStyle.Render(it.DisplayName()),
			parent,
			mutedStyle.Render(fmt.Sprintf("[%d phrases]", len(it.TrainingPhrases()))),
		); err != nil {
			return err
		}
	}
	return nil
}

func renderIntent(w io.Writer, it *intent.Intent) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(it.DisplayName()) + "\n")
	sb.WriteString(labelStyle.Render("name: ") + it.Name() + "\n")
	if p := it.ParentName(); p != "" {
		sb.WriteString(labelStyle.Render("parent: ") + p + "\n")
	}

	writeSection(&sb, "training phrases", it.TrainingPhrases())
	writeSection(&sb, "messages", it.Messages())
	writeSection(&sb, "input contexts", it.InputContextNames())
	writeSection(&sb, "output contexts", it.OutputContextNames())

	var followups []string
	for _, child := range it.Children() {
		followups = append(followups, child.DisplayName())
	}
	writeSection(&sb, "followups", followups)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSection(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(labelStyle.Render(label+":") + "\n")
	for _, item := range items {
		sb.WriteString("  - " + item + "\n")
	}
}

// renderContext prints one context line: short name, remaining lifespan and parameters as
// JSON in the agent's key order.
func renderContext(w io.Writer, c *dialogflow.Context) error {
	if c == nil {
		return nil
	}

	name := c.Name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	params := "{}"
	if len(c.Parameters) > 0 {
		v, err := structconv.FromJSON(c.Parameters)
		if err != nil {
			return fmt.Errorf("context %s: %w", name, err)
		}
		encoded, err := structconv.MarshalJSON(structconv.Convert(v))
		if err != nil {
			return err
		}
		params = string(encoded)
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n",
		nameStyle.Render(name),
		mutedStyle.Render(fmt.Sprintf("[lifespan %d]", c.LifespanCount)),
		params,
	)
	return err
}
