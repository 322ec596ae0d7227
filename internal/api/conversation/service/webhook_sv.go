package conversationService

import (
	"IntentBridge/internal/api/conversation"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/response"
	"IntentBridge/pkg/structconv"
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fulfill answers a fulfillment webhook call. When the matched intent is known, its text
// messages are returned with $parameter references filled in and its followups are listed in
// the payload; otherwise the agent's own fulfillment text is echoed back.
func (s *conversationService) Fulfill(ctx context.Context, req conversation.WebhookRequest) (*conversation.WebhookResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	qr := req.QueryResult

	params := structconv.Mapping()
	if len(qr.Parameters) > 0 && string(qr.Parameters) != "null" {
		parsed, err := structconv.FromJSON(qr.Parameters)
		if err != nil || parsed.Kind() != structconv.KindMapping {
			if err == nil {
				err = errors.New("parameters must be an object")
			}
			return nil, response.Wrap(conversation.ErrInvalidWebhookParams, err)
		}
		params = parsed
	}

	resp := &conversation.WebhookResponse{}
	payload := []structconv.Entry{
		structconv.Field("intent", structconv.String(qr.Intent.DisplayName)),
		structconv.Field("parameters", params),
	}

	it, err := s.intents.FindByDisplayName(ctx, qr.Intent.DisplayName)
	switch {
	case err == nil:
		if it.HasMessages() {
			texts := renderMessages(it.Messages(), params)
			resp.FulfillmentText = firstNonEmpty(texts)
			resp.FulfillmentMessages = []conversation.WebhookMessage{
				{Text: &conversation.WebhookText{Text: texts}},
			}
		} else {
			resp.FulfillmentText = qr.FulfillmentText
		}

		followups := make([]string, 0, len(it.Children()))
		for _, child := range it.Children() {
			followups = append(followups, child.DisplayName())
		}
		payload = append(payload, structconv.Field("followups", structconv.FromAny(followups)))

	case intent.IsNotFound(err):
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     qr.Intent.DisplayName,
		}).Debug("Webhook intent not in registry")
		resp.FulfillmentText = qr.FulfillmentText

	default:
		// The registry being unavailable should not break the conversation
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     qr.Intent.DisplayName,
			"error":      err.Error(),
		}).Warn("Intent lookup failed during fulfillment")
		resp.FulfillmentText = qr.FulfillmentText
	}

	resp.Payload = structconv.ConvertMapping(structconv.Mapping(payload...))

	return resp, nil
}

// renderMessages replaces $name with the scalar parameter of that name. Longer names are
// replaced first so that $city does not clobber $city_name.
func renderMessages(messages []string, params structconv.Value) []string {
	type binding struct {
		token string
		value string
	}

	var bindings []binding
	for _, e := range params.Entries() {
		if e.Value.Kind() != structconv.KindScalar {
			continue
		}
		bindings = append(bindings, binding{token: "$" + e.Key, value: scalarText(structconv.Convert(e.Value))})
	}
	sort.SliceStable(bindings, func(i, j int) bool {
		return len(bindings[i].token) > len(bindings[j].token)
	})

	out := make([]string, len(messages))
	for i, m := range messages {
		for _, b := range bindings {
			m = strings.ReplaceAll(m, b.token, b.value)
		}
		out[i] = m
	}
	return out
}

func firstNonEmpty(texts []string) string {
	for _, t := range texts {
		if t != "" {
			return t
		}
	}
	return ""
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
