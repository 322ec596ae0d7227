package intents

import "time"

type IntentSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	ParentName      string   `json:"parent_name,omitempty"`
	Action          string   `json:"action,omitempty"`
	TrainingPhrases []string `json:"training_phrases"`
	Messages        []string `json:"messages"`
	HasMessages     bool     `json:"has_messages"`
	InputContexts   []string `json:"input_contexts"`
	OutputContexts  []string `json:"output_contexts"`
	FollowupCount   int      `json:"followup_count"`
}

type IntentDetail struct {
	IntentSummary
	Followups []string `json:"followups"`
	Ancestors []string `json:"ancestors"`
}

type IntentListResponse struct {
	Intents  []IntentSummary `json:"intents"`
	Total    int             `json:"total"`
	LoadedAt time.Time       `json:"loaded_at"`
}

type TreeNode struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	HasMessages bool       `json:"has_messages"`
	Followups   []TreeNode `json:"followups"`
}

type TreeResponse struct {
	Roots                 []TreeNode `json:"roots"`
	LinkErrors            []string   `json:"link_errors,omitempty"`
	DuplicateDisplayNames []string   `json:"duplicate_display_names,omitempty"`
}

type RefreshResponse struct {
	Total      int       `json:"total"`
	LinkErrors []string  `json:"link_errors,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
}

type UpdateTrainingPhrasesRequest struct {
	Phrases []string `json:"phrases" validate:"required,min=1,dive,required,max=768"`
}

type TrainingPhrasesItem struct {
	DisplayName string   `json:"display_name" validate:"required"`
	Phrases     []string `json:"phrases" validate:"required,min=1,dive,required,max=768"`
}

type BatchTrainingPhrasesRequest struct {
	Items []TrainingPhrasesItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type BatchItemResult struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name,omitempty"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
}

type BatchTrainingPhrasesResponse struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
