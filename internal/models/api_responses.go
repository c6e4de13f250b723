package models

// ResolveRequest is the body of a resolve API call.
type ResolveRequest struct {
	Message string `json:"message"`
}

// ResolveResponse contains the reply and emotion resolved for one message.
type ResolveResponse struct {
	Reply         string    `json:"reply"`
	Emotion       string    `json:"emotion"`
	ReplySource   string    `json:"reply_source"`
	EmotionSource string    `json:"emotion_source"`
	ReplyScore    int       `json:"reply_score"`
	EmotionScore  int       `json:"emotion_score"`
	Style         MoodStyle `json:"style"`
}

// NewResolveResponse flattens an exchange for the JSON API.
func NewResolveResponse(ex Exchange) ResolveResponse {
	return ResolveResponse{
		Reply:         ex.Reply.Label,
		Emotion:       ex.Emotion.Label,
		ReplySource:   ex.Reply.Source,
		EmotionSource: ex.Emotion.Source,
		ReplyScore:    ex.Reply.Score,
		EmotionScore:  ex.Emotion.Score,
		Style:         ex.Style,
	}
}

// HealthResponse reports liveness and the size of the loaded datasets.
type HealthResponse struct {
	Status         string `json:"status"`
	DatasetSource  string `json:"dataset_source"`
	ChatPhrases    int    `json:"chat_phrases"`
	EmotionPhrases int    `json:"emotion_phrases"`
	Threshold      int    `json:"threshold"`
	Database       string `json:"database,omitempty"`
	// StoredPhrases counts rows per dataset in the phrases table.
	StoredPhrases map[string]int `json:"stored_phrases,omitempty"`
}
