package approvals

type IntentRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

type DecisionRequest struct {
	ConfirmationToken string `json:"confirmation_token" binding:"required"`
	Force             bool   `json:"force"`
	Reason            string `json:"reason"`
}

type QueueResponse struct {
	Tabs  []Tab  `json:"tabs"`
	Queue *Queue `json:"queue"`
}
