package dto

type CreateTaskRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Store           string `json:"store"`
	DropoffLocation string `json:"dropoff_location"`
	Urgency         string `json:"urgency"`
	RewardAmount    int64  `json:"reward_amount"`
	EstimatedMins   int    `json:"estimated_mins"`
}

type AdvanceStatusRequest struct {
	Status   string `json:"status"`
	Note     string `json:"note,omitempty"`
	PhotoRef string `json:"photo_ref,omitempty"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}
