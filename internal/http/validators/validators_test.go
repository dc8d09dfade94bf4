package validators

import (
	"testing"

	dto "task-market.com/task-market/internal/data_models"
)

func validCreate() dto.CreateTaskRequest {
	return dto.CreateTaskRequest{
		Title:           "Grocery run",
		Category:        "groceries",
		Store:           "Corner Market",
		DropoffLocation: "12 Oak St",
		RewardAmount:    500,
		EstimatedMins:   30,
	}
}

func TestValidateCreateTaskRequest(t *testing.T) {
	req := validCreate()
	if err := ValidateCreateTaskRequest(&req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*dto.CreateTaskRequest)
	}{
		{"missing title", func(r *dto.CreateTaskRequest) { r.Title = "" }},
		{"missing category", func(r *dto.CreateTaskRequest) { r.Category = " " }},
		{"missing store", func(r *dto.CreateTaskRequest) { r.Store = "" }},
		{"missing dropoff", func(r *dto.CreateTaskRequest) { r.DropoffLocation = "" }},
		{"zero reward", func(r *dto.CreateTaskRequest) { r.RewardAmount = 0 }},
		{"zero duration", func(r *dto.CreateTaskRequest) { r.EstimatedMins = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			if err := ValidateCreateTaskRequest(&req); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestValidateSendMessageRequest(t *testing.T) {
	if err := ValidateSendMessageRequest(&dto.SendMessageRequest{Text: "hi"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := ValidateSendMessageRequest(&dto.SendMessageRequest{Text: "  "}); err == nil {
		t.Error("blank text should be rejected")
	}
}

func TestValidateAdvanceStatusRequest(t *testing.T) {
	if err := ValidateAdvanceStatusRequest(&dto.AdvanceStatusRequest{Status: "picked_up"}); err != nil {
		t.Errorf("valid status rejected: %v", err)
	}
	if err := ValidateAdvanceStatusRequest(&dto.AdvanceStatusRequest{}); err == nil {
		t.Error("missing status should be rejected")
	}
	if err := ValidateAdvanceStatusRequest(&dto.AdvanceStatusRequest{Status: "teleported"}); err == nil {
		t.Error("unknown status should be rejected")
	}
}
