package dto

import "chatshot-be/internal/entity"

type AppendMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=me other"`
	Content string `json:"content" validate:"required"`
}

type UpdateMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=me other"`
	Content string `json:"content" validate:"required"`
}

type SetTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

type SetEditingRequest struct {
	// Index is nil to clear the pending edit.
	Index *int `json:"index"`
}

type SaveSnapshotRequest struct {
	Title string `json:"title" validate:"required"`
}

type WorkingChatResponse struct {
	Title        string           `json:"title"`
	Messages     []entity.Message `json:"messages"`
	EditingIndex *int             `json:"editing_index"`
}

type SnapshotSummary struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	MessageCount int    `json:"message_count"`
}

type SnapshotListResponse struct {
	Snapshots []SnapshotSummary `json:"snapshots"`
}
