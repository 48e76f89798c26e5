package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// CreateGroupRequest creates a new study group.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// JoinGroupRequest admits the caller to a group by invite code.
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// SendChatRequest posts a message into a group chat.
type SendChatRequest struct {
	MessageText string `json:"message_text" validate:"required"`
	MessageType string `json:"message_type"`
	EmojiCode   string `json:"emoji_code"`
}

// StudyGroupResponse is the wire shape of a study group.
type StudyGroupResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatorID  uuid.UUID `json:"creator_id"`
	MaxMembers int       `json:"max_members"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewStudyGroupResponse maps the model into its wire shape.
func NewStudyGroupResponse(group models.StudyGroup) StudyGroupResponse {
	return StudyGroupResponse{
		ID:         group.ID,
		Name:       group.Name,
		InviteCode: group.InviteCode,
		CreatorID:  group.CreatorID,
		MaxMembers: group.MaxMembers,
		CreatedAt:  group.CreatedAt,
	}
}

// NewStudyGroupResponseSlice maps a slice of models into wire shapes.
func NewStudyGroupResponseSlice(groups []models.StudyGroup) []StudyGroupResponse {
	responses := make([]StudyGroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, NewStudyGroupResponse(group))
	}
	return responses
}

// ChatMessageResponse is the wire shape of a chat message.
type ChatMessageResponse struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	MessageText string    `json:"message_text"`
	MessageType string    `json:"message_type"`
	EmojiCode   string    `json:"emoji_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewChatMessageResponse maps the model into its wire shape.
func NewChatMessageResponse(message models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:          message.ID,
		GroupID:     message.GroupID,
		SenderID:    message.SenderID,
		MessageText: message.MessageText,
		MessageType: message.MessageType,
		EmojiCode:   message.EmojiCode,
		CreatedAt:   message.CreatedAt,
	}
}

// NewChatMessageResponseSlice maps a slice of models into wire shapes.
func NewChatMessageResponseSlice(messages []models.ChatMessage) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewChatMessageResponse(message))
	}
	return responses
}
