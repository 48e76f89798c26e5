package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// ErrInvalidRecipient indicates the recipient id was not a valid identifier.
var ErrInvalidRecipient = errors.New("invalid recipient id")

// MessageService exposes direct messaging between users.
type MessageService interface {
	Send(ctx context.Context, senderID uuid.UUID, payload dto.SendMessageRequest) (dto.MessageResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID) error
}

type messageService struct {
	messages  repository.MessageRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMessageService builds a new message service.
func NewMessageService(
	messages repository.MessageRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) MessageService {
	return &messageService{
		messages:  messages,
		validator: validate,
		logger:    logger.With().Str("component", "message_service").Logger(),
	}
}

func (s *messageService) Send(ctx context.Context, senderID uuid.UUID, payload dto.SendMessageRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	recipientID, err := uuid.Parse(payload.RecipientID)
	if err != nil {
		return dto.MessageResponse{}, ErrInvalidRecipient
	}

	message := models.TeacherMessage{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     payload.Subject,
		MessageText: payload.MessageText,
	}

	if err := s.messages.Create(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}

	s.logger.Info().
		Str("message_id", message.ID.String()).
		Str("recipient_id", recipientID.String()).
		Msg("message sent")

	return dto.NewMessageResponse(message), nil
}

func (s *messageService) List(ctx context.Context, userID uuid.UUID) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewMessageResponseSlice(messages), nil
}

func (s *messageService) MarkRead(ctx context.Context, userID uuid.UUID) error {
	return s.messages.MarkReceivedRead(ctx, userID)
}
