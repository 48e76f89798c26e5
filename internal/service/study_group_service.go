package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/dto"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

const (
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	chatHistoryLimit   = 100
)

// Study group errors surfaced to handlers.
var (
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrGroupFull         = errors.New("group is full")
	ErrAlreadyMember     = errors.New("student is already a member")
	ErrNotGroupMember    = errors.New("not a member of this group")
	ErrGroupNotFound     = errors.New("study group not found")
)

// StudyGroupService exposes group lifecycle and chat use cases.
type StudyGroupService interface {
	Create(ctx context.Context, studentID uuid.UUID, payload dto.CreateGroupRequest) (dto.StudyGroupResponse, error)
	Join(ctx context.Context, studentID uuid.UUID, payload dto.JoinGroupRequest) (dto.StudyGroupResponse, error)
	List(ctx context.Context, studentID uuid.UUID) ([]dto.StudyGroupResponse, error)
	SendChat(ctx context.Context, groupID, studentID uuid.UUID, payload dto.SendChatRequest) (dto.ChatMessageResponse, error)
	ChatHistory(ctx context.Context, groupID, studentID uuid.UUID) ([]dto.ChatMessageResponse, error)
}

type studyGroupService struct {
	groups      repository.StudyGroupRepository
	chat        repository.ChatRepository
	nats        *nats.Conn
	natsSubject string
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewStudyGroupService builds a new study group service. The NATS connection
// is optional; when nil, chat events are only persisted.
func NewStudyGroupService(
	groups repository.StudyGroupRepository,
	chat repository.ChatRepository,
	natsConn *nats.Conn,
	validate *validator.Validate,
	logger zerolog.Logger,
) StudyGroupService {
	return &studyGroupService{
		groups:      groups,
		chat:        chat,
		nats:        natsConn,
		natsSubject: "proxilearn.studygroups.chat",
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "study_group_service").Logger(),
	}
}

func (s *studyGroupService) Create(ctx context.Context, studentID uuid.UUID, payload dto.CreateGroupRequest) (dto.StudyGroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudyGroupResponse{}, err
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return dto.StudyGroupResponse{}, err
	}

	group := models.StudyGroup{
		Name:       strings.TrimSpace(payload.Name),
		InviteCode: code,
		CreatorID:  studentID,
		MaxMembers: models.DefaultGroupCapacity,
	}

	if err := s.groups.Create(ctx, &group); err != nil {
		return dto.StudyGroupResponse{}, err
	}

	s.logger.Info().
		Str("group_id", group.ID.String()).
		Str("invite_code", group.InviteCode).
		Msg("study group created")

	return dto.NewStudyGroupResponse(group), nil
}

func (s *studyGroupService) Join(ctx context.Context, studentID uuid.UUID, payload dto.JoinGroupRequest) (dto.StudyGroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudyGroupResponse{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.InviteCode))

	group, err := s.groups.Join(ctx, code, studentID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.StudyGroupResponse{}, ErrInvalidInviteCode
		case errors.Is(err, repository.ErrGroupFull):
			return dto.StudyGroupResponse{}, ErrGroupFull
		case errors.Is(err, repository.ErrDuplicateMember):
			return dto.StudyGroupResponse{}, ErrAlreadyMember
		default:
			return dto.StudyGroupResponse{}, err
		}
	}

	s.logger.Info().
		Str("group_id", group.ID.String()).
		Str("student_id", studentID.String()).
		Msg("student joined study group")

	return dto.NewStudyGroupResponse(group), nil
}

func (s *studyGroupService) List(ctx context.Context, studentID uuid.UUID) ([]dto.StudyGroupResponse, error) {
	groups, err := s.groups.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudyGroupResponseSlice(groups), nil
}

func (s *studyGroupService) SendChat(ctx context.Context, groupID, studentID uuid.UUID, payload dto.SendChatRequest) (dto.ChatMessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatMessageResponse{}, err
	}

	if err := s.requireMembership(ctx, groupID, studentID); err != nil {
		return dto.ChatMessageResponse{}, err
	}

	messageType := payload.MessageType
	if messageType == "" {
		messageType = "text"
	}

	message := models.ChatMessage{
		GroupID:     groupID,
		SenderID:    studentID,
		MessageText: s.sanitizer.Sanitize(payload.MessageText),
		MessageType: messageType,
		EmojiCode:   payload.EmojiCode,
	}

	if err := s.chat.Insert(ctx, &message); err != nil {
		return dto.ChatMessageResponse{}, err
	}

	response := dto.NewChatMessageResponse(message)
	s.publishChatEvent(response)

	return response, nil
}

func (s *studyGroupService) ChatHistory(ctx context.Context, groupID, studentID uuid.UUID) ([]dto.ChatMessageResponse, error) {
	if err := s.requireMembership(ctx, groupID, studentID); err != nil {
		return nil, err
	}

	messages, err := s.chat.Latest(ctx, groupID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	return dto.NewChatMessageResponseSlice(messages), nil
}

func (s *studyGroupService) requireMembership(ctx context.Context, groupID, studentID uuid.UUID) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	member, err := s.groups.IsActiveMember(ctx, groupID, studentID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotGroupMember
	}

	return nil
}

func (s *studyGroupService) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}

		exists, err := s.groups.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not allocate a unique invite code")
}

func (s *studyGroupService) publishChatEvent(message dto.ChatMessageResponse) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(struct {
		Message dto.ChatMessageResponse `json:"message"`
		SentAt  time.Time               `json:"sent_at"`
	}{Message: message, SentAt: time.Now()})
	if err != nil {
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish chat event")
	}
}

func randomInviteCode() (string, error) {
	buffer := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}

	code := make([]byte, inviteCodeLength)
	for i, b := range buffer {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}

	return string(code), nil
}
