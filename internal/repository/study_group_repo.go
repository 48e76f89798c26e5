package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// StudyGroupRepository defines persistence operations for study groups and
// their memberships.
type StudyGroupRepository interface {
	Create(ctx context.Context, group *models.StudyGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (models.StudyGroup, error)
	GetByInviteCode(ctx context.Context, code string) (models.StudyGroup, error)
	Join(ctx context.Context, code string, studentID uuid.UUID) (models.StudyGroup, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.StudyGroup, error)
	IsActiveMember(ctx context.Context, groupID, studentID uuid.UUID) (bool, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

type studyGroupRepository struct {
	db *gorm.DB
}

// NewStudyGroupRepository instantiates a GORM-backed repository.
func NewStudyGroupRepository(db *gorm.DB) StudyGroupRepository {
	return &studyGroupRepository{db: db}
}

// Create inserts the group together with its creator membership.
func (r *studyGroupRepository) Create(ctx context.Context, group *models.StudyGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := models.GroupMember{
			GroupID:   group.ID,
			StudentID: group.CreatorID,
			Role:      models.GroupRoleCreator,
			IsActive:  true,
			JoinedAt:  time.Now(),
		}

		return tx.Create(&member).Error
	})
}

func (r *studyGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (models.StudyGroup, error) {
	var group models.StudyGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return models.StudyGroup{}, err
	}

	return group, nil
}

func (r *studyGroupRepository) GetByInviteCode(ctx context.Context, code string) (models.StudyGroup, error) {
	var group models.StudyGroup
	if err := r.db.WithContext(ctx).First(&group, "invite_code = ?", code).Error; err != nil {
		return models.StudyGroup{}, err
	}

	return group, nil
}

// Join admits a student through an invite code inside a transaction. The group
// row is locked on postgres so concurrent joins cannot both pass the capacity
// check; other dialects fall back to transaction isolation.
func (r *studyGroupRepository) Join(ctx context.Context, code string, studentID uuid.UUID) (models.StudyGroup, error) {
	var group models.StudyGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := query.First(&group, "invite_code = ?", code).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND student_id = ? AND is_active = ?", group.ID, studentID, true).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateMember
		}

		var active int64
		err = tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND is_active = ?", group.ID, true).
			Count(&active).Error
		if err != nil {
			return err
		}

		capacity := group.MaxMembers
		if capacity <= 0 {
			capacity = models.DefaultGroupCapacity
		}
		if active >= int64(capacity) {
			return ErrGroupFull
		}

		member := models.GroupMember{
			GroupID:   group.ID,
			StudentID: studentID,
			Role:      models.GroupRoleMember,
			IsActive:  true,
			JoinedAt:  time.Now(),
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		return models.StudyGroup{}, err
	}

	return group, nil
}

func (r *studyGroupRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.StudyGroup, error) {
	var groups []models.StudyGroup
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = study_groups.id").
		Where("group_members.student_id = ? AND group_members.is_active = ?", studentID, true).
		Order("study_groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *studyGroupRepository) IsActiveMember(ctx context.Context, groupID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND student_id = ? AND is_active = ?", groupID, studentID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *studyGroupRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StudyGroup{}).
		Where("invite_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
