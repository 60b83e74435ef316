// file: internals/features/wisuda/awards/dto/award_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tahfidz_backend/internals/features/wisuda/awards/model"
	svc "tahfidz_backend/internals/features/wisuda/awards/service"
)

/* =========================================================
   Event
   ========================================================= */

type CreateEventRequest struct {
	Name     string     `json:"award_event_name" validate:"required,max=160"`
	Date     *time.Time `json:"award_event_date" validate:"omitempty"`
	IsActive *bool      `json:"award_event_is_active" validate:"omitempty"`
}

type UpdateEventRequest struct {
	Name     *string    `json:"award_event_name" validate:"omitempty,max=160"`
	Date     *time.Time `json:"award_event_date" validate:"omitempty"`
	IsActive *bool      `json:"award_event_is_active" validate:"omitempty"`
}

func (r *CreateEventRequest) ToInput() svc.EventInput {
	return svc.EventInput{Name: strings.TrimSpace(r.Name), Date: r.Date, IsActive: r.IsActive}
}

func (r *UpdateEventRequest) ToInput() svc.EventInput {
	in := svc.EventInput{Date: r.Date, IsActive: r.IsActive}
	if r.Name != nil {
		in.Name = strings.TrimSpace(*r.Name)
	}
	return in
}

/* =========================================================
   Category
   ========================================================= */

type CreateCategoryRequest struct {
	EventID           uuid.UUID  `json:"award_category_event_id" validate:"required"`
	GroupName         string     `json:"award_category_group_name" validate:"omitempty,max=120"`
	Name              string     `json:"award_category_name" validate:"required,max=120"`
	Quota             int        `json:"award_category_quota" validate:"required,gt=0"`
	RewardDescription *string    `json:"award_category_reward_description" validate:"omitempty"`
	TemplateID        *uuid.UUID `json:"award_category_template_id" validate:"omitempty"`
	IsActive          *bool      `json:"award_category_is_active" validate:"omitempty"`
}

func (r *CreateCategoryRequest) ToInput() svc.CategoryInput {
	return svc.CategoryInput{
		EventID:           r.EventID,
		GroupName:         r.GroupName,
		Name:              r.Name,
		Quota:             r.Quota,
		RewardDescription: r.RewardDescription,
		TemplateID:        r.TemplateID,
		IsActive:          r.IsActive,
	}
}

type UpdateCategoryRequest struct {
	GroupName         *string    `json:"award_category_group_name" validate:"omitempty,max=120"`
	Name              *string    `json:"award_category_name" validate:"omitempty,max=120"`
	Quota             *int       `json:"award_category_quota" validate:"omitempty,gt=0"`
	RewardDescription *string    `json:"award_category_reward_description" validate:"omitempty"`
	TemplateID        *uuid.UUID `json:"award_category_template_id" validate:"omitempty"`
	IsActive          *bool      `json:"award_category_is_active" validate:"omitempty"`
}

func (r *UpdateCategoryRequest) ToPatch() svc.CategoryPatch {
	return svc.CategoryPatch{
		GroupName:         r.GroupName,
		Name:              r.Name,
		Quota:             r.Quota,
		RewardDescription: r.RewardDescription,
		TemplateID:        r.TemplateID,
		IsActive:          r.IsActive,
	}
}

type CategoryResponse struct {
	AwardCategoryID                uuid.UUID  `json:"award_category_id"`
	AwardCategoryEventID           uuid.UUID  `json:"award_category_event_id"`
	AwardCategoryGroupName         string     `json:"award_category_group_name"`
	AwardCategoryName              string     `json:"award_category_name"`
	AwardCategoryQuota             int        `json:"award_category_quota"`
	AwardCategoryFilled            int        `json:"award_category_filled"`
	AwardCategoryRemaining         int        `json:"award_category_remaining"`
	AwardCategoryRewardDescription *string    `json:"award_category_reward_description,omitempty"`
	AwardCategoryTemplateID        *uuid.UUID `json:"award_category_template_id,omitempty"`
	AwardCategoryIsActive          bool       `json:"award_category_is_active"`
}

func FromCategory(m *model.AwardCategoryModel) CategoryResponse {
	return CategoryResponse{
		AwardCategoryID:                m.AwardCategoryID,
		AwardCategoryEventID:           m.AwardCategoryEventID,
		AwardCategoryGroupName:         m.AwardCategoryGroupName,
		AwardCategoryName:              m.AwardCategoryName,
		AwardCategoryQuota:             m.AwardCategoryQuota,
		AwardCategoryFilled:            m.AwardCategoryFilled,
		AwardCategoryRemaining:         m.AwardCategoryQuota - m.AwardCategoryFilled,
		AwardCategoryRewardDescription: m.AwardCategoryRewardDescription,
		AwardCategoryTemplateID:        m.AwardCategoryTemplateID,
		AwardCategoryIsActive:          m.AwardCategoryIsActive,
	}
}

func FromCategories(rows []model.AwardCategoryModel) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromCategory(&rows[i]))
	}
	return out
}

/* =========================================================
   Recipient
   ========================================================= */

type CreateRecipientRequest struct {
	EventID      uuid.UUID  `json:"event_id" validate:"required"`
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
	CategoryID   uuid.UUID  `json:"category_id" validate:"required"`
	SourceExamID *uuid.UUID `json:"source_exam_id" validate:"omitempty"`
}

func (r *CreateRecipientRequest) ToInput(approverID uuid.UUID) svc.CreateRecipientInput {
	return svc.CreateRecipientInput{
		EventID:      r.EventID,
		StudentID:    r.StudentID,
		CategoryID:   r.CategoryID,
		SourceExamID: r.SourceExamID,
		ApproverID:   approverID,
	}
}

type UpdateRecipientCategoryRequest struct {
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}
