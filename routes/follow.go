package routes

import (
	"errors"
	"strings"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateFollow subscribes the requesting candidate to a recruiter. The
// composite unique index keeps the pair unique under concurrent requests.
func CreateFollow(ctx iris.Context) {
	actor := authContext(ctx)

	var input CreateFollowInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.RecruiterID == actor.UserID {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "You cannot follow yourself.", ctx)
		return
	}

	var recruiter models.User
	if err := storage.DB.First(&recruiter, input.RecruiterID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if recruiter.Role != models.RoleRecruiter {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "You can only follow recruiters.", ctx)
		return
	}

	follow := models.Follow{
		FollowerID:  actor.UserID,
		RecruiterID: recruiter.ID,
	}

	if err := storage.DB.Create(&follow).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateConflict(ctx, "You already follow this recruiter.")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"follow": follow})
}

// ListFollows returns the recruiters the requesting candidate follows.
func ListFollows(ctx iris.Context) {
	actor := authContext(ctx)

	var follows []models.Follow
	if err := storage.DB.Preload("Recruiter").
		Where("follower_id = ?", actor.UserID).
		Find(&follows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"follows": follows})
}

// DeleteFollow unfollows a recruiter. Only the follower can remove their own
// subscription.
func DeleteFollow(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	actor := authContext(ctx)

	var follow models.Follow
	if err := storage.DB.First(&follow, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if follow.FollowerID != actor.UserID {
		utils.CreateForbidden(ctx, "You can only remove your own follows.")
		return
	}

	// Hard delete: a soft-deleted row would keep occupying the composite
	// unique index and block the candidate from ever re-following.
	if err := storage.DB.Unscoped().Delete(&follow).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// RecruiterFollowers lets a recruiter see the candidates following them.
func RecruiterFollowers(ctx iris.Context) {
	actor := authContext(ctx)

	var follows []models.Follow
	if err := storage.DB.Preload("Follower").
		Where("recruiter_id = ?", actor.UserID).
		Find(&follows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	followers := make([]*models.User, 0, len(follows))
	for i := range follows {
		followers = append(followers, &follows[i].Follower)
	}

	ctx.JSON(iris.Map{"followers": followers})
}

type CreateFollowInput struct {
	RecruiterID uint `json:"recruiterID" validate:"required"`
}
