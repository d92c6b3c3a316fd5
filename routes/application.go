package routes

import (
	"errors"
	"strings"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/services"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateApplication submits a candidate's application for a job post.
// One application per (applicant, job) pair; the composite unique index is
// the backstop against concurrent duplicate submissions.
func CreateApplication(ctx iris.Context) {
	actor := authContext(ctx)

	var input CreateApplicationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var jobPost models.JobPost
	if err := storage.DB.Where("id = ? AND active = ?", input.JobID, true).First(&jobPost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var existing models.Application
	dupQuery := storage.DB.Where("applicant_id = ? AND job_id = ?", actor.UserID, jobPost.ID).Limit(1).Find(&existing)
	if dupQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if dupQuery.RowsAffected > 0 {
		utils.CreateConflict(ctx, "You have already applied to this job.")
		return
	}

	cvURL := input.CV
	if !strings.Contains(cvURL, "res.cloudinary.com") {
		cvURL = storage.UploadBase64File(input.CV, "cv/"+uuid.NewString())
	}
	if cvURL == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "CV upload failed.", ctx)
		return
	}

	application := models.Application{
		ApplicantID: actor.UserID,
		JobID:       jobPost.ID,
		CVURL:       cvURL,
		Status:      models.ApplicationPending,
	}

	if err := storage.DB.Create(&application).Error; err != nil {
		// Concurrent duplicate submission lost the race on the unique index.
		if strings.Contains(err.Error(), "duplicate") || errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateConflict(ctx, "You have already applied to this job.")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"application": application})
}

// ListApplications returns the caller's view of applications: candidates see
// their own, recruiters see applications to their own job posts.
func ListApplications(ctx iris.Context) {
	actor := authContext(ctx)

	var applications []models.Application
	var err error

	switch actor.Role {
	case models.RoleCandidate:
		err = storage.DB.Preload("Job").Preload("Job.Recruiter").
			Where("applicant_id = ?", actor.UserID).
			Order("created_at DESC").
			Find(&applications).Error
	case models.RoleRecruiter:
		err = storage.DB.Preload("Job").Preload("Applicant").
			Joins("JOIN job_posts ON job_posts.id = applications.job_id").
			Where("job_posts.recruiter_id = ?", actor.UserID).
			Order("applications.created_at DESC").
			Find(&applications).Error
	default:
		utils.CreateForbidden(ctx, "Admins have no application inbox.")
		return
	}

	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"applications": applications})
}

// GetApplication returns a single application if the caller is the applicant
// or the recruiter owning the job.
func GetApplication(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	actor := authContext(ctx)

	var application models.Application
	if err := storage.DB.Preload("Job").Preload("Applicant").First(&application, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !canViewApplication(actor, &application) {
		utils.CreateForbidden(ctx, "You have no access to this application.")
		return
	}

	ctx.JSON(iris.Map{"application": application})
}

// UpdateApplication lets the applicant replace the CV on their own pending
// application. Status and job are not writable here: sending either field is
// rejected outright.
func UpdateApplication(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	actor := authContext(ctx)

	var input UpdateApplicationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Status != nil {
		utils.CreateForbidden(ctx, "Candidates cannot change the application status.")
		return
	}
	if input.JobID != nil {
		utils.CreateForbidden(ctx, "The job of an application cannot be changed.")
		return
	}

	var application models.Application
	if err := storage.DB.First(&application, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleCandidate, application.ApplicantID); err != nil {
		utils.CreateForbidden(ctx, "You can only update your own applications.")
		return
	}

	if input.CV != "" {
		cvURL := input.CV
		if !strings.Contains(cvURL, "res.cloudinary.com") {
			cvURL = storage.UploadBase64File(input.CV, "cv/"+uuid.NewString())
		}
		if cvURL == "" {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "CV upload failed.", ctx)
			return
		}
		application.CVURL = cvURL
	}

	if err := storage.DB.Save(&application).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"application": application})
}

// AcceptApplication transitions a pending application to accepted. Recruiter
// owning the job only.
func AcceptApplication(ctx iris.Context) {
	decideApplication(ctx, services.ActionAccept)
}

// RejectApplication transitions a pending application to rejected. Recruiter
// owning the job only.
func RejectApplication(ctx iris.Context) {
	decideApplication(ctx, services.ActionReject)
}

func decideApplication(ctx iris.Context, action services.ApplicationAction) {
	id := ctx.Params().GetUintDefault("id", 0)
	actor := authContext(ctx)

	var application models.Application
	if err := storage.DB.Preload("Job").First(&application, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleRecruiter, application.Job.RecruiterID); err != nil {
		utils.CreateForbidden(ctx, "You can only decide applications to your own job posts.")
		return
	}

	newStatus, err := services.Transition(application.Status, action, actor.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyDecided):
			utils.CreateConflict(ctx, "This application has already been decided.")
		case errors.Is(err, services.ErrTransitionForbidden):
			utils.CreateForbidden(ctx, "Your role cannot change the application status.")
		default:
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	// Compare-and-set: a concurrent decision that got there first leaves
	// zero affected rows instead of overwriting the terminal state.
	res := storage.DB.Model(&models.Application{}).
		Where("id = ? AND status = ?", application.ID, models.ApplicationPending).
		Update("status", newStatus)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateConflict(ctx, "This application has already been decided.")
		return
	}

	application.Status = newStatus
	go Notifier.NotifyApplicationDecision(storage.DB, &application, newStatus)

	ctx.JSON(iris.Map{"application": application})
}

func canViewApplication(actor services.AuthContext, application *models.Application) bool {
	switch actor.Role {
	case models.RoleCandidate:
		return application.ApplicantID == actor.UserID
	case models.RoleRecruiter:
		return application.Job.RecruiterID == actor.UserID
	}
	return false
}

type CreateApplicationInput struct {
	JobID uint   `json:"jobID" validate:"required"`
	CV    string `json:"cv" validate:"required"`
}

type UpdateApplicationInput struct {
	CV     string  `json:"cv"`
	Status *string `json:"status"`
	JobID  *uint   `json:"jobID"`
}
