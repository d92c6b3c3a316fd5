package routes

import (
	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/services"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ListJobPosts is the public job feed with filters and pagination.
func ListJobPosts(ctx iris.Context) {
	query := filterJobPosts(ctx, storage.DB.Model(&models.JobPost{}).Where("active = ?", true))

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var jobPosts []models.JobPost
	if err := query.Preload("Recruiter").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&jobPosts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, jobPosts, page, perPage, total)
}

// GetJobPost returns a single job post.
func GetJobPost(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var jobPost models.JobPost
	if err := storage.DB.Preload("Recruiter").First(&jobPost, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"jobPost": jobPost})
}

// CreateJobPost creates a job post owned by the requesting recruiter and
// broadcasts it to followers (best-effort, detached from the request).
func CreateJobPost(ctx iris.Context) {
	actor := authContext(ctx)

	var input JobPostInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	jobPost := models.JobPost{
		RecruiterID:  actor.UserID,
		Title:        input.Title,
		Specialized:  input.Specialized,
		Description:  input.Description,
		Salary:       input.Salary,
		WorkingHours: input.WorkingHours,
		Location:     input.Location,
		Active:       true,
	}

	if err := storage.DB.Create(&jobPost).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go Notifier.NotifyFollowersOfJobPost(storage.DB, &jobPost)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"jobPost": jobPost})
}

// UpdateJobPost lets the owning recruiter edit their post. The owner itself
// is immutable.
func UpdateJobPost(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var jobPost models.JobPost
	if err := storage.DB.First(&jobPost, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := authContext(ctx)
	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleRecruiter, jobPost.RecruiterID); err != nil {
		utils.CreateForbidden(ctx, "You can only update your own job posts.")
		return
	}

	var input JobPostInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	jobPost.Title = input.Title
	jobPost.Specialized = input.Specialized
	jobPost.Description = input.Description
	jobPost.Salary = input.Salary
	jobPost.WorkingHours = input.WorkingHours
	jobPost.Location = input.Location

	if err := storage.DB.Save(&jobPost).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"jobPost": jobPost})
}

// DeleteJobPost soft-deactivates the post so existing applications keep their
// job reference.
func DeleteJobPost(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var jobPost models.JobPost
	if err := storage.DB.First(&jobPost, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := authContext(ctx)
	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleRecruiter, jobPost.RecruiterID); err != nil {
		utils.CreateForbidden(ctx, "You can only delete your own job posts.")
		return
	}

	if err := storage.DB.Model(&jobPost).Update("active", false).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// RecruiterJobPosts lists the requesting recruiter's own posts, with the same
// filters as the public feed.
func RecruiterJobPosts(ctx iris.Context) {
	actor := authContext(ctx)

	query := filterJobPosts(ctx, storage.DB.Model(&models.JobPost{}).
		Where("recruiter_id = ? AND active = ?", actor.UserID, true))

	var jobPosts []models.JobPost
	if err := query.Find(&jobPosts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"jobPosts": jobPosts})
}

func filterJobPosts(ctx iris.Context, query *gorm.DB) *gorm.DB {
	if specialized := ctx.URLParam("specialized"); specialized != "" {
		query = query.Where("specialized ILIKE ?", "%"+specialized+"%")
	}
	if location := ctx.URLParam("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if salaryGte := ctx.URLParam("salary__gte"); salaryGte != "" {
		query = query.Where("salary >= ?", salaryGte)
	}
	if salaryLte := ctx.URLParam("salary__lte"); salaryLte != "" {
		query = query.Where("salary <= ?", salaryLte)
	}
	if hoursGte := ctx.URLParam("working_hours__gte"); hoursGte != "" {
		query = query.Where("working_hours >= ?", hoursGte)
	}
	if hoursLte := ctx.URLParam("working_hours__lte"); hoursLte != "" {
		query = query.Where("working_hours <= ?", hoursLte)
	}
	if search := ctx.URLParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR specialized ILIKE ? OR location ILIKE ?", like, like, like)
	}

	ordering := ctx.URLParamDefault("ordering", "created_at DESC")
	switch ordering {
	case "salary", "salary ASC":
		query = query.Order("salary ASC")
	case "-salary", "salary DESC":
		query = query.Order("salary DESC")
	case "created_at", "created_at ASC":
		query = query.Order("created_at ASC")
	default:
		query = query.Order("created_at DESC")
	}

	return query
}

type JobPostInput struct {
	Title        string  `json:"title" validate:"required,max=256"`
	Specialized  string  `json:"specialized" validate:"max=100"`
	Description  string  `json:"description" validate:"required"`
	Salary       float64 `json:"salary" validate:"min=0"`
	WorkingHours string  `json:"workingHours" validate:"max=50"`
	Location     string  `json:"location" validate:"max=256"`
}
