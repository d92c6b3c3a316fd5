package routes

import (
	"errors"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/services"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/kataras/iris/v12"
)

// CreateRecruiterReview lets a candidate review the recruiter behind a
// company, provided an accepted application links the two.
func CreateRecruiterReview(ctx iris.Context) {
	actor := authContext(ctx)

	var input RecruiterReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	recruiter, err := services.CanReviewRecruiter(storage.DB, actor, input.CompanyID)
	if err != nil {
		handleEligibilityError(err, ctx)
		return
	}

	createReview(ctx, actor.UserID, recruiter.ID, input.Rating, input.Comment)
}

// CreateCandidateReview lets a recruiter review a candidate they accepted.
func CreateCandidateReview(ctx iris.Context) {
	actor := authContext(ctx)

	var input CandidateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	candidate, err := services.CanReviewCandidate(storage.DB, actor, input.CandidateID)
	if err != nil {
		handleEligibilityError(err, ctx)
		return
	}

	createReview(ctx, actor.UserID, candidate.ID, input.Rating, input.Comment)
}

// ListRecruiterReviews returns the reviews a recruiter received from
// candidates. Public read.
func ListRecruiterReviews(ctx iris.Context) {
	recruiterID := ctx.Params().GetUintDefault("id", 0)
	listReviewsFor(ctx, recruiterID, models.RoleCandidate)
}

// ListCandidateReviews returns the reviews a candidate received from
// recruiters. Public read.
func ListCandidateReviews(ctx iris.Context) {
	candidateID := ctx.Params().GetUintDefault("id", 0)
	listReviewsFor(ctx, candidateID, models.RoleRecruiter)
}

// DeleteReview removes a review; only its author may do so.
func DeleteReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	actor := authContext(ctx)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := services.Allow(services.PolicyOwnerOnly, actor, "", review.ReviewerID); err != nil {
		utils.CreateForbidden(ctx, "You can only delete your own reviews.")
		return
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func createReview(ctx iris.Context, reviewerID, reviewedUserID uint, rating int, comment string) {
	review := models.Review{
		ReviewerID:     reviewerID,
		ReviewedUserID: reviewedUserID,
		Rating:         rating,
		Comment:        comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"review": review})
}

// listReviewsFor loads reviews received by the user, written by reviewers of
// the given role, along with the average rating.
func listReviewsFor(ctx iris.Context, reviewedUserID uint, reviewerRole models.Role) {
	if reviewedUserID == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("Reviewer").
		Joins("JOIN users ON users.id = reviews.reviewer_id").
		Where("reviews.reviewed_user_id = ? AND users.role = ?", reviewedUserID, reviewerRole).
		Order("reviews.created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var totalRating float64
	for _, review := range reviews {
		totalRating += float64(review.Rating)
	}
	avgRating := 0.0
	if len(reviews) > 0 {
		avgRating = totalRating / float64(len(reviews))
	}

	ctx.JSON(iris.Map{
		"reviews":       reviews,
		"averageRating": avgRating,
		"reviewCount":   len(reviews),
	})
}

func handleEligibilityError(err error, ctx iris.Context) {
	var eligibilityErr *services.EligibilityError
	if errors.As(err, &eligibilityErr) {
		if eligibilityErr.Condition == "target" {
			utils.CreateError(iris.StatusNotFound, "Not Found", eligibilityErr.Message, ctx)
			return
		}
		ctx.StopWithProblem(
			iris.StatusBadRequest,
			iris.NewProblem().
				Title("Validation error").
				Detail(eligibilityErr.Message).
				Key("condition", eligibilityErr.Condition))
		return
	}
	utils.CreateInternalServerError(ctx)
}

type RecruiterReviewInput struct {
	CompanyID uint   `json:"companyID" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type CandidateReviewInput struct {
	CandidateID uint   `json:"candidateID" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"max=1000"`
}
