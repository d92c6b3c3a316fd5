package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// SubmitVerificationDocument uploads an identity document for manual admin
// review. One document per user, enforced by the unique index.
func SubmitVerificationDocument(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input SubmitVerificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	documentURL := input.Document
	if !strings.Contains(documentURL, "res.cloudinary.com") {
		documentURL = storage.UploadBase64File(input.Document, "verification_documents/"+uuid.NewString())
	}
	if documentURL == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Document upload failed.", ctx)
		return
	}

	document := models.VerificationDocument{
		UserID:      userID,
		DocumentURL: documentURL,
		Status:      models.VerificationPending,
	}

	if err := storage.DB.Create(&document).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateConflict(ctx, "You have already submitted a verification document.")
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"document": document})
}

// GetMyVerificationDocument returns the caller's document and its status.
func GetMyVerificationDocument(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var document models.VerificationDocument
	if err := storage.DB.Where("user_id = ?", userID).First(&document).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"document": document})
}

// AdminListVerificationDocuments lists documents for review, optionally
// filtered by status (default pending).
func AdminListVerificationDocuments(ctx iris.Context) {
	status := ctx.URLParamDefault("status", string(models.VerificationPending))

	var documents []models.VerificationDocument
	if err := storage.DB.Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&documents).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"documents": documents})
}

// AdminReviewVerificationDocument approves or rejects a pending document.
func AdminReviewVerificationDocument(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	adminID := ctx.Values().Get("userID").(uint)

	var input ReviewVerificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	newStatus := models.VerificationStatus(input.Status)
	if newStatus != models.VerificationApproved && newStatus != models.VerificationRejected {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "Status must be approved or rejected.", ctx)
		return
	}

	var document models.VerificationDocument
	if err := storage.DB.First(&document, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	document.Status = newStatus
	document.AdminNote = input.AdminNote
	document.ReviewedBy = &adminID
	document.ReviewedAt = &now

	if err := storage.DB.Save(&document).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"document": document})
}

type SubmitVerificationInput struct {
	Document string `json:"document" validate:"required"`
}

type ReviewVerificationInput struct {
	Status    string `json:"status" validate:"required"`
	AdminNote string `json:"adminNote" validate:"max=1000"`
}
