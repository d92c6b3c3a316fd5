package routes

import (
	"strings"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/services"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

// GetCompany returns a company's public profile with its images.
func GetCompany(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var company models.Company
	if err := storage.DB.Preload("Images").First(&company, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"company": company})
}

// UpdateCompany lets the owning recruiter change the company profile.
// IsVerified is not writable here; only the trust pipeline flips it.
func UpdateCompany(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var company models.Company
	if err := storage.DB.First(&company, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := authContext(ctx)
	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleRecruiter, company.UserID); err != nil {
		utils.CreateForbidden(ctx, "You can only update your own company.")
		return
	}

	var input UpdateCompanyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Description != "" {
		company.Description = input.Description
	}
	if input.Location != "" {
		company.Location = input.Location
	}

	if err := storage.DB.Save(&company).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"company": company})
}

// AddCompanyImages uploads workplace images for the recruiter's own company
// and kicks off trust verification for each. Verification runs detached from
// the request: a classifier outage never fails the upload.
func AddCompanyImages(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var company models.Company
	if err := storage.DB.First(&company, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	actor := authContext(ctx)
	if err := services.Allow(services.PolicyRoleOwner, actor, models.RoleRecruiter, company.UserID); err != nil {
		utils.CreateForbidden(ctx, "You can only add images to your own company.")
		return
	}

	var input AddCompanyImagesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var created []models.CompanyImage
	for _, imageSrc := range input.Images {
		url := imageSrc
		if !strings.Contains(url, "res.cloudinary.com") {
			url = storage.UploadBase64File(imageSrc, "companies/"+uuid.NewString())
		}
		if url == "" {
			continue
		}

		image := models.CompanyImage{CompanyID: company.ID, URL: url}
		if err := storage.DB.Create(&image).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		created = append(created, image)
	}

	for i := range created {
		image := created[i]
		go Verifier.VerifyCompanyImage(storage.DB, &image)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"images": created})
}

func authContext(ctx iris.Context) services.AuthContext {
	actor := services.AuthContext{}
	if v, ok := ctx.Values().Get("userID").(uint); ok {
		actor.UserID = v
	}
	if v, ok := ctx.Values().Get("role").(models.Role); ok {
		actor.Role = v
	}
	return actor
}

type UpdateCompanyInput struct {
	Name        string `json:"name" validate:"max=256"`
	Description string `json:"description"`
	Location    string `json:"location" validate:"max=256"`
}

type AddCompanyImagesInput struct {
	Images []string `json:"images" validate:"required,min=1"`
}
