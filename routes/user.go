package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegisterCandidate creates a candidate account.
func RegisterCandidate(ctx iris.Context) {
	var userInput RegisterCandidateInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Username)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateUsernameAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	avatarURL := uploadAvatar(userInput.Avatar)

	newUser := models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Username:  strings.ToLower(userInput.Username),
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
		AvatarURL: avatarURL,
		Role:      models.RoleCandidate,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

// RegisterRecruiter creates a recruiter account together with its company and
// workplace images in one transaction. Each uploaded image goes through the
// trust verification pipeline.
func RegisterRecruiter(ctx iris.Context) {
	var userInput RegisterRecruiterInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Username)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateUsernameAlreadyRegistered(ctx)
		return
	}

	var taxCodeTaken int64
	if err := storage.DB.Model(&models.Company{}).Where("tax_code = ?", userInput.TaxCode).Count(&taxCodeTaken).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if taxCodeTaken > 0 {
		utils.CreateConflict(ctx, "Tax code already registered.")
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	avatarURL := uploadAvatar(userInput.Avatar)

	newUser := models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Username:  strings.ToLower(userInput.Username),
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
		AvatarURL: avatarURL,
		Role:      models.RoleRecruiter,
	}

	var images []models.CompanyImage
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		company := models.Company{
			UserID:      newUser.ID,
			Name:        userInput.CompanyName,
			TaxCode:     userInput.TaxCode,
			Description: userInput.Description,
			Location:    userInput.Location,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		for _, imageSrc := range userInput.Images {
			url := imageSrc
			if !strings.Contains(url, "res.cloudinary.com") {
				url = storage.UploadBase64File(imageSrc, "companies/"+uuid.NewString())
			}
			if url == "" {
				continue
			}
			image := models.CompanyImage{CompanyID: company.ID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			images = append(images, image)
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Trust verification is best-effort and must not delay registration.
	for i := range images {
		image := images[i]
		go Verifier.VerifyCompanyImage(storage.DB, &image)
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid username or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Username)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GetCurrentUser returns the authenticated user's profile, with the company
// preloaded for recruiters.
func GetCurrentUser(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	query := storage.DB
	if role, ok := ctx.Values().Get("role").(models.Role); ok && role == models.RoleRecruiter {
		query = query.Preload("Company").Preload("Company.Images")
	}
	if err := query.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"user": &user})
}

// UpdateProfile lets a user change their own name, avatar and skills.
// Role is immutable after registration.
func UpdateProfile(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" {
		user.Email = strings.ToLower(input.Email)
	}
	if input.Avatar != "" {
		if url := uploadAvatar(input.Avatar); url != "" {
			user.AvatarURL = url
		}
	}
	if input.Skills != nil {
		skillsJSON, jsonErr := json.Marshal(input.Skills)
		if jsonErr == nil {
			user.Skills = datatypes.JSON(skillsJSON)
		}
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"user": &user})
}

func getAndHandleUserExists(user *models.User, username string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("username = ?", strings.ToLower(username)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		if errors.Is(userExistsQuery.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytePassword := []byte(password)
	hash, err := bcrypt.GenerateFromPassword(bytePassword, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func uploadAvatar(avatar string) string {
	if avatar == "" {
		return ""
	}
	if strings.Contains(avatar, "res.cloudinary.com") {
		return avatar
	}
	return storage.UploadBase64File(avatar, "avatars/"+uuid.NewString())
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"username":     user.Username,
		"email":        user.Email,
		"role":         user.Role,
		"avatarURL":    user.AvatarURL,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterCandidateInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Username  string `json:"username" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Avatar    string `json:"avatar"`
}

type RegisterRecruiterInput struct {
	FirstName   string   `json:"firstName" validate:"required,max=256"`
	LastName    string   `json:"lastName" validate:"required,max=256"`
	Username    string   `json:"username" validate:"required,max=256"`
	Email       string   `json:"email" validate:"required,max=256,email"`
	Password    string   `json:"password" validate:"required,min=8,max=256"`
	Avatar      string   `json:"avatar"`
	CompanyName string   `json:"companyName" validate:"required,max=256"`
	TaxCode     string   `json:"taxCode" validate:"required,max=20"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required,max=256"`
	Images      []string `json:"images" validate:"required,min=1"`
}

type LoginUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar"`
	Skills    []string `json:"skills"`
}
