package main

import (
	"log"
	"os"

	"github.com/Nguyeniris123/JobApp/routes"
	"github.com/Nguyeniris123/JobApp/services"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeCloudinary()

	routes.Verifier = services.NewImageVerifier(services.NewGoogleVisionClassifier())
	routes.Notifier = services.NewNotificationService(&services.SMTPMailer{})

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/users")
	{
		user.Post("/candidate/register", routes.RegisterCandidate)
		user.Post("/recruiter/register", routes.RegisterRecruiter)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/current", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.GetCurrentUser)
		user.Patch("/current", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.UpdateProfile)
	}

	company := app.Party("/api/companies")
	{
		company.Get("/{id:uint}", routes.GetCompany)
		company.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.UpdateCompany)
		company.Post("/{id:uint}/images", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.AddCompanyImages)
	}

	jobPost := app.Party("/api/jobposts")
	{
		jobPost.Get("/", routes.ListJobPosts)
		jobPost.Get("/{id:uint}", routes.GetJobPost)
		jobPost.Post("/", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.CreateJobPost)
		jobPost.Get("/recruiter", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.RecruiterJobPosts)
		jobPost.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.UpdateJobPost)
		jobPost.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.DeleteJobPost)
	}

	application := app.Party("/api/applications")
	{
		application.Post("/", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.CreateApplication)
		application.Get("/", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.ListApplications)
		application.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.GetApplication)
		application.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.UpdateApplication)
		application.Patch("/{id:uint}/accept", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.AcceptApplication)
		application.Patch("/{id:uint}/reject", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.RejectApplication)
	}

	follow := app.Party("/api/follows")
	{
		follow.Post("/", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.CreateFollow)
		follow.Get("/", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.ListFollows)
		follow.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.DeleteFollow)
		follow.Get("/recruiter-followers", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.RecruiterFollowers)
	}

	review := app.Party("/api/reviews")
	{
		review.Post("/recruiters", accessTokenVerifierMiddleware, utils.CandidateOnlyMiddleware, routes.CreateRecruiterReview)
		review.Post("/candidates", accessTokenVerifierMiddleware, utils.RecruiterOnlyMiddleware, routes.CreateCandidateReview)
		review.Get("/recruiter/{id:uint}/candidate-reviews", routes.ListRecruiterReviews)
		review.Get("/candidate/{id:uint}/recruiter-reviews", routes.ListCandidateReviews)
		review.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.DeleteReview)
	}

	verification := app.Party("/api/verification-documents")
	{
		verification.Post("/", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.SubmitVerificationDocument)
		verification.Get("/mine", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.GetMyVerificationDocument)
		verification.Get("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.AdminListVerificationDocuments)
		verification.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.AdminReviewVerificationDocument)
	}

	notification := app.Party("/api/notifications")
	{
		notification.Get("/", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.ListNotifications)
		notification.Patch("/{id:uint}/read", accessTokenVerifierMiddleware, utils.AuthContextMiddleware, routes.MarkNotificationRead)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Println("Starting server on port", port)
	app.Listen(":" + port)
}
