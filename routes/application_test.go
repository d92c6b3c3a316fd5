package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/utils"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// buildTestApp creates a minimal Iris app with the application routes and
// JWT verifier wired the same way as main.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	application := app.Party("/api/applications", accessTokenVerifierMiddleware)
	{
		application.Post("/", utils.CandidateOnlyMiddleware, CreateApplication)
		application.Patch("/{id:uint}", utils.CandidateOnlyMiddleware, UpdateApplication)
		application.Patch("/{id:uint}/accept", utils.RecruiterOnlyMiddleware, AcceptApplication)
		application.Patch("/{id:uint}/reject", utils.RecruiterOnlyMiddleware, RejectApplication)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role models.Role) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestApplicationDecisionRBAC(t *testing.T) {
	app := buildTestApp()

	// No token -> rejected before reaching the handler
	req := httptest.NewRequest(http.MethodPatch, "/api/applications/1/accept", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Candidate role cannot accept -> 403
	req2 := httptest.NewRequest(http.MethodPatch, "/api/applications/1/accept", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleCandidate))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate accepting, got %d", resp2.Code)
	}

	// Admin role cannot reject either -> 403
	req3 := httptest.NewRequest(http.MethodPatch, "/api/applications/1/reject", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleAdmin))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin rejecting, got %d", resp3.Code)
	}
}

func TestDuplicateApplicationConflicts(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp()

	// signTestToken issues tokens for user ID 1.
	candidate := models.User{Model: gorm.Model{ID: 1}, Username: "dev", Email: "dev@mail.test", Role: models.RoleCandidate}
	recruiter := models.User{Model: gorm.Model{ID: 2}, Username: "acme-hr", Email: "hr@acme.test", Role: models.RoleRecruiter}
	if err := db.Create(&candidate).Error; err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if err := db.Create(&recruiter).Error; err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	job := models.JobPost{RecruiterID: recruiter.ID, Title: "Backend engineer", Active: true}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("create job post: %v", err)
	}

	// An already-hosted CV URL skips the upload round-trip.
	body := fmt.Sprintf(`{"jobID":%d,"cv":"https://res.cloudinary.com/demo/cv.pdf"}`, job.ID)
	apply := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleCandidate))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		return resp
	}

	if resp := apply(); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for first application, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := apply(); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second application to the same job, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCandidateCannotTouchProtectedFields(t *testing.T) {
	app := buildTestApp()

	// A recruiter has no business on the CV-update endpoint -> 403
	req := httptest.NewRequest(http.MethodPatch, "/api/applications/1", strings.NewReader(`{"cv":"data:application/pdf;base64,Zm9v"}`))
	req.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleRecruiter))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for recruiter updating cv, got %d", resp.Code)
	}

	// A candidate sending a status change is rejected before any lookup -> 403
	req2 := httptest.NewRequest(http.MethodPatch, "/api/applications/1", strings.NewReader(`{"status":"accepted"}`))
	req2.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleCandidate))
	req2.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate changing status, got %d", resp2.Code)
	}

	// Same for an attempt to re-point the application at another job -> 403
	req3 := httptest.NewRequest(http.MethodPatch, "/api/applications/1", strings.NewReader(`{"jobID":42}`))
	req3.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleCandidate))
	req3.Header.Set("Content-Type", "application/json")
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate changing job, got %d", resp3.Code)
	}
}
