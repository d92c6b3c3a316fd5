package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/kataras/iris/v12"
)

func buildJobPostTestApp() *iris.Application {
	app := iris.New()

	jobPost := app.Party("/api/jobposts")
	{
		jobPost.Get("/", ListJobPosts)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func TestListJobPosts(t *testing.T) {
	db := setupTestDB(t)
	app := buildJobPostTestApp()

	recruiter := models.User{Username: "acme-hr", Email: "hr@acme.test", Role: models.RoleRecruiter}
	if err := db.Create(&recruiter).Error; err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	active := models.JobPost{RecruiterID: recruiter.ID, Title: "Backend engineer", Active: true}
	inactive := models.JobPost{RecruiterID: recruiter.ID, Title: "Closed position", Active: false}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("create job post: %v", err)
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create job post: %v", err)
	}
	// Active has a gorm default of true, so a zero-value false is dropped on
	// create; persist it explicitly.
	if err := db.Model(&inactive).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate job post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobposts", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from job feed, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Backend engineer") {
		t.Fatalf("expected active post in feed, got %s", body)
	}
	if strings.Contains(body, "Closed position") {
		t.Fatalf("inactive post must not appear in feed, got %s", body)
	}
}

func TestListJobPostsStorageFailure(t *testing.T) {
	db := setupTestDB(t)
	app := buildJobPostTestApp()

	// Simulate a broken storage layer: the feed must answer 500, not a
	// bogus empty page.
	if err := db.Migrator().DropTable(&models.JobPost{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobposts", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when storage fails, got %d", resp.Code)
	}
}
