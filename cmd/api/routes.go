package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/talentbridge/jobboard/web"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.GetCORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(app.LoadSession())

	r.HTMLRender = web.MustRenderer()
	r.StaticFS("/static", http.FS(web.Static()))

	h := app.Handler
	r.NoRoute(h.NotFound)

	// pages
	r.GET("/", h.Home)
	r.GET("/jobs", h.Jobs)
	r.GET("/jobs/:id", h.JobDetail)
	r.POST("/jobs/:id/apply", h.Apply)
	r.POST("/jobs/:id/save", h.SaveJob)
	r.POST("/jobs/:id/unsave", h.UnsaveJob)
	r.GET("/employers", h.Employers)
	r.POST("/employers/shortlist", h.RequestShortlist)
	r.GET("/about", h.About)
	r.GET("/contact", h.Contact)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.POST("/logout", h.Logout)

	pages := r.Group("/")
	pages.Use(RequirePageAuth())
	{
		pages.GET("/candidates", h.Candidates)
		pages.POST("/candidates/applications/:id/withdraw", h.WithdrawOwnApplication)
		pages.GET("/employers/post-job", h.PostJobForm)
		pages.POST("/employers/post-job", h.PostJob)
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", h.SignUpAPI)
		v1.POST("/login", h.LoginAPI)
		v1.POST("/logout", h.LogoutAPI)

		v1.GET("/jobs", h.ListJobs)
		v1.GET("/jobs/:id", h.GetJob)

		v1.GET("/saved-jobs", h.ListSavedJobs)
		v1.POST("/saved-jobs", h.CreateSavedJob)
		v1.GET("/saved-jobs/:jobId/status", h.SavedJobStatus)
		v1.DELETE("/saved-jobs/:jobId", h.DeleteSavedJob)
	}

	protected := v1.Group("/")
	protected.Use(RequireAPIAuth())
	{
		protected.GET("/me", h.Me)
		protected.GET("/me/applications", h.MyApplications)

		protected.POST("/jobs", h.CreateJob)
		protected.PATCH("/jobs/:id", h.PatchJob)
		protected.DELETE("/jobs/:id", h.DeleteJob)

		protected.GET("/applications", h.ListApplications)
		protected.GET("/applications/stats", h.ApplicationStats)
		protected.POST("/applications", h.CreateApplication)
		protected.GET("/applications/:id", h.GetApplication)
		protected.PATCH("/applications/:id", h.PatchApplication)
		protected.DELETE("/applications/:id", h.DeleteApplication)
		protected.POST("/applications/:id/withdraw", h.WithdrawApplication)
		protected.PUT("/applications/:id/interview", h.ScheduleInterview)
		protected.POST("/applications/:id/feedback", h.AddFeedback)

		protected.GET("/shortlists", h.ListShortlists)
		protected.POST("/shortlists", h.CreateShortlist)
		protected.GET("/shortlists/:id", h.GetShortlist)
		protected.PATCH("/shortlists/:id", h.PatchShortlist)
		protected.DELETE("/shortlists/:id", h.DeleteShortlist)
	}

	return r
}
