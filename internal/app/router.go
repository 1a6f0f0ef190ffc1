package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"referee_training_backend/docs"
	"referee_training_backend/internal/config"
	"referee_training_backend/internal/middleware"
	"referee_training_backend/internal/model"
	"referee_training_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// public
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/categories", c.category.List)
		public.GET("/categories/:id", c.category.Get)
		public.GET("/tags", c.tag.ListTags)
		public.GET("/tag-categories", c.tag.ListCategories)
		public.GET("/library/categories", c.library.ListVideoCategories)
	}

	// authenticated
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/users/me", c.user.Me)
		authorized.PUT("/users/me", c.user.UpdateProfile)

		// clip library; admins additionally see inactive clips
		authorized.GET("/library/clips", c.library.ListClips)
		authorized.GET("/library/clips/:id", c.library.GetClip)
		authorized.GET("/library/filter-counts", c.library.FilterCounts)

		// quiz sessions
		authorized.POST("/tests/sessions", c.test.StartSession)
		authorized.GET("/tests/sessions", c.test.ListSessions)
		authorized.GET("/tests/sessions/:id/questions", c.test.SessionQuestions)
		authorized.POST("/tests/sessions/:id/answer", c.test.SubmitAnswer)
		authorized.POST("/tests/sessions/:id/submit", c.test.SubmitAnswers)
		authorized.GET("/tests/sessions/:id/summary", c.test.Summary)
		authorized.GET("/tests/mandatory", c.test.ListMandatoryTests)

		// self-paced study mode
		authorized.GET("/study/law-numbers", c.study.LawNumbers)
		authorized.GET("/study/questions", c.study.ListQuestions)
		authorized.POST("/study/progress", c.study.MarkRead)
		authorized.DELETE("/study/progress", c.study.ResetProgress)
		authorized.GET("/study/favorites", c.study.ListFavorites)
		authorized.POST("/study/favorites", c.study.AddFavorite)
		authorized.DELETE("/study/favorites/:id", c.study.RemoveFavorite)

		// video tests
		authorized.GET("/video-tests", c.videoTest.List)
		authorized.GET("/video-tests/sessions", c.videoTest.ListSessions)
		authorized.GET("/video-tests/sessions/:id/clips", c.videoTest.SessionClips)
		authorized.POST("/video-tests/sessions/:id/submit", c.videoTest.SubmitAnswers)
		authorized.GET("/video-tests/sessions/:id/summary", c.videoTest.Summary)
		authorized.GET("/video-tests/:id", c.videoTest.Get)
		authorized.POST("/video-tests/:id/sessions", c.videoTest.StartSession)
	}

	// admin
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.List)
		admin.PUT("/users/:id", c.user.AdminUpdate)

		admin.POST("/categories", c.category.Create)
		admin.PUT("/categories/:id", c.category.Update)
		admin.DELETE("/categories/:id", c.category.Delete)

		admin.GET("/questions", c.question.List)
		admin.GET("/questions/count", c.question.Count)
		admin.POST("/questions", c.question.Create)
		admin.GET("/questions/:id", c.question.Get)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Retire)

		admin.POST("/tag-categories", c.tag.CreateCategory)
		admin.PUT("/tag-categories/:id", c.tag.UpdateCategory)
		admin.DELETE("/tag-categories/:id", c.tag.DeleteCategory)
		admin.POST("/tags", c.tag.CreateTag)
		admin.PUT("/tags/:id", c.tag.UpdateTag)
		admin.DELETE("/tags/:id", c.tag.DeleteTag)

		admin.POST("/library/clips", c.library.CreateClip)
		admin.PUT("/library/clips/:id", c.library.UpdateClip)
		admin.POST("/library/clips/:id/retire", c.library.RetireClip)
		admin.DELETE("/library/clips/:id", c.library.DeleteClip)
		admin.POST("/library/upload", c.library.Upload)
		admin.POST("/library/categories", c.library.CreateVideoCategory)
		admin.PUT("/library/categories/:id", c.library.UpdateVideoCategory)
		admin.DELETE("/library/categories/:id", c.library.DeleteVideoCategory)

		admin.GET("/tests/mandatory", c.test.AdminListMandatoryTests)
		admin.POST("/tests/mandatory", c.test.CreateMandatoryTest)
		admin.GET("/tests/mandatory/:id", c.test.GetMandatoryTest)
		admin.PUT("/tests/mandatory/:id", c.test.UpdateMandatoryTest)
		admin.DELETE("/tests/mandatory/:id", c.test.DeleteMandatoryTest)
		admin.GET("/tests/mandatory/:id/completions", c.test.MandatoryTestCompletions)

		admin.GET("/video-tests", c.videoTest.AdminList)
		admin.GET("/video-tests/eligible", c.library.EligibleClips)
		admin.POST("/video-tests", c.videoTest.Create)
		admin.PUT("/video-tests/:id", c.videoTest.Update)
		admin.DELETE("/video-tests/:id", c.videoTest.Delete)
	}
}
