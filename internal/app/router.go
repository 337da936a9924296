package app

import (
	"bookclub_backend/docs"
	"bookclub_backend/internal/config"
	"bookclub_backend/internal/middleware"
	"bookclub_backend/internal/model"
	"bookclub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Club discovery is open to guests.
		public.GET("/clubs/discover", middleware.TryAuthMiddleware(cfg), c.club.Discover)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authed.POST("/refresh", c.auth.Refresh)
		authed.GET("/profile", c.auth.GetProfile)
		authed.PUT("/user/profile", c.user.UpdateProfile)
		authed.GET("/users/:id", c.user.GetUser)

		authed.GET("/ws", c.ws.Connect)

		clubs := authed.Group("/clubs")
		{
			clubs.POST("", c.club.CreateClub)
			clubs.GET("", c.club.MyClubs)
			clubs.GET("/:id", c.club.GetClub)
			clubs.PUT("/:id", c.club.UpdateClub)
			clubs.DELETE("/:id", c.club.DeleteClub)
			clubs.GET("/:id/members", c.club.Members)
			clubs.POST("/:id/join", c.club.Join)
			clubs.POST("/:id/leave", c.club.Leave)

			clubs.GET("/:id/posts", c.feed.Feed)
			clubs.POST("/:id/posts", c.feed.CreatePost)

			clubs.GET("/:id/meetings", c.meeting.Upcoming)
			clubs.POST("/:id/meetings", c.meeting.Schedule)

			clubs.GET("/:id/leaderboard", c.report.ClubLeaderboard)
			clubs.GET("/:id/trend", c.report.ClubWeeklyTrend)
			clubs.GET("/:id/goal-distribution", c.report.ClubGoalDistribution)
		}

		goals := authed.Group("/goals")
		{
			goals.POST("", c.goal.CreateGoal)
			goals.GET("", c.goal.ListGoals)
			goals.GET("/:id", c.goal.GetGoal)
			goals.PUT("/:id", c.goal.UpdateGoal)
			goals.DELETE("/:id", c.goal.DeleteGoal)
			goals.GET("/:id/progress", c.goal.GoalProgress)

			goals.POST("/:id/entries", c.goal.AddEntry)
			goals.GET("/:id/entries", c.goal.ListEntries)

			goals.POST("/:id/milestones", c.goal.AddMilestone)
			goals.POST("/:id/milestones/:milestoneId/toggle", c.goal.ToggleMilestone)
			goals.PUT("/:id/milestones/reorder", c.goal.ReorderMilestones)
			goals.DELETE("/:id/milestones/:milestoneId", c.goal.DeleteMilestone)
		}

		authed.PUT("/entries/:entryId", c.goal.UpdateEntry)
		authed.DELETE("/entries/:entryId", c.goal.DeleteEntry)

		posts := authed.Group("/posts")
		{
			posts.DELETE("/:postId", c.feed.DeletePost)
			posts.GET("/:postId/comments", c.feed.Comments)
			posts.POST("/:postId/comments", c.feed.AddComment)
			posts.POST("/:postId/like", c.feed.ToggleLike)
		}

		meetings := authed.Group("/meetings")
		{
			meetings.POST("/:meetingId/rsvp", c.meeting.RSVP)
			meetings.PUT("/:meetingId", c.meeting.Reschedule)
			meetings.DELETE("/:meetingId", c.meeting.Cancel)
		}

		reports := authed.Group("/reports")
		{
			reports.GET("/habits/consistency", c.report.HabitConsistency)
			reports.GET("/habits/streaks", c.report.HabitStreaks)
			reports.GET("/weekly-trend", c.report.WeeklyTrend)
			reports.GET("/weekly-breakdown", c.report.WeeklyBreakdown)
			reports.GET("/goal-distribution", c.report.GoalDistribution)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.user.ListUsers)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", c.notification.Inbox)
			notifications.GET("/unread-count", c.notification.UnreadCount)
			notifications.POST("/:id/read", c.notification.MarkRead)
			notifications.POST("/read-all", c.notification.MarkAllRead)
		}
	}
}
