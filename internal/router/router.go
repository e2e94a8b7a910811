package router

import (
	"net/http"
	"wenda/internal/handlers"
	"wenda/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	notificationHandler := handlers.NewNotificationHandler()
	metricsHandler := handlers.NewMetricsHandler()
	quizHandler := handlers.NewQuizHandler()
	tagHandler := handlers.NewTagHandler()

	// 写操作限流
	writeLimiter := middleware.NewIPRateLimiter(rate.Limit(2), 10)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// 认证 (Auth)
	api.POST("/auth/signup", middleware.RateLimit(writeLimiter), authHandler.Signup) // 注册
	api.POST("/auth/login", middleware.RateLimit(writeLimiter), authHandler.Login)   // 登录
	api.POST("/auth/logout", authHandler.Logout)                                     // 退出登录
	api.GET("/users/:username", authHandler.Profile)                                 // 用户公开资料
	api.GET("/users/:username/questions", questionHandler.ByUser)                    // 用户的问题
	api.GET("/users/:username/answers", answerHandler.ByUser)                        // 用户的回答
	api.GET("/users/:username/comments", commentHandler.ByUser)                      // 用户的评论
	api.GET("/users/:username/metrics", metricsHandler.UserMetrics)                  // 用户统计

	// 问题 (Questions)
	api.GET("/questions", questionHandler.List)                // 问题列表
	api.GET("/questions/:qid", questionHandler.Get)            // 问题详情
	api.GET("/questions/:qid/metrics", questionHandler.Metrics) // 问题统计
	api.GET("/questions/:qid/answers", answerHandler.ListByQuestion)

	// 回答 (Answers)
	api.GET("/answers/:aid", answerHandler.Get)
	api.GET("/answers/:aid/comments", commentHandler.ListByAnswer)   // 平铺评论
	api.GET("/answers/:aid/comments/threads", commentHandler.Threads) // 评论树
	api.GET("/answers/:aid/comments/count", commentHandler.Count)
	api.GET("/answers/:aid/votes", voteHandler.Stats)

	// 评论搜索
	api.GET("/comments/search", commentHandler.Search)

	// 标签 (Tags)
	api.GET("/tags", tagHandler.List)
	api.GET("/tags/popular", tagHandler.Popular)
	api.GET("/tags/search", tagHandler.Search)

	// 统计 (Metrics)
	api.GET("/metrics/leaderboard", metricsHandler.Leaderboard)
	api.GET("/metrics/platform", metricsHandler.PlatformStats)

	// 测验主题
	api.GET("/quizzes/topics", quizHandler.Topics)

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.GET("/metrics/me", metricsHandler.MyMetrics)
		authorized.GET("/metrics/reputation", metricsHandler.ReputationLogs) // 声望明细

		authorized.POST("/questions", middleware.RateLimit(writeLimiter), questionHandler.Create)
		authorized.PUT("/questions/:qid", questionHandler.Update)
		authorized.DELETE("/questions/:qid", questionHandler.Delete)

		authorized.POST("/questions/:qid/answers", middleware.RateLimit(writeLimiter), answerHandler.Create)
		authorized.PUT("/answers/:aid", answerHandler.Update)
		authorized.DELETE("/answers/:aid", answerHandler.Delete)
		authorized.POST("/answers/:aid/accept", answerHandler.Accept)     // 采纳回答
		authorized.POST("/answers/:aid/unaccept", answerHandler.Unaccept) // 取消采纳

		authorized.POST("/answers/:aid/comments", middleware.RateLimit(writeLimiter), commentHandler.Create)
		authorized.PUT("/comments/:cid", commentHandler.Update)
		authorized.DELETE("/comments/:cid", commentHandler.Delete)

		authorized.POST("/answers/:aid/votes", voteHandler.Cast) // 投票/撤票
		authorized.DELETE("/answers/:aid/votes", voteHandler.Remove)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/stats", notificationHandler.Stats)
		authorized.POST("/notifications/:id/read", notificationHandler.MarkRead)
		authorized.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.POST("/quizzes", quizHandler.Create)           // 生成测验
		authorized.GET("/quizzes/mine", quizHandler.Mine)         // 我的测验记录
		authorized.GET("/quizzes/:id/questions", quizHandler.Questions)
		authorized.POST("/quizzes/:id/submit", quizHandler.Submit)
		authorized.GET("/quizzes/topics/:topic/stats", quizHandler.TopicStats)
	}
}
