package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookclub-backend/internal/shared/middleware"
	"bookclub-backend/internal/shared/response"
)

func (s *Server) setupRoutes() {
	r := s.engine

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", s.healthCheck)

	v1 := r.Group("/api/v1")
	auth := middleware.AuthMiddleware(s.container.Config.JWT.Secret)

	// Auth
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", s.container.UserHandler.Register)
		authGroup.POST("/login", s.container.UserHandler.Login)
	}

	// Users
	users := v1.Group("/users")
	{
		users.GET("/me", auth, s.container.UserHandler.GetMe)
		users.PUT("/me", auth, s.container.UserHandler.UpdateProfile)
		users.GET("/me/shelves", auth, s.container.UserHandler.GetShelves)
		users.PUT("/me/shelves/:shelf", auth, s.container.UserHandler.MoveToShelf)
		users.DELETE("/me/shelves/:shelf/:bookId", auth, s.container.UserHandler.RemoveFromShelf)
		users.POST("/me/reading", auth, s.container.UserHandler.StartReading)
		users.PUT("/me/reading/:bookId", auth, s.container.UserHandler.UpdateProgress)
		users.DELETE("/me/reading/:bookId", auth, s.container.UserHandler.FinishReading)
		users.GET("/me/reviews", auth, s.container.ReviewHandler.ListMine)
		users.GET("/:id", s.container.UserHandler.GetProfile)
	}

	// Books
	books := v1.Group("/books")
	{
		books.GET("", s.container.BookHandler.ListBooks)
		books.GET("/:id", s.container.BookHandler.GetBook)
		books.GET("/:id/reviews", s.container.ReviewHandler.ListByBook)
		books.POST("", auth, s.container.BookHandler.CreateBook)
		books.PUT("/:id", auth, s.container.BookHandler.UpdateBook)
	}

	// Reviews
	reviews := v1.Group("/reviews")
	{
		reviews.GET("/:id", s.container.ReviewHandler.GetReview)
		reviews.POST("", auth, s.container.ReviewHandler.CreateReview)
		reviews.PUT("/:id", auth, s.container.ReviewHandler.UpdateReview)
		reviews.PUT("/:id/rating", auth, s.container.ReviewHandler.UpdateRating)
		reviews.DELETE("/:id", auth, s.container.ReviewHandler.DeleteReview)
		reviews.POST("/:id/like", auth, s.container.ReviewHandler.ToggleLike)
		reviews.POST("/:id/comments", auth, s.container.ReviewHandler.AddComment)
		reviews.POST("/:id/helpful", s.container.ReviewHandler.MarkHelpful)
	}

	// Discussions
	discussions := v1.Group("/discussions")
	{
		discussions.GET("", s.container.DiscussionHandler.ListDiscussions)
		discussions.GET("/:id", s.container.DiscussionHandler.GetDiscussion)
		discussions.POST("", auth, s.container.DiscussionHandler.CreateDiscussion)
		discussions.PUT("/:id", auth, s.container.DiscussionHandler.UpdateDiscussion)
		discussions.DELETE("/:id", auth, s.container.DiscussionHandler.Deactivate)
		discussions.PUT("/:id/lock", auth, s.container.DiscussionHandler.SetLocked)
		discussions.POST("/:id/like", auth, s.container.DiscussionHandler.ToggleLike)
		discussions.POST("/:id/replies", auth, s.container.DiscussionHandler.AddReply)
		discussions.PUT("/:id/replies/:replyId/solution", auth, s.container.DiscussionHandler.MarkSolution)
		discussions.POST("/:id/replies/:replyId/like", auth, s.container.DiscussionHandler.ToggleReplyLike)
	}

	// Events
	events := v1.Group("/events")
	{
		events.GET("", s.container.EventHandler.ListEvents)
		events.GET("/:id", s.container.EventHandler.GetEvent)
		events.POST("", auth, s.container.EventHandler.CreateEvent)
		events.PUT("/:id", auth, s.container.EventHandler.UpdateEvent)
		events.DELETE("/:id", auth, s.container.EventHandler.CancelEvent)
		events.POST("/:id/join", auth, s.container.EventHandler.JoinEvent)
		events.POST("/:id/leave", auth, s.container.EventHandler.LeaveEvent)
		events.POST("/:id/interested", auth, s.container.EventHandler.MarkInterested)
		events.DELETE("/:id/interested", auth, s.container.EventHandler.RemoveInterested)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"version": s.container.Config.App.Version,
	}

	if err := s.container.DB.HealthCheck(c.Request.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		response.Success(c, http.StatusServiceUnavailable, status)
		return
	}
	if err := s.container.Cache.Ping(c.Request.Context()); err != nil {
		status["status"] = "degraded"
		status["cache"] = err.Error()
		response.Success(c, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(c, http.StatusOK, status)
}
