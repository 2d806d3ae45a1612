package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/handler"
	"github.com/ideasnet/server/internal/middleware"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/internal/service"
	"github.com/ideasnet/server/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// New wires repositories, services and handlers into a ready router.
// redisClient, meiliClient and imageStorage may be nil; the features they
// back degrade gracefully.
func New(
	db *gorm.DB,
	redisClient *redis.Client,
	meiliClient meilisearch.ServiceManager,
	imageStorage storage.ImageStorage,
	cfg *config.Config,
) *Server {
	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var searchSvc service.SearchService
	if meiliClient != nil {
		searchSvc = service.NewSearchService(meiliClient)
	}

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	authSvc := service.NewAuthService(userRepo, cfg)
	ideaSvc := service.NewIdeaService(ideaRepo, commentRepo, voteRepo, searchSvc, redisClient, cfg)
	commentSvc := service.NewCommentService(commentRepo, ideaRepo, notificationSvc)
	voteSvc := service.NewVoteService(voteRepo, ideaRepo, userRepo, notificationSvc)
	messageSvc := service.NewMessageService(messageRepo, userRepo, notificationSvc, redisClient, cfg)
	userSvc := service.NewUserService(userRepo, imageStorage)

	authHandler := handler.NewAuthHandler(authSvc, cfg)
	ideaHandler := handler.NewIdeaHandler(ideaSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	voteHandler := handler.NewVoteHandler(voteSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)
	userHandler := handler.NewUserHandler(userSvc, ideaSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	requireAuth := middleware.RequireAuth(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify", requireAuth, authHandler.Verify)
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	ideas := api.Group("/ideas")
	{
		ideas.GET("", ideaHandler.List)
		ideas.GET("/:slug", optionalAuth, ideaHandler.GetBySlug)
		ideas.POST("", requireAuth, ideaHandler.Create)
		ideas.PUT("/:id", requireAuth, ideaHandler.Update)
		ideas.DELETE("/:id", requireAuth, ideaHandler.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/idea/:ideaId", commentHandler.ListByIdea)
		comments.POST("", requireAuth, commentHandler.Create)
		comments.PUT("/:id", requireAuth, commentHandler.Update)
		comments.DELETE("/:id", requireAuth, commentHandler.Delete)
	}

	votes := api.Group("/votes")
	{
		votes.GET("/idea/:id", voteHandler.Counts)
		votes.GET("/idea/:id/user", requireAuth, voteHandler.UserVotes)
		votes.POST("/idea/:id", requireAuth, voteHandler.Add)
		votes.DELETE("/idea/:id", requireAuth, voteHandler.Remove)
	}

	messages := api.Group("/messages")
	messages.Use(requireAuth)
	{
		messages.GET("/conversations", messageHandler.Conversations)
		messages.GET("/user/:userId", messageHandler.History)
		messages.POST("", messageHandler.Send)
		messages.PUT("/read/:userId", messageHandler.MarkConversationRead)
	}

	notifications := api.Group("/notifications")
	notifications.Use(requireAuth)
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.GET("/ws", notificationHandler.Stream)
	}

	users := api.Group("/users")
	{
		users.GET("/me", requireAuth, userHandler.Me)
		users.PUT("/me", requireAuth, userHandler.UpdateMe)
		users.POST("/me/avatar", requireAuth, userHandler.UploadAvatar)
		users.GET("/:username", userHandler.ByUsername)
		users.GET("/:username/ideas", optionalAuth, userHandler.Ideas)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
