package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/agenthands/chapi/internal/assistant"
	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/legal"
	"github.com/agenthands/chapi/internal/llm"
	"github.com/agenthands/chapi/internal/storage"
)

// Answerer produces the assistant reply for a chat message.
type Answerer interface {
	Answer(ctx context.Context, question string, history []llm.Message) assistant.Reply
}

type Server struct {
	Engine    *legal.Engine
	Assistant Answerer
	Store     storage.MessageStore
	Config    config.ServerConfig
	Logger    zerolog.Logger

	limiter *clientLimiter
}

func NewServer(engine *legal.Engine, answerer Answerer, store storage.MessageStore, cfg config.ServerConfig, logger zerolog.Logger) *Server {
	s := &Server{
		Engine:    engine,
		Assistant: answerer,
		Store:     store,
		Config:    cfg,
		Logger:    logger,
	}
	if cfg.ChatRate > 0 {
		s.limiter = newClientLimiter(cfg.ChatRate, cfg.ChatBurst)
	}
	if s.Config.HistoryLimit <= 0 {
		s.Config.HistoryLimit = 50
	}
	return s
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/health", s.Health)
	api.POST("/chat", s.rateLimit(), s.Chat)
	api.GET("/chat/history", s.History)
	api.GET("/articles/search", s.SearchArticles)
	api.GET("/articles/:law/:number", s.GetArticle)

	return r
}

// Handler returns the router wrapped with the CORS policy.
func (s *Server) Handler() http.Handler {
	origins := s.Config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.SetupRouter())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Demasiadas solicitudes, intenta de nuevo en unos segundos",
				"success": false,
			})
			return
		}
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles": s.Engine.Total()})
}

type HistoryTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []HistoryTurn `json:"conversationHistory" binding:"omitempty,dive"`
}

func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "success": false})
		return
	}
	ctx := c.Request.Context()

	if _, err := s.Store.Create(ctx, storage.NewMessage{Content: req.Message, Sender: storage.SenderUser}); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to store user message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la consulta", "success": false})
		return
	}

	history := make([]llm.Message, 0, len(req.ConversationHistory))
	for _, turn := range req.ConversationHistory {
		history = append(history, llm.Message{Role: llm.Role(turn.Role), Content: turn.Content})
	}

	reply := s.Assistant.Answer(ctx, req.Message, history)

	if _, err := s.Store.Create(ctx, storage.NewMessage{Content: reply.Text, Sender: storage.SenderBot}); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to store bot message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la consulta", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply.Text, "success": true})
}

func (s *Server) History(c *gin.Context) {
	messages, err := s.Store.List(c.Request.Context(), s.Config.HistoryLimit)
	if err != nil {
		s.Logger.Error().Err(err).Msg("Failed to list chat history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener historial", "success": false})
		return
	}
	if messages == nil {
		messages = []storage.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "success": true})
}

func (s *Server) SearchArticles(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro q requerido"})
		return
	}

	limit := legal.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro limit inválido"})
			return
		}
		limit = n
	}

	results := s.Engine.Rank(query, limit)
	if results == nil {
		results = []legal.ScoredArticle{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) GetArticle(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Número de artículo inválido"})
		return
	}

	article, ok := s.Engine.Article(c.Param("law"), number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artículo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, article)
}
