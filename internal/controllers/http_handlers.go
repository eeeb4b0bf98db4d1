package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scholarnet/review-core/internal/middleware"
	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/services"
)

// Handler exposes the review and moderation services over HTTP.
type Handler struct {
	Articles   *services.ArticleService
	Flags      *services.FlagService
	Moderation *services.ModerationService
	Log        *log.Logger
}

// Register mounts all routes on r.
func (h *Handler) Register(r *gin.Engine, jwtSecret []byte) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed", nil)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authorized := v1.Group("/")
	authorized.Use(middleware.AuthRequired(jwtSecret))
	{
		authorized.POST("/articles", h.HandleSubmitArticle)
		authorized.GET("/articles/:id", h.HandleGetArticle)
		authorized.POST("/articles/:id/reviews", h.HandleSubmitReview)
		authorized.GET("/articles/:id/reviews", h.HandleListReviews)
		authorized.POST("/articles/:id/flag", h.HandleFlagArticle)

		admin := authorized.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/articles/:id/moderate", h.HandleModerateArticle)
			admin.GET("/flags", h.HandleListFlags)
			admin.GET("/logs", h.HandleListLogs)
		}
	}
}

func articleID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidArticleID, "article id must be a uuid", nil)
		return "", false
	}
	return id, true
}

func (h *Handler) HandleSubmitArticle(c *gin.Context) {
	var input struct {
		Title    string `json:"title" binding:"required"`
		Abstract string `json:"abstract"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidPayload, "title is required", nil)
		return
	}

	article, err := h.Articles.Submit(c.Request.Context(), c.GetString("user_id"), input.Title, input.Abstract)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *Handler) HandleGetArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	view, err := h.Articles.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) HandleSubmitReview(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var input struct {
		Score          float64 `json:"score"`
		Recommendation string  `json:"recommendation" binding:"required"`
		Comments       string  `json:"comments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidPayload, "score and recommendation are required", nil)
		return
	}

	rec, err := h.Articles.SubmitReview(c.Request.Context(), id, c.GetString("user_id"),
		input.Score, models.Recommendation(input.Recommendation), input.Comments)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) HandleListReviews(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	reviews, err := h.Articles.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) HandleFlagArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var input struct {
		Category string `json:"category" binding:"required"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidCategory, "category is required", nil)
		return
	}

	outcome, err := h.Flags.FlagArticle(c.Request.Context(), id, c.GetString("user_id"),
		models.FlagCategory(input.Category), input.Reason)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"flagCount":        outcome.FlagCount,
		"moderationStatus": outcome.ModerationStatus,
	})
}

func (h *Handler) HandleModerateArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var input struct {
		Action string `json:"action" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidAction, "action is required", nil)
		return
	}

	admin := services.Admin{
		ID:    c.GetString("user_id"),
		Email: c.GetString("email"),
		Role:  c.GetString("role"),
	}
	article, err := h.Moderation.Resolve(c.Request.Context(), id,
		models.ModerationAction(input.Action), input.Notes, admin)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"moderationStatus": article.ModerationStatus,
	})
}

func (h *Handler) HandleListFlags(c *gin.Context) {
	status := models.FlagStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondError(c, http.StatusBadRequest, codeInvalidStatus, "unknown flag status", nil)
		return
	}

	flags, err := h.Moderation.ListFlags(c.Request.Context(), status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

func (h *Handler) HandleListLogs(c *gin.Context) {
	logs, err := h.Moderation.ListLogs(c.Request.Context(), 50)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
