package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostHandler 负责 /api/posts 相关接口
type PostHandler struct {
	DB *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{DB: db}
}

type textReq struct {
	Text string `json:"text" binding:"required"`
}

var textMsgs = map[string]string{"text": "Text is required"}

func bindText(c *gin.Context) (string, bool) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, textMsgs))
		return "", false
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		util.ValidationError(c, []util.FieldError{{Field: "text", Msg: textMsgs["text"]}})
		return "", false
	}
	return text, true
}

func postNotFound(c *gin.Context) {
	util.Error(c, http.StatusNotFound, util.CodeNotFound, "Post not found")
}

// mutatePost 锁定帖子后执行 fn 并保存
func (h *PostHandler) mutatePost(c *gin.Context, postID string, fn func(*models.Post) error) (*models.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var post models.Post
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&post, "id = ?", postID).Error; err != nil {
			return err
		}
		if err := fn(&post); err != nil {
			return err
		}
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ---------- 帖子 ----------

func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}

	post := models.Post{
		UserID:   user.ID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		logger.Log.WithError(err).Error("create post")
		util.ServerError(c)
		return
	}

	util.Success(c, util.Response{"post": post})
}

// List 返回全部帖子，最新的在前
func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if err := h.DB.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		logger.Log.WithError(err).Error("list posts")
		util.ServerError(c)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	util.Success(c, util.Response{"posts": posts})
}

func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		postNotFound(c)
		return
	}

	var post models.Post
	if err := h.DB.WithContext(c.Request.Context()).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			postNotFound(c)
			return
		}
		logger.Log.WithError(err).Error("get post")
		util.ServerError(c)
		return
	}
	util.Success(c, util.Response{"post": post})
}

// Delete 删除帖子，仅作者本人可操作
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		postNotFound(c)
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			postNotFound(c)
			return
		}
		logger.Log.WithError(err).Error("get post for delete")
		util.ServerError(c)
		return
	}
	if post.UserID != user.ID {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "User not authorized")
		return
	}

	if err := db.Delete(&post).Error; err != nil {
		logger.Log.WithError(err).Error("delete post")
		util.ServerError(c)
		return
	}
	util.Success(c, util.Response{"message": "Post removed"})
}

// ---------- 点赞 ----------

func (h *PostHandler) Like(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	post, err := h.mutatePost(c, c.Param("id"), func(p *models.Post) error {
		return p.Like(user.ID)
	})
	switch {
	case err == nil:
		util.Success(c, util.Response{"likes": post.Likes})
	case errors.Is(err, gorm.ErrRecordNotFound):
		postNotFound(c)
	case errors.Is(err, models.ErrAlreadyLiked):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Post already liked")
	default:
		logger.Log.WithError(err).Error("like post")
		util.ServerError(c)
	}
}

func (h *PostHandler) Unlike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	post, err := h.mutatePost(c, c.Param("id"), func(p *models.Post) error {
		return p.Unlike(user.ID)
	})
	switch {
	case err == nil:
		util.Success(c, util.Response{"likes": post.Likes})
	case errors.Is(err, gorm.ErrRecordNotFound):
		postNotFound(c)
	case errors.Is(err, models.ErrNotLiked):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Post has not yet been liked")
	default:
		logger.Log.WithError(err).Error("unlike post")
		util.ServerError(c)
	}
}

// ---------- 评论 ----------

func (h *PostHandler) AddComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}

	post, err := h.mutatePost(c, c.Param("id"), func(p *models.Post) error {
		p.AddComment(user, text)
		return nil
	})
	switch {
	case err == nil:
		util.Success(c, util.Response{"comments": post.Comments})
	case errors.Is(err, gorm.ErrRecordNotFound):
		postNotFound(c)
	default:
		logger.Log.WithError(err).Error("add comment")
		util.ServerError(c)
	}
}

// RemoveComment 删除评论，仅评论作者可操作
func (h *PostHandler) RemoveComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	commentID := c.Param("comment_id")
	post, err := h.mutatePost(c, c.Param("id"), func(p *models.Post) error {
		return p.RemoveComment(commentID, user.ID)
	})
	switch {
	case err == nil:
		util.Success(c, util.Response{"comments": post.Comments})
	case errors.Is(err, gorm.ErrRecordNotFound):
		postNotFound(c)
	case errors.Is(err, models.ErrCommentNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Comment does not exist")
	case errors.Is(err, models.ErrNotCommentAuthor):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "User not authorized")
	default:
		logger.Log.WithError(err).Error("remove comment")
		util.ServerError(c)
	}
}
