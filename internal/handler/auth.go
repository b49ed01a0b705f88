package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/middleware"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 负责注册、登录和当前用户接口
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours, bcryptCost int) *AuthHandler {
	ttl := util.DefaultTokenTTL
	if ttlHours > 0 {
		ttl = time.Duration(ttlHours) * time.Hour
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		TokenTTL:   ttl,
		BcryptCost: bcryptCost,
	}
}

func (h *AuthHandler) issue(c *gin.Context, user *models.User) {
	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		logger.Log.WithError(err).Error("sign token")
		util.ServerError(c)
		return
	}
	util.Success(c, util.Response{"token": token})
}

// ---------- 注册 ----------

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

var registerMsgs = map[string]string{
	"name":         "Name is required",
	"email":        "Please include a valid email",
	"password":     "Please enter a password with 6 or more characters",
	"password.max": "Please enter a password of at most 72 bytes",
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, registerMsgs))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.ValidationError(c, []util.FieldError{{Field: "name", Msg: registerMsgs["name"]}})
		return
	}
	// max 按字符计数，bcrypt 按字节截断
	if len(req.Password) > util.MaxPasswordBytes {
		util.ValidationError(c, []util.FieldError{{Field: "password", Msg: registerMsgs["password.max"]}})
		return
	}
	email := util.NormalizeEmail(req.Email)

	db := h.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		logger.Log.WithError(err).Error("count users by email")
		util.ServerError(c)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "User already exists")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("hash password")
		util.ServerError(c)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       util.GravatarURL(email),
	}
	if err := db.Create(&user).Error; err != nil {
		// 与并发注册竞争失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "User already exists")
			return
		}
		logger.Log.WithError(err).Error("create user")
		util.ServerError(c)
		return
	}

	logger.Log.WithField("user_id", user.ID).Info("user registered")
	h.issue(c, &user)
}

// ---------- 登录 ----------

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMsgs = map[string]string{
	"email":    "Please include a valid email",
	"password": "Password is required",
}

// Login 不区分是邮箱还是密码错误
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, loginMsgs))
		return
	}

	var user models.User
	err := h.DB.WithContext(c.Request.Context()).
		Where("email = ?", util.NormalizeEmail(req.Email)).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.WithError(err).Error("find user by email")
		util.ServerError(c)
		return
	}
	if err != nil || !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusBadRequest, util.CodeAuth, "Invalid credentials")
		return
	}

	h.issue(c, &user)
}

// ---------- 当前用户 ----------

// Me 返回当前用户（不含密码哈希）
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": user})
}

// currentUser 鉴权中间件未执行时返回 401
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "No token, authorization denied")
		return nil, false
	}
	return user, true
}
