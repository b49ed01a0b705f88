package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lijie8778708/DevConnector/internal/config"
	"github.com/lijie8778708/DevConnector/internal/handler"
	"github.com/lijie8778708/DevConnector/internal/middleware"
	"github.com/lijie8778708/DevConnector/internal/repohost"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.TokenHeader},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}
	return c
}

// SetupRouter 配置 gin 引擎及全部 API 路由
func SetupRouter(cfg *config.Config, db *gorm.DB, repos repohost.RepoLister) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	util.SetupValidator()

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORS)))

	// ====== API ======
	api := r.Group("/api")
	auth := middleware.AuthMiddleware(cfg.JWT.Secret, db)

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/users", authHandler.Register)
	api.POST("/auth", authHandler.Login)
	api.GET("/auth", auth, authHandler.Me)

	profileHandler := handler.NewProfileHandler(db, repos)
	exportHandler := handler.NewExportHandler(db)
	profile := api.Group("/profile")
	profile.GET("", profileHandler.List)
	profile.GET("/github/:username", profileHandler.GitHubRepos)
	profile.GET("/me", auth, profileHandler.GetMine)
	profile.POST("", auth, profileHandler.Upsert)
	profile.DELETE("", auth, profileHandler.DeleteAccount)
	profile.GET("/user/:user_id", auth, profileHandler.GetByUser)
	profile.PUT("/experience", auth, profileHandler.AddExperience)
	profile.DELETE("/experience/:exp_id", auth, profileHandler.RemoveExperience)
	profile.PUT("/education", auth, profileHandler.AddEducation)
	profile.DELETE("/education/:edu_id", auth, profileHandler.RemoveEducation)
	profile.GET("/export/csv", auth, exportHandler.ExportCSV)
	profile.GET("/export/xlsx", auth, exportHandler.ExportXLSX)

	postHandler := handler.NewPostHandler(db)
	posts := api.Group("/posts")
	posts.GET("", postHandler.List)
	posts.POST("", auth, postHandler.Create)
	posts.GET("/:id", auth, postHandler.Get)
	posts.DELETE("/:id", auth, postHandler.Delete)
	posts.PUT("/like/:id", auth, postHandler.Like)
	posts.PUT("/unlike/:id", auth, postHandler.Unlike)
	posts.POST("/comment/:id", auth, postHandler.AddComment)
	posts.DELETE("/comment/:id/:comment_id", auth, postHandler.RemoveComment)

	r.NoRoute(spaFallback(cfg.Server.StaticDir))

	return r
}

// spaFallback 非 API 路径返回前端静态文件，找不到时回退到 index.html，
// 保证前端路由刷新后可用
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Not found")
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
