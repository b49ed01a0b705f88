package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/lijie8778708/DevConnector/internal/repohost"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileHandler 负责 /api/profile 相关接口
type ProfileHandler struct {
	DB    *gorm.DB
	Repos repohost.RepoLister
}

func NewProfileHandler(db *gorm.DB, repos repohost.RepoLister) *ProfileHandler {
	return &ProfileHandler{DB: db, Repos: repos}
}

// profileResp 个人资料加上所属用户的公开信息
type profileResp struct {
	*models.Profile
	User models.UserSummary `json:"user"`
}

func newProfileResp(p *models.Profile, owner *models.User) profileResp {
	resp := profileResp{Profile: p}
	if owner == nil {
		owner = p.User
	}
	if owner != nil {
		resp.User = models.UserSummary{ID: owner.ID, Name: owner.Name, Avatar: owner.Avatar}
	}
	return resp
}

func preloadOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "avatar")
	})
}

// mutateProfile 锁定当前用户的资料后执行 fn 并保存
func (h *ProfileHandler) mutateProfile(c *gin.Context, userID string, fn func(*models.Profile) error) (*models.Profile, error) {
	var profile models.Profile
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return err
		}
		if err := fn(&profile); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ---------- 我的资料 ----------

func (h *ProfileHandler) GetMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := h.DB.WithContext(c.Request.Context()).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "There is no profile for this user")
			return
		}
		logger.Log.WithError(err).Error("get own profile")
		util.ServerError(c)
		return
	}

	util.Success(c, util.Response{"profile": newProfileResp(&profile, user)})
}

type profileReq struct {
	Company        string `json:"company" binding:"max=128"`
	Website        string `json:"website" binding:"max=255"`
	Location       string `json:"location" binding:"max=128"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required,max=128"`
	GitHubUsername string `json:"githubusername" binding:"max=64"`
	Skills         string `json:"skills" binding:"required"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

var profileMsgs = map[string]string{
	"status": "Status is required",
	"skills": "Skills is required",
}

// apply 覆盖所有普通字段、技能和社交链接，
// 工作经历和教育经历保持不变
func (r *profileReq) apply(p *models.Profile, skills []string) {
	p.Company = strings.TrimSpace(r.Company)
	p.Website = strings.TrimSpace(r.Website)
	p.Location = strings.TrimSpace(r.Location)
	p.Bio = strings.TrimSpace(r.Bio)
	p.Status = strings.TrimSpace(r.Status)
	p.GitHubUsername = strings.TrimSpace(r.GitHubUsername)
	p.Skills = skills
	p.Social = models.Social{
		YouTube:   strings.TrimSpace(r.YouTube),
		Twitter:   strings.TrimSpace(r.Twitter),
		Facebook:  strings.TrimSpace(r.Facebook),
		LinkedIn:  strings.TrimSpace(r.LinkedIn),
		Instagram: strings.TrimSpace(r.Instagram),
	}
}

func (h *ProfileHandler) upsert(c *gin.Context, userID string, req *profileReq, skills []string) (*models.Profile, error) {
	var profile models.Profile
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{
				UserID:     userID,
				Experience: []models.Experience{},
				Education:  []models.Education{},
			}
		case err != nil:
			return err
		}
		req.apply(&profile, skills)
		return tx.Omit(clause.Associations).Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert 创建或替换当前用户的资料
func (h *ProfileHandler) Upsert(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, profileMsgs))
		return
	}
	var errs []util.FieldError
	if strings.TrimSpace(req.Status) == "" {
		errs = append(errs, util.FieldError{Field: "status", Msg: profileMsgs["status"]})
	}
	skills := util.SplitSkills(req.Skills)
	if len(skills) == 0 {
		errs = append(errs, util.FieldError{Field: "skills", Msg: profileMsgs["skills"]})
	}
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}

	profile, err := h.upsert(c, user.ID, &req, skills)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发的首次创建已写入该行，改为覆盖
		profile, err = h.upsert(c, user.ID, &req, skills)
	}
	if err != nil {
		logger.Log.WithError(err).Error("upsert profile")
		util.ServerError(c)
		return
	}

	util.Success(c, util.Response{"profile": newProfileResp(profile, user)})
}

// ---------- 公开查询 ----------

func (h *ProfileHandler) List(c *gin.Context) {
	var profiles []models.Profile
	if err := preloadOwner(h.DB.WithContext(c.Request.Context())).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		logger.Log.WithError(err).Error("list profiles")
		util.ServerError(c)
		return
	}

	resp := make([]profileResp, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, newProfileResp(&profiles[i], nil))
	}
	util.Success(c, util.Response{"profiles": resp})
}

func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Profile not found")
		return
	}

	var profile models.Profile
	if err := preloadOwner(h.DB.WithContext(c.Request.Context())).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Profile not found")
			return
		}
		logger.Log.WithError(err).Error("get profile by user")
		util.ServerError(c)
		return
	}

	util.Success(c, util.Response{"profile": newProfileResp(&profile, nil)})
}

// ---------- 注销账号 ----------

// DeleteAccount 在同一事务中依次删除帖子、资料、用户。
// 在他人帖子上的点赞和评论保留
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", user.ID).Delete(&models.User{}).Error
	})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("delete account")
		util.ServerError(c)
		return
	}

	logger.Log.WithField("user_id", user.ID).Info("account deleted")
	util.Success(c, util.Response{"message": "User deleted"})
}

// ---------- 工作经历 / 教育经历 ----------

type experienceReq struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceMsgs = map[string]string{
	"title":   "Title is required",
	"company": "Company is required",
	"from":    "From date is required",
}

type educationReq struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"field_of_study" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationMsgs = map[string]string{
	"school":         "School is required",
	"degree":         "Degree is required",
	"field_of_study": "Field of study is required",
	"from":           "From date is required",
}

// checkPeriod 把 from/to 统一为 YYYY-MM-DD，当前在职/在读的条目没有结束日期
func checkPeriod(from, to string, current bool) (string, string, []util.FieldError) {
	var errs []util.FieldError
	from, err := util.NormalizeDate(from)
	if err != nil {
		errs = append(errs, util.FieldError{Field: "from", Msg: "From date is not a valid date"})
	}
	if current {
		return from, "", errs
	}
	if strings.TrimSpace(to) == "" {
		return from, "", errs
	}
	to, err = util.NormalizeDate(to)
	if err != nil {
		errs = append(errs, util.FieldError{Field: "to", Msg: "To date is not a valid date"})
	} else if len(errs) == 0 && to < from {
		errs = append(errs, util.FieldError{Field: "to", Msg: "To date must not be before from date"})
	}
	return from, to, errs
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req experienceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, experienceMsgs))
		return
	}
	from, to, errs := checkPeriod(req.From, req.To, req.Current)
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}
	req.From, req.To = from, to

	profile, err := h.mutateProfile(c, user.ID, func(p *models.Profile) error {
		p.AddExperience(models.Experience{
			Title:       strings.TrimSpace(req.Title),
			Company:     strings.TrimSpace(req.Company),
			Location:    strings.TrimSpace(req.Location),
			From:        req.From,
			To:          req.To,
			Current:     req.Current,
			Description: req.Description,
		})
		return nil
	})
	h.writeMutation(c, user, profile, err, "add experience")
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	expID := c.Param("exp_id")
	profile, err := h.mutateProfile(c, user.ID, func(p *models.Profile) error {
		return p.RemoveExperience(expID)
	})
	h.writeMutation(c, user, profile, err, "remove experience")
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req educationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, util.BindErrors(err, educationMsgs))
		return
	}
	from, to, errs := checkPeriod(req.From, req.To, req.Current)
	if len(errs) > 0 {
		util.ValidationError(c, errs)
		return
	}
	req.From, req.To = from, to

	profile, err := h.mutateProfile(c, user.ID, func(p *models.Profile) error {
		p.AddEducation(models.Education{
			School:       strings.TrimSpace(req.School),
			Degree:       strings.TrimSpace(req.Degree),
			FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
			From:         req.From,
			To:           req.To,
			Current:      req.Current,
			Description:  req.Description,
		})
		return nil
	})
	h.writeMutation(c, user, profile, err, "add education")
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	eduID := c.Param("edu_id")
	profile, err := h.mutateProfile(c, user.ID, func(p *models.Profile) error {
		return p.RemoveEducation(eduID)
	})
	h.writeMutation(c, user, profile, err, "remove education")
}

func (h *ProfileHandler) writeMutation(c *gin.Context, user *models.User, profile *models.Profile, err error, op string) {
	switch {
	case err == nil:
		util.Success(c, util.Response{"profile": newProfileResp(profile, user)})
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "There is no profile for this user")
	case errors.Is(err, models.ErrExperienceMissing):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Experience not found")
	case errors.Is(err, models.ErrEducationMissing):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Education not found")
	default:
		logger.Log.WithError(err).WithField("user_id", user.ID).Error(op)
		util.ServerError(c)
	}
}

// ---------- GitHub ----------

// GitHubRepos 代理查询 GitHub 用户的仓库
func (h *ProfileHandler) GitHubRepos(c *gin.Context) {
	username := c.Param("username")
	repos, err := h.Repos.ListRepos(c.Request.Context(), username)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Warn("github lookup failed")
		util.Error(c, http.StatusNotFound, util.CodeUpstream, "No Github profile found")
		return
	}
	util.Success(c, util.Response{"repos": repos})
}
