package client

import (
	"sync"

	"github.com/google/uuid"
	"github.com/lijie8778708/DevConnector/internal/models"
)

type AlertType string

const (
	AlertDanger  AlertType = "danger"
	AlertSuccess AlertType = "success"
)

type Alert struct {
	ID   string
	Msg  string
	Type AlertType
}

// State 客户端的会话状态，首次加载用户完成前 Loading 为 true
type State struct {
	mu      sync.RWMutex
	user    *models.User
	loading bool
	alerts  []Alert
}

func NewState() *State {
	return &State{loading: true}
}

// SetUser 标记为已登录用户 u
func (s *State) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.loading = false
}

// ClearUser 回到匿名状态
func (s *State) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.loading = false
}

func (s *State) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.user != nil
}

func (s *State) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetAlert 添加提示并返回其 id
func (s *State) SetAlert(msg string, typ AlertType) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.alerts = append(s.alerts, Alert{ID: id, Msg: msg, Type: typ})
	s.mu.Unlock()
	return id
}

// RemoveAlert 关闭一条提示，未知 id 忽略
func (s *State) RemoveAlert(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return
		}
	}
}

// Alerts 按产生顺序返回提示快照
func (s *State) Alerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
