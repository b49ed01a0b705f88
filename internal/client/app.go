package client

import (
	"context"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/pkg/errors"
)

// ServerErrorMsg 错误没有自带信息时显示
const ServerErrorMsg = "Server error"

// App 组合 API、会话状态和 token 存储
type App struct {
	API    *API
	State  *State
	Tokens TokenStore
	Nav    *Navigator
}

func NewApp(api *API, state *State, tokens TokenStore) *App {
	return &App{
		API:    api,
		State:  state,
		Tokens: tokens,
		Nav: NewNavigator(DefaultRoutes,
			RequireSession(state, PathLogin),
			RedirectAuthenticated(state, PathDashboard),
		),
	}
}

// Bootstrap 恢复已保存的会话。服务端拒绝的 token 会被丢弃并以匿名继续，
// 只返回 token 存储的错误
func (a *App) Bootstrap(ctx context.Context) error {
	tok, err := a.Tokens.Load()
	if err != nil {
		a.State.ClearUser()
		return err
	}
	if tok == "" {
		a.State.ClearUser()
		return nil
	}

	a.API.SetToken(tok)
	if err := a.loadUser(ctx); err != nil {
		logger.Log.WithError(err).Debug("stored token rejected")
		return a.dropSession()
	}
	return nil
}

func (a *App) Register(ctx context.Context, name, email, password string) error {
	tok, err := a.API.Register(ctx, name, email, password)
	if err != nil {
		a.report(err)
		a.State.ClearUser()
		return err
	}
	return a.startSession(ctx, tok)
}

func (a *App) Login(ctx context.Context, email, password string) error {
	tok, err := a.API.Login(ctx, email, password)
	if err != nil {
		a.report(err)
		a.State.ClearUser()
		return err
	}
	return a.startSession(ctx, tok)
}

// Logout 只清除本地 token，服务端不吊销
func (a *App) Logout() error {
	return a.dropSession()
}

// Navigate 按路由表和守卫解析 path
func (a *App) Navigate(path string) Match {
	return a.Nav.Resolve(path)
}

// Report 把 err 转为提示，供直接调用 API 的视图使用
func (a *App) Report(err error) { a.report(err) }

func (a *App) startSession(ctx context.Context, tok string) error {
	if err := a.Tokens.Save(tok); err != nil {
		return err
	}
	a.API.SetToken(tok)
	if err := a.loadUser(ctx); err != nil {
		a.report(err)
		if dropErr := a.dropSession(); dropErr != nil {
			return dropErr
		}
		return err
	}
	return nil
}

func (a *App) loadUser(ctx context.Context) error {
	u, err := a.API.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.State.SetUser(u)
	return nil
}

func (a *App) dropSession() error {
	a.API.SetToken("")
	a.State.ClearUser()
	return a.Tokens.Clear()
}

// report 字段错误各生成一条提示，否则使用服务端信息，再否则使用通用信息
func (a *App) report(err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		a.State.SetAlert(ServerErrorMsg, AlertDanger)
		return
	}
	if len(apiErr.Errors) > 0 {
		for _, fe := range apiErr.Errors {
			a.State.SetAlert(fe.Msg, AlertDanger)
		}
		return
	}
	msg := apiErr.Message
	if msg == "" {
		msg = ServerErrorMsg
	}
	a.State.SetAlert(msg, AlertDanger)
}
