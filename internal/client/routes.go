package client

import "strings"

// 路由路径
const (
	PathLanding       = "/"
	PathRegister      = "/register"
	PathLogin         = "/login"
	PathProfiles      = "/profiles"
	PathProfile       = "/profile/:id"
	PathDashboard     = "/dashboard"
	PathCreateProfile = "/create-profile"
	PathEditProfile   = "/edit-profile"
	PathAddExperience = "/add-experience"
	PathAddEducation  = "/add-education"
	PathPosts         = "/posts"
	PathPost          = "/posts/:id"
	PathNotFound      = "*"
)

// Route 路由表中的一项，已登录用户访问 GuestOnly 路由时跳转到控制台
type Route struct {
	Name            string
	Pattern         string
	RequiresSession bool
	GuestOnly       bool
}

// DefaultRoutes 应用路由表
var DefaultRoutes = []Route{
	{Name: "landing", Pattern: PathLanding, GuestOnly: true},
	{Name: "register", Pattern: PathRegister, GuestOnly: true},
	{Name: "login", Pattern: PathLogin, GuestOnly: true},
	{Name: "profiles", Pattern: PathProfiles},
	{Name: "profile", Pattern: PathProfile},
	{Name: "dashboard", Pattern: PathDashboard, RequiresSession: true},
	{Name: "create-profile", Pattern: PathCreateProfile, RequiresSession: true},
	{Name: "edit-profile", Pattern: PathEditProfile, RequiresSession: true},
	{Name: "add-experience", Pattern: PathAddExperience, RequiresSession: true},
	{Name: "add-education", Pattern: PathAddEducation, RequiresSession: true},
	{Name: "posts", Pattern: PathPosts, RequiresSession: true},
	{Name: "post", Pattern: PathPost, RequiresSession: true},
}

var notFoundRoute = Route{Name: "not-found", Pattern: PathNotFound}

// Match 路径解析结果，守卫发生重定向时 Redirected 为 true
type Match struct {
	Route      Route
	Params     map[string]string
	Path       string
	Redirected bool
}

// Guard 检查匹配到的路由，返回重定向路径，放行时返回 ""
type Guard func(Route) string

// RequireSession 未登录访问私有路由时跳转到 loginPath
func RequireSession(s *State, loginPath string) Guard {
	return func(r Route) string {
		if r.RequiresSession && !s.IsAuthenticated() {
			return loginPath
		}
		return ""
	}
}

// RedirectAuthenticated 已登录用户访问游客页面时跳转
func RedirectAuthenticated(s *State, to string) Guard {
	return func(r Route) string {
		if r.GuestOnly && s.IsAuthenticated() {
			return to
		}
		return ""
	}
}

type Navigator struct {
	routes []Route
	guards []Guard
}

func NewNavigator(routes []Route, guards ...Guard) *Navigator {
	return &Navigator{routes: routes, guards: guards}
}

// Resolve 匹配路径并执行守卫，重定向次数有上限，避免守卫互相循环
func (n *Navigator) Resolve(path string) Match {
	m := n.match(path)
	for hops := 0; hops < len(n.guards)+1; hops++ {
		to := n.check(m.Route)
		if to == "" {
			return m
		}
		m = n.match(to)
		m.Redirected = true
	}
	return m
}

func (n *Navigator) check(r Route) string {
	for _, g := range n.guards {
		if to := g(r); to != "" {
			return to
		}
	}
	return ""
}

func (n *Navigator) match(path string) Match {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	for _, r := range n.routes {
		if params, ok := matchPattern(r.Pattern, path); ok {
			return Match{Route: r, Params: params, Path: path}
		}
	}
	return Match{Route: notFoundRoute, Params: map[string]string{}, Path: path}
}

// matchPattern 逐段比较，":name" 段捕获参数
func matchPattern(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range ps {
		if strings.HasPrefix(p, ":") {
			if xs[i] == "" {
				return nil, false
			}
			params[p[1:]] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
