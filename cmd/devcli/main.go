// Command devcli DevConnector 命令行客户端
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lijie8778708/DevConnector/internal/client"
	"github.com/lijie8778708/DevConnector/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cli struct {
	v   *viper.Viper
	app *client.App
}

func main() {
	c := &cli{v: viper.New()}
	err := c.rootCmd().Execute()
	shown := c.flushAlerts()
	if err != nil {
		if shown == 0 {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "devcli",
		Short:         "Browse and post to a DevConnector server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.String("api", "http://localhost:5000", "server base URL")
	flags.String("token-file", "", "where the session token is kept (default: user config dir)")
	flags.Bool("verbose", false, "debug logging")
	_ = c.v.BindPFlags(flags)
	c.v.SetEnvPrefix("DEVC")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.dashboardCmd(),
		c.profilesCmd(),
		c.profileCmd(),
		c.postsCmd(),
		c.postCmd(),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	if c.v.GetBool("verbose") {
		logger.Log.Logger.SetLevel(logrus.DebugLevel)
	}

	path := c.v.GetString("token-file")
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		path = p
	}

	c.app = client.NewApp(
		client.NewAPI(c.v.GetString("api"), nil),
		client.NewState(),
		&client.FileTokenStore{Path: path},
	)
	return c.app.Bootstrap(ctx)
}

// flushAlerts 输出并清除待显示的提示，返回条数
func (c *cli) flushAlerts() int {
	if c.app == nil {
		return 0
	}
	alerts := c.app.State.Alerts()
	for _, a := range alerts {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", a.Type, a.Msg)
		c.app.State.RemoveAlert(a.ID)
	}
	return len(alerts)
}

// enter 进入 path，被守卫重定向时返回错误
func (c *cli) enter(path string) (client.Match, error) {
	m := c.app.Navigate(path)
	if m.Redirected {
		switch m.Route.Pattern {
		case client.PathLogin:
			return m, fmt.Errorf("%s requires a session: run devcli login", path)
		case client.PathDashboard:
			return m, fmt.Errorf("already signed in: run devcli logout first")
		}
		return m, fmt.Errorf("%s redirected to %s", path, m.Route.Pattern)
	}
	if m.Route.Pattern == client.PathNotFound {
		return m, fmt.Errorf("page not found: %s", path)
	}
	return m, nil
}

// report 把 err 记为提示并原样返回给 cobra
func (c *cli) report(err error) error {
	if err != nil {
		c.app.Report(err)
	}
	return err
}
