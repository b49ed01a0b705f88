package main

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/lijie8778708/DevConnector/internal/client"

	"github.com/spf13/cobra"
)

// ---------- 认证 ----------

func (c *cli) registerCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register NAME EMAIL",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathRegister); err != nil {
				return err
			}
			if err := c.app.Register(cmd.Context(), args[0], args[1], password); err != nil {
				return err
			}
			c.app.State.SetAlert("Registered", client.AlertSuccess)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login EMAIL",
		Short: "Sign in and keep the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathLogin); err != nil {
				return err
			}
			if err := c.app.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			u, _ := c.app.State.User()
			c.app.State.SetAlert("Welcome "+u.Name, client.AlertSuccess)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Logout()
		},
	}
}

// ---------- 控制台与个人资料 ----------

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your account and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathDashboard); err != nil {
				return err
			}
			u, _ := c.app.State.User()
			p, err := c.app.API.MyProfile(cmd.Context())
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
				p, err = nil, nil
			}
			if err != nil {
				return c.report(err)
			}
			renderDashboard(os.Stdout, u, p)
			return nil
		},
	}
}

func (c *cli) profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List developer profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathProfiles); err != nil {
				return err
			}
			ps, err := c.app.API.Profiles(cmd.Context())
			if err != nil {
				return c.report(err)
			}
			renderProfiles(os.Stdout, ps)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit profiles",
	}
	cmd.AddCommand(
		c.profileShowCmd(),
		c.profileEditCmd(),
		c.addExperienceCmd(),
		c.addEducationCmd(),
		c.removeEntryCmd("rm-experience", "Delete an experience entry", c.removeExperience),
		c.removeEntryCmd("rm-education", "Delete an education entry", c.removeEducation),
		c.deleteAccountCmd(),
	)
	return cmd
}

func (c *cli) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show USER_ID",
		Short: "Show one developer's profile and latest repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.enter("/profile/" + args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := c.app.API.ProfileByUser(ctx, m.Params["id"])
			if err != nil {
				return c.report(err)
			}
			renderProfile(os.Stdout, p)
			if p.GitHubUsername == "" {
				return nil
			}
			repos, err := c.app.API.GitHubRepos(ctx, p.GitHubUsername)
			if err != nil {
				return c.report(err)
			}
			renderRepos(os.Stdout, repos)
			return nil
		},
	}
}

func (c *cli) profileEditCmd() *cobra.Command {
	var in client.ProfileInput
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Create or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathEditProfile); err != nil {
				return err
			}
			p, err := c.app.API.UpsertProfile(cmd.Context(), in)
			if err != nil {
				return c.report(err)
			}
			c.app.State.SetAlert("Profile Updated", client.AlertSuccess)
			renderProfile(os.Stdout, p)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Status, "status", "", "professional status (required)")
	f.StringVar(&in.Skills, "skills", "", "comma separated skills (required)")
	f.StringVar(&in.Company, "company", "", "")
	f.StringVar(&in.Website, "website", "", "")
	f.StringVar(&in.Location, "location", "", "")
	f.StringVar(&in.Bio, "bio", "", "")
	f.StringVar(&in.GitHubUsername, "github", "", "github username")
	f.StringVar(&in.YouTube, "youtube", "", "")
	f.StringVar(&in.Twitter, "twitter", "", "")
	f.StringVar(&in.Facebook, "facebook", "", "")
	f.StringVar(&in.LinkedIn, "linkedin", "", "")
	f.StringVar(&in.Instagram, "instagram", "", "")
	return cmd
}

func (c *cli) addExperienceCmd() *cobra.Command {
	var in client.ExperienceInput
	cmd := &cobra.Command{
		Use:   "add-experience",
		Short: "Add a job to your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathAddExperience); err != nil {
				return err
			}
			p, err := c.app.API.AddExperience(cmd.Context(), in)
			if err != nil {
				return c.report(err)
			}
			c.app.State.SetAlert("Experience Added", client.AlertSuccess)
			renderExperience(os.Stdout, p.Experience)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "job title")
	f.StringVar(&in.Company, "company", "", "company")
	f.StringVar(&in.Location, "location", "", "")
	f.StringVar(&in.From, "from", "", "start date, YYYY-MM-DD")
	f.StringVar(&in.To, "to", "", "end date, YYYY-MM-DD")
	f.BoolVar(&in.Current, "current", false, "still working here")
	f.StringVar(&in.Description, "description", "", "")
	return cmd
}

func (c *cli) addEducationCmd() *cobra.Command {
	var in client.EducationInput
	cmd := &cobra.Command{
		Use:   "add-education",
		Short: "Add a school to your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathAddEducation); err != nil {
				return err
			}
			p, err := c.app.API.AddEducation(cmd.Context(), in)
			if err != nil {
				return c.report(err)
			}
			c.app.State.SetAlert("Education Added", client.AlertSuccess)
			renderEducation(os.Stdout, p.Education)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.School, "school", "", "")
	f.StringVar(&in.Degree, "degree", "", "")
	f.StringVar(&in.FieldOfStudy, "field", "", "field of study")
	f.StringVar(&in.From, "from", "", "start date, YYYY-MM-DD")
	f.StringVar(&in.To, "to", "", "end date, YYYY-MM-DD")
	f.BoolVar(&in.Current, "current", false, "still studying here")
	f.StringVar(&in.Description, "description", "", "")
	return cmd
}

type removeFunc func(cmd *cobra.Command, id string) error

func (c *cli) removeEntryCmd(use, short string, fn removeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathDashboard); err != nil {
				return err
			}
			return fn(cmd, args[0])
		},
	}
}

func (c *cli) removeExperience(cmd *cobra.Command, id string) error {
	p, err := c.app.API.RemoveExperience(cmd.Context(), id)
	if err != nil {
		return c.report(err)
	}
	c.app.State.SetAlert("Experience Removed", client.AlertSuccess)
	renderExperience(os.Stdout, p.Experience)
	return nil
}

func (c *cli) removeEducation(cmd *cobra.Command, id string) error {
	p, err := c.app.API.RemoveEducation(cmd.Context(), id)
	if err != nil {
		return c.report(err)
	}
	c.app.State.SetAlert("Education Removed", client.AlertSuccess)
	renderEducation(os.Stdout, p.Education)
	return nil
}

func (c *cli) deleteAccountCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete your account, profile and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathDashboard); err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			if err := c.app.API.DeleteAccount(cmd.Context()); err != nil {
				return c.report(err)
			}
			c.app.State.SetAlert("Your account has been permanently deleted", client.AlertSuccess)
			return c.app.Logout()
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

// ---------- 帖子 ----------

func (c *cli) postsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.enter(client.PathPosts); err != nil {
				return err
			}
			posts, err := c.app.API.Posts(cmd.Context())
			if err != nil {
				return c.report(err)
			}
			renderPosts(os.Stdout, posts)
			return nil
		},
	}
}

func (c *cli) postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Work with a single post",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show ID",
			Short: "Show a post with its comments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := c.enter("/posts/" + args[0])
				if err != nil {
					return err
				}
				p, err := c.app.API.Post(cmd.Context(), m.Params["id"])
				if err != nil {
					return c.report(err)
				}
				renderPost(os.Stdout, p)
				return nil
			},
		},
		&cobra.Command{
			Use:   "new TEXT...",
			Short: "Publish a post",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter(client.PathPosts); err != nil {
					return err
				}
				p, err := c.app.API.CreatePost(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return c.report(err)
				}
				c.app.State.SetAlert("Post Created", client.AlertSuccess)
				renderPost(os.Stdout, p)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete one of your posts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter(client.PathPosts); err != nil {
					return err
				}
				if err := c.app.API.DeletePost(cmd.Context(), args[0]); err != nil {
					return c.report(err)
				}
				c.app.State.SetAlert("Post Removed", client.AlertSuccess)
				return nil
			},
		},
		&cobra.Command{
			Use:   "like ID",
			Short: "Like a post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter(client.PathPosts); err != nil {
					return err
				}
				likes, err := c.app.API.Like(cmd.Context(), args[0])
				if err != nil {
					return c.report(err)
				}
				renderLikes(os.Stdout, likes)
				return nil
			},
		},
		&cobra.Command{
			Use:   "unlike ID",
			Short: "Withdraw your like",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter(client.PathPosts); err != nil {
					return err
				}
				likes, err := c.app.API.Unlike(cmd.Context(), args[0])
				if err != nil {
					return c.report(err)
				}
				renderLikes(os.Stdout, likes)
				return nil
			},
		},
		&cobra.Command{
			Use:   "comment ID TEXT...",
			Short: "Comment on a post",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter("/posts/" + args[0]); err != nil {
					return err
				}
				comments, err := c.app.API.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return c.report(err)
				}
				c.app.State.SetAlert("Comment Added", client.AlertSuccess)
				renderComments(os.Stdout, comments)
				return nil
			},
		},
		&cobra.Command{
			Use:   "uncomment ID COMMENT_ID",
			Short: "Delete one of your comments",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := c.enter("/posts/" + args[0]); err != nil {
					return err
				}
				comments, err := c.app.API.RemoveComment(cmd.Context(), args[0], args[1])
				if err != nil {
					return c.report(err)
				}
				c.app.State.SetAlert("Comment Removed", client.AlertSuccess)
				renderComments(os.Stdout, comments)
				return nil
			},
		},
	)
	return cmd
}
