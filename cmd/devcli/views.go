package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lijie8778708/DevConnector/internal/client"
	"github.com/lijie8778708/DevConnector/internal/models"

	"github.com/google/go-github/github"
)

const dateLayout = "2006-01-02"

func period(from, to string, current bool) string {
	switch {
	case current:
		return from + " - Now"
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}

func renderDashboard(w io.Writer, u *models.User, p *client.Profile) {
	fmt.Fprintf(w, "Welcome %s\n", u.Name)
	if p == nil {
		fmt.Fprintln(w, "You have not yet setup a profile, run: devcli profile edit --status ... --skills ...")
		return
	}
	renderExperience(w, p.Experience)
	renderEducation(w, p.Education)
}

func renderProfiles(w io.Writer, ps []client.Profile) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No profiles found...")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tNAME\tSTATUS\tLOCATION\tSKILLS")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.User.ID, p.User.Name, statusLine(&p), p.Location, strings.Join(p.Skills, ", "))
	}
	tw.Flush()
}

func statusLine(p *client.Profile) string {
	if p.Company == "" {
		return p.Status
	}
	return p.Status + " at " + p.Company
}

func renderProfile(w io.Writer, p *client.Profile) {
	fmt.Fprintf(w, "%s\n%s\n", p.User.Name, statusLine(p))
	if p.Location != "" {
		fmt.Fprintln(w, p.Location)
	}
	if p.Website != "" {
		fmt.Fprintln(w, p.Website)
	}
	if p.Bio != "" {
		fmt.Fprintf(w, "\n%s\n", p.Bio)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(w, "\nSkills: %s\n", strings.Join(p.Skills, ", "))
	}
	renderExperience(w, p.Experience)
	renderEducation(w, p.Education)
}

func renderExperience(w io.Writer, exps []models.Experience) {
	fmt.Fprintln(w, "\nExperience")
	if len(exps) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tCOMPANY\tTITLE\tYEARS")
	for _, e := range exps {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.ID, e.Company, e.Title, period(e.From, e.To, e.Current))
	}
	tw.Flush()
}

func renderEducation(w io.Writer, edus []models.Education) {
	fmt.Fprintln(w, "\nEducation")
	if len(edus) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tSCHOOL\tDEGREE\tYEARS")
	for _, e := range edus {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.ID, e.School, e.Degree, period(e.From, e.To, e.Current))
	}
	tw.Flush()
}

func renderRepos(w io.Writer, repos []*github.Repository) {
	fmt.Fprintln(w, "\nGithub Repos")
	for _, r := range repos {
		fmt.Fprintf(w, "  %s  stars:%d watchers:%d forks:%d\n",
			r.GetName(), r.GetStargazersCount(), r.GetWatchersCount(), r.GetForksCount())
		if d := r.GetDescription(); d != "" {
			fmt.Fprintf(w, "    %s\n", d)
		}
	}
}

func renderPosts(w io.Writer, posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts yet")
		return
	}
	for i := range posts {
		renderPostSummary(w, &posts[i])
	}
}

func renderPostSummary(w io.Writer, p *models.Post) {
	fmt.Fprintf(w, "[%s] %s on %s\n  %s\n  likes:%d comments:%d\n",
		p.ID, p.Name, p.CreatedAt.Format(dateLayout), p.Text, len(p.Likes), len(p.Comments))
}

func renderPost(w io.Writer, p *models.Post) {
	renderPostSummary(w, p)
	renderComments(w, p.Comments)
}

func renderLikes(w io.Writer, likes []models.Like) {
	fmt.Fprintf(w, "likes: %d\n", len(likes))
}

func renderComments(w io.Writer, comments []models.Comment) {
	for _, c := range comments {
		fmt.Fprintf(w, "  - [%s] %s on %s: %s\n", c.ID, c.Name, c.CreatedAt.Format(dateLayout), c.Text)
	}
}
