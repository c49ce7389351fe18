package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"stockdash/internal/model"
	"stockdash/pkg/llm"
	"stockdash/pkg/mailer"
)

const fallbackIntro = "Thanks for joining! You now have the tools to follow the companies you care about and keep up with the news that moves them."

type UserLookup interface {
	GetUserByID(id string) (*model.User, error)
}

type IntroWriter interface {
	WelcomeIntro(ctx context.Context, profile llm.UserProfile) (string, error)
}

// WelcomeEmail sends the personalized welcome e-mail for app/user.created.
type WelcomeEmail struct {
	users        UserLookup
	writer       IntroWriter
	sender       mailer.Sender
	dashboardURL string
}

func NewWelcomeEmail(users UserLookup, writer IntroWriter, sender mailer.Sender, dashboardURL string) *WelcomeEmail {
	return &WelcomeEmail{users: users, writer: writer, sender: sender, dashboardURL: dashboardURL}
}

func (j *WelcomeEmail) Handle(ctx context.Context, event model.Event) error {
	userID := event.Data["user_id"]

	user, err := j.users.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("loading user %s: %w", userID, err)
	}

	if user == nil {
		slog.Warn("welcome email for unknown user skipped", "user_id", userID)
		return nil
	}

	intro, err := j.writer.WelcomeIntro(ctx, llm.UserProfile{
		Name:              user.Name,
		Country:           user.Country,
		InvestmentGoals:   user.InvestmentGoals,
		RiskTolerance:     user.RiskTolerance,
		PreferredIndustry: user.PreferredIndustry,
	})
	if err != nil {
		slog.Warn("error generating welcome intro, using fallback", "user_id", userID, "error", err)
		intro = fallbackIntro
	}

	msg, err := mailer.RenderWelcome(mailer.WelcomeData{
		Email:        user.Email,
		Name:         user.Name,
		Intro:        intro,
		DashboardURL: j.dashboardURL,
	})
	if err != nil {
		return err
	}

	return j.sender.Send(ctx, msg)
}
