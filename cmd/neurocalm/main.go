package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"neurocalm/internal/bootstrap"
	accountdto "neurocalm/internal/modules/account/dto"
	"neurocalm/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "neurocalm",
		Short:         "Therapy session and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory (holds neurocalm.yaml and the record store)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRegisterCmd(&dataDir))
	root.AddCommand(newLoginCmd(&dataDir))
	root.AddCommand(newLogoutCmd(&dataDir))
	root.AddCommand(newWhoamiCmd(&dataDir))
	root.AddCommand(newVerifyEmailCmd(&dataDir))
	root.AddCommand(newResetPasswordCmd(&dataDir))
	root.AddCommand(newUpdatePasswordCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newProgressCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newAvatarCmd(&dataDir))
	root.AddCommand(newExerciseCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newChatCmd(&dataDir))
	return root
}

func loadApp(dataDir string, out io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, bootstrap.Options{Out: out})
}

// withApp runs fn against a freshly wired app and closes it afterwards.
// Notifications are printed to the command's stdout.
func withApp(cmd *cobra.Command, dataDir string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(dataDir, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(cmd.Context(), app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the neurocalm terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, nil)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newRegisterCmd(dataDir *string) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.Register(ctx, name, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account %s (%s)\n", out.ID, out.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLoginCmd(dataDir *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a registered account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.Login(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", out.Name, out.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLogoutCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.AccountCLI.Logout(ctx)
			})
		},
	}
}

func newWhoamiCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.Current(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s <%s>\n", out.Name, out.Email)
				_, _ = fmt.Fprintf(w, "id=%s joined=%s verified=%t\n", out.ID, out.JoinDate, out.EmailVerified)
				_, _ = fmt.Fprintf(w, "sessions=%d/%d streak=%d\n", out.CompletedSessions, out.TotalSessions, out.Streak)
				if out.Avatar != "" {
					_, _ = fmt.Fprintf(w, "avatar=%s\n", out.Avatar)
				}
				return nil
			})
		},
	}
}

func newVerifyEmailCmd(dataDir *string) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Send a verification email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				target := email
				if target == "" {
					out, err := app.AccountCLI.Current(ctx)
					if err != nil {
						return err
					}
					target = out.Email
				}
				return app.AccountCLI.SendVerificationEmail(ctx, target)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "address to verify (defaults to the signed-in account)")
	return cmd
}

func newResetPasswordCmd(dataDir *string) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.AccountCLI.ResetPassword(ctx, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newUpdatePasswordCmd(dataDir *string) *cobra.Command {
	var current, next string
	cmd := &cobra.Command{
		Use:   "update-password",
		Short: "Change the signed-in account's password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.AccountCLI.UpdatePassword(ctx, current, next)
			})
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	return cmd
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Therapy session log"}

	var date, title, notes string
	var stress int
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a therapy session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.AddTherapySession(ctx, date, title, notes, stress)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s on %s\n", out.Session.ID, out.Session.Date)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "session date (YYYY-MM-DD)")
	add.Flags().StringVar(&title, "title", "", "session title")
	add.Flags().StringVar(&notes, "notes", "", "free-form notes")
	add.Flags().IntVar(&stress, "stress", 50, "stress level (0..100)")

	var search, frame, sort string
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.AnalyticsCLI.Sessions(ctx, search, frame, sort)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(w, "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(w, "%s  %-3d %s\t%s\n", s.Date, s.StressLevel, s.Title, s.ID)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "match title or notes")
	list.Flags().StringVar(&frame, "frame", "all", "time frame: all|month|week")
	list.Flags().StringVar(&sort, "sort", "newest", "sort: newest|oldest|stressHigh|stressLow")

	session.AddCommand(add, list)
	return session
}

func newProgressCmd(dataDir *string) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Progress metrics"}

	var stressMgmt, emotional, trauma, sleep int
	update := &cobra.Command{
		Use:   "update",
		Short: "Overwrite the given progress metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var in accountdto.ProgressInput
			if flags.Changed("stress-management") {
				in.StressManagement = &stressMgmt
			}
			if flags.Changed("emotional-regulation") {
				in.EmotionalRegulation = &emotional
			}
			if flags.Changed("trauma-processing") {
				in.TraumaProcessing = &trauma
			}
			if flags.Changed("sleep-quality") {
				in.SleepQuality = &sleep
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AccountCLI.UpdateProgress(ctx, in)
				if err != nil {
					return err
				}
				p := out.Progress
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stress=%d emotional=%d trauma=%d sleep=%d\n",
					p.StressManagement, p.EmotionalRegulation, p.TraumaProcessing, p.SleepQuality)
				return nil
			})
		},
	}
	update.Flags().IntVar(&stressMgmt, "stress-management", 0, "stress management (0..100)")
	update.Flags().IntVar(&emotional, "emotional-regulation", 0, "emotional regulation (0..100)")
	update.Flags().IntVar(&trauma, "trauma-processing", 0, "trauma processing (0..100)")
	update.Flags().IntVar(&sleep, "sleep-quality", 0, "sleep quality (0..100)")

	progress.AddCommand(update)
	return progress
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Account profile"}

	var name, email, joinDate string
	var totalSessions int
	var verified bool
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var in accountdto.ProfileInput
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("email") {
				in.Email = &email
			}
			if flags.Changed("join-date") {
				in.JoinDate = &joinDate
			}
			if flags.Changed("total-sessions") {
				in.TotalSessions = &totalSessions
			}
			if flags.Changed("email-verified") {
				in.EmailVerified = &verified
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				_, err := app.AccountCLI.UpdateProfile(ctx, in)
				return err
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "display name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&joinDate, "join-date", "", "join date (YYYY-MM-DD)")
	update.Flags().IntVar(&totalSessions, "total-sessions", 0, "planned number of sessions")
	update.Flags().BoolVar(&verified, "email-verified", false, "mark the email as verified")

	profile.AddCommand(update)
	return profile
}

func newAvatarCmd(dataDir *string) *cobra.Command {
	avatar := &cobra.Command{Use: "avatar", Short: "Profile picture"}
	avatar.AddCommand(&cobra.Command{
		Use:   "set <image-ref>",
		Short: "Set the avatar image reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				_, err := app.AccountCLI.UpdateAvatar(ctx, args[0])
				return err
			})
		},
	})
	return avatar
}

func newExerciseCmd(dataDir *string) *cobra.Command {
	exercise := &cobra.Command{Use: "exercise", Short: "Guided exercises"}

	var category string
	var steps bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List the exercise catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				exercises, err := app.AnalyticsCLI.Exercises(ctx, category)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, e := range exercises {
					_, _ = fmt.Fprintf(w, "%d. %s [%s] %s, %s, %d%% effective\n", e.ID, e.Title, e.Category, e.Duration, e.Difficulty, e.Effectiveness)
					_, _ = fmt.Fprintf(w, "   %s\n", e.Description)
					if steps {
						for i, step := range e.Steps {
							_, _ = fmt.Fprintf(w, "   %d) %s\n", i+1, step)
						}
					}
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&category, "category", "all", "all|breathing|relaxation|mindfulness|grounding")
	list.Flags().BoolVar(&steps, "steps", false, "print each exercise's steps")
	exercise.AddCommand(list)

	exercise.AddCommand(&cobra.Command{
		Use:   "complete <id|name>",
		Short: "Record a completed exercise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AnalyticsCLI.CompleteExercise(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s stress=%d\n", out.Session.ID, out.Session.StressLevel)
				return nil
			})
		},
	})
	return exercise
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Derived statistics"}

	stats.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				d, err := app.AnalyticsCLI.Dashboard(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "Welcome back, %s\n", d.Greeting)
				_, _ = fmt.Fprintf(w, "stress today: %d%% (%s)\n", d.TodayStress, d.Band)
				_, _ = fmt.Fprintf(w, "sessions: %d/%d (%.0f%%) streak=%d\n", d.Completed, d.Total, d.Completion, d.Streak)
				_, _ = fmt.Fprintf(w, "average stress: %d trend: %s\n", d.Average, d.Trend)
				p := d.Progress
				_, _ = fmt.Fprintf(w, "progress: stress=%d emotional=%d trauma=%d sleep=%d\n",
					p.StressManagement, p.EmotionalRegulation, p.TraumaProcessing, p.SleepQuality)
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "stress-week",
		Short: "Stress level for each of the last 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				points, err := app.AnalyticsCLI.WeeklyStress(ctx)
				if err != nil {
					return err
				}
				for _, p := range points {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %3d %s\n", p.Day, p.Value, strings.Repeat("#", p.Value/5))
				}
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "weekly",
		Short: "Sessions per week over the last 4 weeks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				weeks, err := app.AnalyticsCLI.WeeklyCounts(ctx)
				if err != nil {
					return err
				}
				for _, wk := range weeks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", wk.Week, wk.Sessions)
				}
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "average",
		Short: "Average stress over all sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				avg, err := app.AnalyticsCLI.AverageStress(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), avg)
				return nil
			})
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "trend",
		Short: "Stress trend over the most recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				trend, err := app.AnalyticsCLI.Trend(ctx)
				if err != nil {
					return err
				}
				values := make([]string, len(trend.Points))
				for i, v := range trend.Points {
					values[i] = fmt.Sprint(v)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", trend.Trend, strings.Join(values, " "))
				return nil
			})
		},
	})
	return stats
}

func newExportCmd(dataDir *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the session log as markdown notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AnalyticsCLI.Export(ctx, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Notes), out.Dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "target directory")
	return cmd
}

func newChatCmd(dataDir *string) *cobra.Command {
	chat := &cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				reply, err := app.ChatCLI.Respond(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n(stress %d%%)\n", reply.Content, reply.StressLevel)
				return nil
			})
		},
	}
	chat.AddCommand(&cobra.Command{
		Use:   "prompts",
		Short: "List suggested messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.ChatCLI.Greeting(ctx).Content)
				for _, p := range app.ChatCLI.SuggestedPrompts(ctx) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", p)
				}
				return nil
			})
		},
	})
	return chat
}
