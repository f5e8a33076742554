package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountdto "neurocalm/internal/modules/account/dto"
	analyticsdto "neurocalm/internal/modules/analytics/dto"
	chatdto "neurocalm/internal/modules/chat/dto"
	"neurocalm/internal/platform/notify"
)

type fakeAccount struct {
	notifier  *notify.Recorder
	added     []accountdto.AddSessionInput
	progress  []accountdto.ProgressInput
	profiles  []accountdto.ProfileInput
	loggedOut bool
}

func (f *fakeAccount) Current(context.Context) (accountdto.AccountOutput, error) {
	return accountdto.AccountOutput{Name: "Ann", Email: "ann@example.com"}, nil
}
func (f *fakeAccount) Logout(ctx context.Context) error {
	f.loggedOut = true
	f.notifier.Notify(ctx, notify.Success("Logged out", "You have been logged out successfully"))
	return nil
}
func (f *fakeAccount) SendVerificationEmail(context.Context, string) error { return nil }
func (f *fakeAccount) UpdateProgress(_ context.Context, in accountdto.ProgressInput) (accountdto.AccountOutput, error) {
	f.progress = append(f.progress, in)
	return accountdto.AccountOutput{}, nil
}
func (f *fakeAccount) AddTherapySession(ctx context.Context, in accountdto.AddSessionInput) (accountdto.AddSessionOutput, error) {
	f.added = append(f.added, in)
	f.notifier.Notify(ctx, notify.Success("Session recorded", "Your therapy session has been recorded"))
	return accountdto.AddSessionOutput{}, nil
}
func (f *fakeAccount) UpdateProfile(_ context.Context, in accountdto.ProfileInput) (accountdto.AccountOutput, error) {
	f.profiles = append(f.profiles, in)
	return accountdto.AccountOutput{}, nil
}

type fakeAnalytics struct {
	exercises []string
	exportErr error
}

func (f *fakeAnalytics) Dashboard(context.Context) (analyticsdto.DashboardOutput, error) {
	return analyticsdto.DashboardOutput{Greeting: "Ann"}, nil
}
func (f *fakeAnalytics) Sessions(context.Context, analyticsdto.QueryInput) ([]analyticsdto.SessionOutput, error) {
	return nil, nil
}
func (f *fakeAnalytics) CompleteExercise(_ context.Context, name string) (analyticsdto.CompleteExerciseOutput, error) {
	f.exercises = append(f.exercises, name)
	return analyticsdto.CompleteExerciseOutput{}, nil
}
func (f *fakeAnalytics) Export(_ context.Context, in analyticsdto.ExportInput) (analyticsdto.ExportOutput, error) {
	return analyticsdto.ExportOutput{Dir: in.Dir, Notes: []string{"a.md"}}, f.exportErr
}

type fakeChat struct{}

func (fakeChat) Greeting(context.Context) chatdto.MessageOutput {
	return chatdto.MessageOutput{Sender: "assistant", Content: "hi"}
}
func (fakeChat) Respond(_ context.Context, text string) (chatdto.MessageOutput, error) {
	return chatdto.MessageOutput{Sender: "assistant", Content: text}, nil
}
func (fakeChat) SuggestedPrompts(context.Context) []string { return nil }

func newTestModel() (Model, *fakeAccount, *fakeAnalytics, *notify.Recorder) {
	rec := &notify.Recorder{}
	acct := &fakeAccount{notifier: rec}
	an := &fakeAnalytics{}
	return NewModel(acct, an, fakeChat{}, rec), acct, an, rec
}

func run(t *testing.T, m Model, input string) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.executePalette(input)
	require.NotNil(t, cmd, "command %q produced no cmd", input)
	return next.(Model), cmd()
}

func TestPaletteAddSession(t *testing.T) {
	t.Parallel()
	m, acct, _, _ := newTestModel()

	m, msg := run(t, m, "session:add 2024-03-14 75 Grounding practice")
	require.Len(t, acct.added, 1)
	assert.Equal(t, accountdto.AddSessionInput{Date: "2024-03-14", Title: "Grounding practice", StressLevel: 75}, acct.added[0])

	next, _ := m.Update(msg)
	assert.Equal(t, "Session recorded: Your therapy session has been recorded", next.(Model).status)
}

func TestPaletteProgressAndProfile(t *testing.T) {
	t.Parallel()
	m, acct, _, _ := newTestModel()

	m, _ = run(t, m, "progress sleep 64")
	require.Len(t, acct.progress, 1)
	require.NotNil(t, acct.progress[0].SleepQuality)
	assert.Equal(t, 64, *acct.progress[0].SleepQuality)
	assert.Nil(t, acct.progress[0].StressManagement)

	_, _ = run(t, m, "profile:name Ann Lee")
	require.Len(t, acct.profiles, 1)
	assert.Equal(t, "Ann Lee", *acct.profiles[0].Name)
}

func TestPaletteExerciseGoesThroughAnalytics(t *testing.T) {
	t.Parallel()
	m, _, an, _ := newTestModel()
	m, msg := run(t, m, "exercise Box Breathing")
	assert.Equal(t, []string{"Box Breathing"}, an.exercises)

	next, _ := m.Update(msg)
	assert.Equal(t, "exercise completed", next.(Model).status)
}

func TestPaletteUsageErrors(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestModel()
	cases := map[string]string{
		"session:add 2024-03-14":         "usage: session:add",
		"session:add 2024-03-14 x Title": "invalid stress level",
		"progress mood 5":                "unknown metric: mood",
		"progress sleep abc":             "invalid value",
		"export":                         "usage: export",
		"dance":                          "unknown command: dance",
	}
	for input, want := range cases {
		next, cmd := m.executePalette(input)
		assert.Nil(t, cmd, input)
		assert.True(t, strings.HasPrefix(next.(Model).status, want), "%q -> %q", input, next.(Model).status)
	}
}

func TestExportFailureFallsBackToError(t *testing.T) {
	t.Parallel()
	m, _, an, _ := newTestModel()
	an.exportErr = errors.New("disk full")
	m, msg := run(t, m, "export /tmp/out")
	next, _ := m.Update(msg)
	assert.Contains(t, next.(Model).status, "disk full")
}

func TestLogoutQuits(t *testing.T) {
	t.Parallel()
	m, acct, _, _ := newTestModel()
	m, msg := run(t, m, "logout")
	assert.True(t, acct.loggedOut)

	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Logged out: You have been logged out successfully", next.(Model).status)
}

func TestTabCycles(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestModel()
	var next tea.Model = m
	for i := tabID(0); i < tabCount; i++ {
		next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, tabDashboard, next.(Model).activeTab)

	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabChat, next.(Model).activeTab)
}
