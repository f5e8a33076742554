package dto

type QueryInput struct {
	Text      string
	TimeFrame string
	Sort      string
}

type SessionOutput struct {
	ID          string
	Date        string
	Title       string
	Notes       string
	StressLevel int
}

type StressPointOutput struct {
	Day   string
	Value int
}

type WeekCountOutput struct {
	Week     string
	Sessions int
}

type ProgressOutput struct {
	StressManagement    int
	EmotionalRegulation int
	TraumaProcessing    int
	SleepQuality        int
}

type DashboardOutput struct {
	Greeting    string
	TodayStress int
	Band        string
	Stress      []StressPointOutput
	Weeks       []WeekCountOutput
	Average     int
	Trend       string
	Streak      int
	Completed   int
	Total       int
	Completion  float64
	Progress    ProgressOutput
}

type TrendOutput struct {
	Points []int
	Trend  string
}

type CompleteExerciseOutput struct {
	Session     SessionOutput
	TodayStress int
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Dir   string
	Notes []string
}

type ExerciseOutput struct {
	ID            int
	Title         string
	Category      string
	Duration      string
	Description   string
	Difficulty    string
	Effectiveness int
	Steps         []string
}
