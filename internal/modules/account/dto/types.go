package dto

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdatePasswordInput struct {
	Current string
	New     string
}

// ProgressInput overwrites only the metrics that are set.
type ProgressInput struct {
	StressManagement    *int
	EmotionalRegulation *int
	TraumaProcessing    *int
	SleepQuality        *int
}

type AddSessionInput struct {
	Date        string
	Title       string
	Notes       string
	StressLevel int
}

type ProfileInput struct {
	Name          *string
	Email         *string
	JoinDate      *string
	TotalSessions *int
	EmailVerified *bool
	Avatar        *string
}

type CompleteExerciseInput struct {
	Name string
	// StressLevel is recorded as the session's stress.
	StressLevel int
}

type Progress struct {
	StressManagement    int
	EmotionalRegulation int
	TraumaProcessing    int
	SleepQuality        int
}

type SessionOutput struct {
	ID          string
	Date        string
	Title       string
	Notes       string
	StressLevel int
}

type AccountOutput struct {
	ID                string
	Name              string
	Email             string
	JoinDate          string
	Progress          Progress
	Sessions          []SessionOutput
	Streak            int
	TotalSessions     int
	CompletedSessions int
	EmailVerified     bool
	Avatar            string
}

type AddSessionOutput struct {
	Session SessionOutput
	Account AccountOutput
}
