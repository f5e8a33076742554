package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ExerciseCategory string

const (
	CategoryAll         ExerciseCategory = "all"
	CategoryBreathing   ExerciseCategory = "breathing"
	CategoryRelaxation  ExerciseCategory = "relaxation"
	CategoryMindfulness ExerciseCategory = "mindfulness"
	CategoryGrounding   ExerciseCategory = "grounding"
)

// Exercise is a guided exercise from the built-in catalog. Effectiveness is a
// percentage shown to the user, not derived from their own history.
type Exercise struct {
	ID            int
	Title         string
	Category      ExerciseCategory
	Duration      string
	Description   string
	Difficulty    string
	Effectiveness int
	Steps         []string
}

var catalog = []Exercise{
	{
		ID: 1, Title: "Deep Breathing", Category: CategoryBreathing, Duration: "5 min", Difficulty: "Beginner", Effectiveness: 85,
		Description: "A simple deep breathing exercise to help reduce stress and anxiety.",
		Steps: []string{
			"Find a comfortable position sitting or lying down.",
			"Place one hand on your chest and the other on your stomach.",
			"Take a slow, deep breath in through your nose for 4 seconds.",
			"Hold your breath for 2 seconds.",
			"Exhale slowly through your mouth for 6 seconds.",
			"Repeat for 5 minutes.",
		},
	},
	{
		ID: 2, Title: "Progressive Muscle Relaxation", Category: CategoryRelaxation, Duration: "10 min", Difficulty: "Intermediate", Effectiveness: 78,
		Description: "Systematically tense and relax different muscle groups to reduce physical tension.",
		Steps: []string{
			"Start by tensing and relaxing your toes and feet.",
			"Work your way up to your calves and thighs.",
			"Continue with your abdomen and chest.",
			"Next, focus on your hands, arms, and shoulders.",
			"Finally, tense and relax your neck and facial muscles.",
			"For each muscle group, tense for 5 seconds, then relax for 10 seconds.",
		},
	},
	{
		ID: 3, Title: "Guided Visualization", Category: CategoryMindfulness, Duration: "15 min", Difficulty: "Beginner", Effectiveness: 92,
		Description: "A guided journey to a peaceful place to calm your mind and reduce anxiety.",
		Steps: []string{
			"Close your eyes and take several deep breaths.",
			"Imagine a peaceful place where you feel safe and relaxed.",
			"Notice the details around you: the sights, sounds, and smells.",
			"Feel the temperature and any sensations on your skin.",
			"Spend time exploring this place and feeling the calm it brings.",
			"When ready, slowly bring your awareness back to the present.",
		},
	},
	{
		ID: 4, Title: "5-4-3-2-1 Grounding", Category: CategoryGrounding, Duration: "3 min", Difficulty: "Beginner", Effectiveness: 80,
		Description: "A quick technique to ground yourself during moments of anxiety or flashbacks.",
		Steps: []string{
			"Name 5 things you can see around you.",
			"Name 4 things you can physically feel or touch.",
			"Name 3 things you can hear.",
			"Name 2 things you can smell (or like the smell of).",
			"Name 1 thing you can taste (or like the taste of).",
			"Take a deep breath to conclude the exercise.",
		},
	},
	{
		ID: 5, Title: "Body Scan Meditation", Category: CategoryMindfulness, Duration: "20 min", Difficulty: "Intermediate", Effectiveness: 88,
		Description: "A mindful exploration of your body to release tension and increase awareness.",
		Steps: []string{
			"Lie down in a comfortable position and close your eyes.",
			"Begin by bringing awareness to your breath.",
			"Slowly scan from your toes to the top of your head.",
			"Notice any sensations, tension, or discomfort in each area.",
			"Don't try to change anything, just observe with curiosity.",
			"Complete the scan by bringing awareness to your body as a whole.",
		},
	},
	{
		ID: 6, Title: "Breathing Square", Category: CategoryBreathing, Duration: "5 min", Difficulty: "Beginner", Effectiveness: 75,
		Description: "A visual breathing technique that helps regulate your breath and calm anxiety.",
		Steps: []string{
			"Visualize a square in front of you.",
			"As you trace the first side, breathe in for 4 counts.",
			"Trace the second side while holding your breath for 4 counts.",
			"Trace the third side while exhaling for 4 counts.",
			"Trace the fourth side while holding for 4 counts.",
			"Repeat this pattern for 5 minutes.",
		},
	},
}

// Exercises lists the catalog in a category; "" and "all" list everything.
func Exercises(category ExerciseCategory) ([]Exercise, error) {
	switch category {
	case "", CategoryAll, CategoryBreathing, CategoryRelaxation, CategoryMindfulness, CategoryGrounding:
	default:
		return nil, fmt.Errorf("unknown exercise category %q", category)
	}
	out := make([]Exercise, 0, len(catalog))
	for _, e := range catalog {
		if category == "" || category == CategoryAll || e.Category == category {
			out = append(out, cloneExercise(e))
		}
	}
	return out, nil
}

// FindExercise resolves a catalog entry by numeric id or by title, ignoring
// case and surrounding space.
func FindExercise(ref string) (Exercise, bool) {
	ref = strings.TrimSpace(ref)
	id, idErr := strconv.Atoi(ref)
	for _, e := range catalog {
		if (idErr == nil && e.ID == id) || strings.EqualFold(e.Title, ref) {
			return cloneExercise(e), true
		}
	}
	return Exercise{}, false
}

func cloneExercise(e Exercise) Exercise {
	e.Steps = append([]string(nil), e.Steps...)
	return e
}
