package domain

import "strings"

type Reply struct {
	Content     string
	StressLevel int
}

type rule struct {
	keywords []string
	reply    Reply
}

// Rules are tried in order; the first keyword hit wins.
var rules = []rule{
	{
		keywords: []string{"anxious", "stress"},
		reply: Reply{
			Content: "I notice you're feeling anxious. That is a very common response to trauma. " +
				"Let's try a quick grounding exercise: name 5 things you can see, 4 you can touch, " +
				"3 you can hear, 2 you can smell and 1 you can taste. How does that feel?",
			StressLevel: 72,
		},
	},
	{
		keywords: []string{"sleep", "nightmare"},
		reply: Reply{
			Content: "Trouble sleeping and nightmares are common after trauma. A calming bedtime routine can help: " +
				"no screens for an hour before bed, some gentle stretching and a guided meditation. " +
				"Would you like a meditation suggestion for sleep?",
			StressLevel: 65,
		},
	},
	{
		keywords: []string{"help", "bad"},
		reply: Reply{
			Content: "I'm sorry this is a hard moment. Healing isn't linear and difficult days are part of it. " +
				"Would you like to try a breathing exercise together, or talk through some coping strategies you can use right now?",
			StressLevel: 80,
		},
	},
}

var fallback = Reply{
	Content: "Thank you for sharing that with me. How are you feeling about it right now? " +
		"Recognising and naming emotions is an important part of healing.",
	StressLevel: 45,
}

const Greeting = "Hello, I'm your therapy assistant. How are you feeling today?"

// Respond picks a canned reply by case-insensitive keyword match.
func Respond(text string) Reply {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fallback
}

func SuggestedPrompts() []string {
	return []string{
		"I'm feeling anxious about going outside today.",
		"I had a nightmare last night and couldn't go back to sleep.",
		"I noticed I'm getting triggered by loud noises. What can I do?",
		"I want to talk about a positive moment I had yesterday.",
	}
}
