// Package catalog holds the question sets compiled into the binary.
package catalog

import "lingua-quiz-service/internal/domain"

const (
	// DefaultQuizID is the quiz served by /tests when no quiz is requested.
	DefaultQuizID = "slavic-etymology"
	// PekaQuizID is the single-question "peka" quiz.
	PekaQuizID = "peka"
)

var translationOptions = []string{"Bakery", "River", "Mountain", "Street", "House"}

func answer(i int) *int { return &i }

// Builtin returns a fresh copy of the compiled-in quizzes keyed by ID.
func Builtin() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		DefaultQuizID: slavicRoots(),
		PekaQuizID:    Peka(),
	}
}

// Peka returns the single-question "peka" quiz.
func Peka() domain.Quiz {
	quiz := slavicRoots()
	quiz.ID = PekaQuizID
	quiz.Title = "Lingua: peka"
	quiz.Questions = quiz.Questions[:1]
	return quiz
}

func slavicRoots() domain.Quiz {
	return domain.Quiz{
		ID:       DefaultQuizID,
		Title:    "Lingua: Slavic roots",
		Language: "sr",
		Questions: []domain.Question{
			{
				ID:            1,
				Prompt:        `Select the correct translation for the word "peka":`,
				Options:       options(),
				EtymologyNote: `The word "peka" comes from the Proto-Slavic *peka, meaning "baking" or "oven".`,
				Answer:        answer(0),
			},
			{
				ID:            2,
				Prompt:        `Select the correct translation for the word "reka":`,
				Options:       options(),
				EtymologyNote: `"Reka" continues the Proto-Slavic *rěka, related to *rinǫti "to flow".`,
				Answer:        answer(1),
			},
			{
				ID:            3,
				Prompt:        `Select the correct translation for the word "gora":`,
				Options:       options(),
				EtymologyNote: `"Gora" goes back to the Proto-Slavic *gora "mountain", cognate with Sanskrit giri.`,
				Answer:        answer(2),
			},
			{
				ID:            4,
				Prompt:        `Select the correct translation for the word "ulica":`,
				Options:       options(),
				EtymologyNote: `"Ulica" is a diminutive of the Proto-Slavic *ulь, originally "hollow" or "passage".`,
				Answer:        answer(3),
			},
			{
				ID:            5,
				Prompt:        `Select the correct translation for the word "kuća":`,
				Options:       options(),
				EtymologyNote: `"Kuća" derives from the Proto-Slavic *kǫtja "hut", from *kǫtъ "corner".`,
				Answer:        answer(4),
			},
		},
	}
}

func options() []string {
	out := make([]string, len(translationOptions))
	copy(out, translationOptions)
	return out
}
