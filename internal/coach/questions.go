package coach

// The assessment is a fixed, ordered list of questions. Swapping the content
// does not change the state machine; only the count matters to transitions.
var assessmentQuestions = []string{
	"What subjects or activities do you enjoy the most?",
	"Do you prefer working with people, data, things, or ideas?",
	"What are you naturally good at? Think of things friends ask you for help with.",
	"Would you rather work in a structured environment or one with lots of freedom?",
	"How important is a high salary compared to doing work you love?",
	"Do you enjoy creative work, analytical work, or a mix of both?",
	"How do you feel about public speaking and presenting to groups?",
	"Where do you see yourself in five years: leading a team, deep in a craft, or running your own venture?",
}

// QuestionCount is the number of assessment questions.
func QuestionCount() int {
	return len(assessmentQuestions)
}

const welcomeMessage = "Hi! I'm your career coach. I'll ask you a few quick questions to understand your interests and strengths, then suggest career paths that fit you. Let's begin!"

const assessmentCompleteMessage = "That completes your assessment, thanks! I'm putting together career paths that match your answers. Feel free to ask me anything in the meantime."

const recommendationsFailedMessage = "I had trouble generating recommendations just now, but we can still chat. Ask me anything about careers, skills, or learning paths."
