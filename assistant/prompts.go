package assistant

import (
	"fmt"
	"strings"

	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/core"
)

const intentPromptTemplate = `
Classify the following user input into one word only:
UPDATE -> if the user is modifying project state
QUERY -> if the user is asking about project status
EMAIL -> if this looks like an email requiring a reply draft

User Input: %s
Answer only: UPDATE, QUERY, or EMAIL
`

const (
	emailSystemPrompt = "You are a professional AI project assistant. Draft a professional email reply using the context."
	querySystemPrompt = "You are a professional project assistant. Use the context to answer."

	answerHumanTemplate = "Context:\n%s\n\nUser Input:\n%s"

	// ContextSeparator joins the documents of a similarity-search context.
	ContextSeparator = "\n\n---\n\n"
)

func buildIntentPrompt(input string) string {
	return fmt.Sprintf(intentPromptTemplate, input)
}

// buildAnswerMessages returns the system and human messages of an answer
// request. Only EMAIL selects the reply-drafting instruction.
func buildAnswerMessages(intent core.Intent, context, input string) []ai.Message {
	system := querySystemPrompt
	if intent == core.IntentEmail {
		system = emailSystemPrompt
	}
	return []ai.Message{
		ai.SystemMessage(system),
		ai.HumanMessage(fmt.Sprintf(answerHumanTemplate, context, input)),
	}
}

func joinContext(records []*core.ProjectRecord) string {
	docs := make([]string, len(records))
	for i, r := range records {
		docs[i] = r.Text()
	}
	return strings.Join(docs, ContextSeparator)
}
