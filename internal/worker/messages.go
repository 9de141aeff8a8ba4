package worker

import "fmt"

const summaryInstruction = `
Summarize this meeting transcription with **maximum accuracy and clarity**. The summary **must** include:

- **Agenda**: Clearly list the topics planned for discussion.
- **Major Discussion Points**: Identify the key subjects covered, summarize arguments, and capture important exchanges.
- **Decisions & Outcomes**: State what was decided, what actions were assigned, and any unresolved issues.

This summary **must be concise but complete**, with no fluff and no unnecessary details. **Extract only what matters** while preserving meaning. If there's repetition or off-topic chatter, **cut it out**. Format the output with bullet points for readability.

Do not miss anything important. **Precision is critical.**
`

func summaryUserMessage(prompt, transcript string) string {
	return fmt.Sprintf("%s: %s", prompt, transcript)
}
