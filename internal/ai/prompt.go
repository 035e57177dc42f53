package ai

import "fmt"

const systemPrompt = `You are an expert tutor helping students understand quiz questions they got wrong.
Your explanations should be:
- Clear and educational
- Include relevant examples or analogies
- Break down complex concepts into simpler parts
- Mention common misconceptions if relevant
- Keep responses concise but thorough (2-4 paragraphs max)

Format your response in a friendly, encouraging tone.`

// buildUserPrompt embeds the question context into the fixed prompt
// template the tutor responds to.
func buildUserPrompt(in ExplainInput) string {
	return fmt.Sprintf(`I got this question wrong and need help understanding it better:

**Topic:** %s

**Question:** %s

**My Answer:** %s

**Correct Answer:** %s

**Basic Explanation:** %s

Please give me a more in-depth explanation to help me truly understand this concept. Why is the correct answer right, and why might someone choose my wrong answer?`,
		in.Topic, in.Question, in.UserAnswer, in.CorrectAnswer, in.BasicExplanation)
}
