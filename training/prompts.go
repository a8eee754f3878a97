package training

// Category names, used in logs and fallback reporting.
const (
	categoryQuizzes       = "quizzes"
	categoryScenarios     = "scenarios"
	categoryObjections    = "objectionHandlers"
	categoryComparisons   = "comparisons"
	categoryTalkingPoints = "talkingPoints"
	categoryRolePlays     = "rolePlayScripts"
)

const trainingSystemPrompt = `You are a sales enablement content generator. You create training materials for sales representatives from product information.

Output ONLY valid JSON matching the schema in the request. No explanatory text, no markdown formatting, no code fences. If the product information is insufficient for an item, omit that item rather than inventing facts.`

const quizzesPrompt = `Generate 5 multiple-choice quiz questions testing a sales rep's knowledge of this product.

Output schema:
{
  "items": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswerIndex": 0,
      "explanation": "why the answer is correct",
      "difficulty": "easy|medium|hard",
      "category": "features|pricing|specifications|positioning"
    }
  ]
}

Each question must have exactly 4 options and correctAnswerIndex must point at the right one.`

const scenariosPrompt = `Generate 3 realistic sales practice scenarios for this product.

Output schema:
{
  "items": [
    {
      "title": "string",
      "customerProfile": "who the customer is",
      "situation": "the selling situation",
      "objective": "what the rep should achieve",
      "suggestedApproach": "how to approach it"
    }
  ]
}`

const objectionsPrompt = `Generate 4 common customer objections for this product, each with a recommended response.

Output schema:
{
  "items": [
    {
      "objection": "what the customer says",
      "response": "how the rep should respond",
      "tip": "a short delivery tip"
    }
  ]
}`

const comparisonsPrompt = `Generate 3 competitive positioning entries for this product against likely competitors.

Output schema:
{
  "items": [
    {
      "competitor": "competitor or competing category",
      "advantage": "where this product wins",
      "talkTrack": "one or two sentences the rep can say"
    }
  ]
}

Only name competitors that plausibly compete in this product's category.`

const talkingPointsPrompt = `Generate 5 lead-with talking points for this product.

Output schema:
{
  "items": [
    {
      "headline": "short punchy statement",
      "detail": "one supporting sentence with a concrete fact"
    }
  ]
}`

const rolePlaysPrompt = `Generate 2 role-play scripts for rehearsing a sales conversation about this product.

Output schema:
{
  "items": [
    {
      "title": "string",
      "customerRole": "who the trainer plays",
      "salesGoal": "what the rep practices",
      "lines": [
        {"speaker": "customer|rep", "text": "string"}
      ]
    }
  ]
}

Each script needs at least 6 lines alternating between customer and rep.`

const planSystemPrompt = `You are a sales coaching assistant. You build personalized development plans for sales representatives from their activity history.

Output ONLY valid JSON matching the schema in the request. No explanatory text, no markdown formatting, no code fences.`

const planPrompt = `Build a personalized training plan for this sales representative.

Output schema:
{
  "goals": ["3-5 development goals"],
  "milestones": ["3-5 checkpoints with rough timeframes"],
  "focusAreas": ["2-4 skill areas to prioritize"],
  "summary": "two or three sentences describing the plan"
}`
