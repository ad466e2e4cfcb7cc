package model

// LearnerProfile is the single mutable record kept per learner, keyed by
// name. Every field except Name is optional; scores are stored as text
// because that is what the storage schema and the frontend exchange.
// Arithmetic happens on parsed numeric copies inside the tutor package.
type LearnerProfile struct {
	Name                 string `json:"name"`
	Grade                string `json:"grade,omitempty"`
	Major                string `json:"major,omitempty"`
	Gender               string `json:"gender,omitempty"`
	CET4Taken            string `json:"cet4_taken,omitempty"`
	CET4Score            string `json:"cet4_score,omitempty"`
	CET4ReadingScore     string `json:"cet4_reading_score,omitempty"`
	CET6Taken            string `json:"cet6_taken,omitempty"`
	CET6Score            string `json:"cet6_score,omitempty"`
	CET6ReadingScore     string `json:"cet6_reading_score,omitempty"`
	OtherScores          string `json:"other_scores,omitempty"`
	ExamName             string `json:"exam_name,omitempty"`
	TotalScore           string `json:"total_score,omitempty"`
	ReadingScore         string `json:"reading_score,omitempty"`
	Exam1Score           string `json:"exam1_score,omitempty"`
	Exam2Score           string `json:"exam2_score,omitempty"`
	Exam3Score           string `json:"exam3_score,omitempty"`
	Exam4Score           string `json:"exam4_score,omitempty"`
	PostScore            string `json:"post_score,omitempty"`
	AfterScore           string `json:"after_score,omitempty"`
	FalseID              string `json:"false_id,omitempty"`
	PostStrategiesScore  string `json:"post_strategies_score,omitempty"`
	AfterStrategiesScore string `json:"after_strategies_score,omitempty"`
}

// ProfileUpdate is a partial update applied to a learner row by name.
// Nil fields are left untouched so repeated submissions never clobber
// data they did not carry.
type ProfileUpdate struct {
	Grade                *string
	Major                *string
	Gender               *string
	CET4Taken            *string
	CET4Score            *string
	CET4ReadingScore     *string
	CET6Taken            *string
	CET6Score            *string
	CET6ReadingScore     *string
	OtherScores          *string
	ExamName             *string
	TotalScore           *string
	ReadingScore         *string
	Exam1Score           *string
	Exam2Score           *string
	Exam3Score           *string
	Exam4Score           *string
	PostScore            *string
	AfterScore           *string
	FalseID              *string
	PostStrategiesScore  *string
	AfterStrategiesScore *string
}

// ProfileSource tags where a resolved profile came from, so callers and
// tests can tell real data apart from the degraded example substitute.
type ProfileSource string

const (
	// SourceReal means the profile was read from the store.
	SourceReal ProfileSource = "real"
	// SourceExample means lookup failed and a deterministic example
	// profile was substituted.
	SourceExample ProfileSource = "example"
)

// Exam is one reading passage with its numbered question/answer pairs.
// Exams 1 and 2 are the pre-tests, 3 and 4 the post-tests; that pairing
// is a fixed convention, not stored data.
type Exam struct {
	ID        int            `json:"id"`
	Content   string         `json:"content"`
	Questions []ExamQuestion `json:"questions"`
}

// ExamQuestion is a single question within an exam, numbered 1..5.
type ExamQuestion struct {
	Number   int    `json:"number"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WrongRef identifies one wrongly answered question.
type WrongRef struct {
	ExamID      int
	QuestionNum int
}

// ResolvedQuestion is a wrong answer joined with its exam content,
// ready for prompt construction. Excerpt is capped by the catalog.
type ResolvedQuestion struct {
	ExamID      int
	QuestionNum int
	Excerpt     string
	Question    string
	Answer      string
}

// SurveyItem is one row of the self-rate or strategy questionnaire.
type SurveyItem struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

// ExamResult is the payload of an exam-result submission.
type ExamResult struct {
	Name           string   `json:"name"`
	ExamID         int      `json:"exam_id"`
	Score          int      `json:"score"`
	WrongQuestions []string `json:"wrong_questions"`
}

// StrategyResult is the payload of a strategy-questionnaire submission.
type StrategyResult struct {
	Name      string `json:"name"`
	IsPreTest bool   `json:"is_pre_test"`
	Score     int    `json:"score"`
}

// ChatRequest is the payload of a chat call.
type ChatRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
