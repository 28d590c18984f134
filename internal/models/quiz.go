package models

import "time"

type QuizKind string

const (
	QuizSpelling   QuizKind = "spelling"
	QuizVocabulary QuizKind = "vocabulary"
)

const (
	HintDefinition   = "definition"
	HintPartOfSpeech = "part_of_speech"
	HintOrigin       = "origin"
)

// QuizWord is the snapshot of a dictionary entry taken when a session starts,
// so later dictionary edits cannot change a running game.
type QuizWord struct {
	Word          string `json:"word"`
	Origins       string `json:"origins"`
	PartOfSpeech  string `json:"part_of_speech"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// QuizSession is the whole state of one game. It is owned by the session
// store; callers mutate it only through the quiz services.
type QuizSession struct {
	ID       string     `json:"id"`
	Kind     QuizKind   `json:"kind"`
	Words    []QuizWord `json:"words"`
	Position int        `json:"position"`
	Score    int        `json:"score"`

	// Answered tracks words that already counted toward the score, so a word
	// scores at most once no matter how often it is submitted.
	Answered map[string]bool `json:"answered"`

	// Revealed holds the hints uncovered for the current word (spelling bee).
	Revealed map[string]bool `json:"revealed"`

	// Choices is the shuffled option set for the current round (vocabulary bee).
	Choices []string `json:"choices,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Clone returns a detached copy that is safe to read after the session
// store has released its lock.
func (s *QuizSession) Clone() *QuizSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Words = append([]QuizWord(nil), s.Words...)
	out.Answered = cloneBoolMap(s.Answered)
	out.Revealed = cloneBoolMap(s.Revealed)
	out.Choices = append([]string(nil), s.Choices...)
	return &out
}

func cloneBoolMap(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *QuizSession) Current() *QuizWord {
	if s == nil || s.Position < 0 || s.Position >= len(s.Words) {
		return nil
	}
	return &s.Words[s.Position]
}

func (s *QuizSession) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Words)
}

func (s *QuizSession) Expired(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}

// SpellingView is what the spelling bee exposes to clients: everything about
// the current round except the word being spelled.
type SpellingView struct {
	ID       string            `json:"id"`
	Position int               `json:"position"`
	Total    int               `json:"total"`
	Score    int               `json:"score"`
	Hints    map[string]string `json:"hints"`
	TileURL  string            `json:"tile_url,omitempty"`
}

// VocabularyView shows the definition side of the current word plus the
// shuffled choices; the answer stays server-side until a submit.
type VocabularyView struct {
	ID           string   `json:"id"`
	Position     int      `json:"position"`
	Total        int      `json:"total"`
	Score        int      `json:"score"`
	Meaning      string   `json:"meaning"`
	PartOfSpeech string   `json:"part_of_speech"`
	Origins      string   `json:"origins"`
	Choices      []string `json:"choices"`
}

type SubmitResult struct {
	Correct         bool   `json:"correct"`
	AlreadyAnswered bool   `json:"already_answered"`
	Word            string `json:"word"`
	Distance        int    `json:"distance,omitempty"`
	Score           int    `json:"score"`
}

type StartQuizRequest struct {
	Words int `json:"words"`
}

type SpellingAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type VocabularyChoiceRequest struct {
	Choice string `json:"choice" binding:"required"`
}

type HintRequest struct {
	Type string `json:"type" binding:"required"`
}
