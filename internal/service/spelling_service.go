package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/logger"
)

var (
	ErrDictionaryEmpty = errors.New("the dictionary has no words to play with")
	ErrUnknownHint     = errors.New("unknown hint type")
)

// SpellingService runs the spelling bee: the player hears nothing and sees
// nothing of the word except the hints they choose to reveal, then types the
// spelling.
type SpellingService struct {
	wordRepo repository.WordRepository
	store    *SessionStore
	tiles    *TileService

	defaultWords int
	maxWords     int
}

func NewSpellingService(wordRepo repository.WordRepository, store *SessionStore, tiles *TileService, defaultWords, maxWords int) *SpellingService {
	if defaultWords <= 0 {
		defaultWords = 10
	}
	if maxWords < defaultWords {
		maxWords = defaultWords
	}
	return &SpellingService{
		wordRepo:     wordRepo,
		store:        store,
		tiles:        tiles,
		defaultWords: defaultWords,
		maxWords:     maxWords,
	}
}

func (s *SpellingService) Start(requested int) (*models.SpellingView, error) {
	session, err := startSession(s.wordRepo, models.QuizSpelling, requested, s.defaultWords, s.maxWords)
	if err != nil {
		return nil, err
	}

	snapshot := s.store.Put(session)
	logger.Info("Spelling bee started", map[string]interface{}{
		"session": snapshot.ID,
		"words":   snapshot.Total(),
	})
	return s.view(snapshot), nil
}

func (s *SpellingService) Get(id string) (*models.SpellingView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Hint reveals one attribute of the current word. Revealing never advances
// the game and a hint stays revealed until the player navigates away.
func (s *SpellingService) Hint(id, hintType string) (*models.SpellingView, error) {
	switch hintType {
	case models.HintDefinition, models.HintPartOfSpeech, models.HintOrigin:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHint, hintType)
	}

	session, err := s.update(id, func(session *models.QuizSession) error {
		if session.Revealed == nil {
			session.Revealed = make(map[string]bool)
		}
		session.Revealed[hintType] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Submit checks a typed spelling against the current word. A word counts
// toward the score at most once, and any submission locks the word out of
// further scoring, matching how a real bee treats a first answer as final.
func (s *SpellingService) Submit(id, answer string) (*models.SubmitResult, error) {
	var result models.SubmitResult

	_, err := s.update(id, func(session *models.QuizSession) error {
		current := session.Current()
		if current == nil {
			return ErrSessionNotFound
		}

		guess := strings.ToLower(strings.TrimSpace(answer))
		target := strings.ToLower(current.Word)
		distance := levenshtein.ComputeDistance(guess, target)
		correct := distance == 0

		if session.Answered == nil {
			session.Answered = make(map[string]bool)
		}
		alreadyAnswered := session.Answered[target]
		if correct && !alreadyAnswered {
			session.Score++
		}
		session.Answered[target] = true

		result = models.SubmitResult{
			Correct:         correct,
			AlreadyAnswered: alreadyAnswered,
			Word:            current.Word,
			Distance:        distance,
			Score:           session.Score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *SpellingService) Next(id string) (*models.SpellingView, error) {
	return s.move(id, 1)
}

func (s *SpellingService) Previous(id string) (*models.SpellingView, error) {
	return s.move(id, -1)
}

func (s *SpellingService) Quit(id string) error {
	if _, err := s.session(id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

func (s *SpellingService) move(id string, delta int) (*models.SpellingView, error) {
	session, err := s.update(id, func(session *models.QuizSession) error {
		session.Position = clamp(session.Position+delta, 0, session.Total()-1)
		session.Revealed = make(map[string]bool)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// session returns a read-only snapshot of a spelling session.
func (s *SpellingService) session(id string) (*models.QuizSession, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Kind != models.QuizSpelling {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// update mutates a spelling session under the store's lock and returns a
// snapshot taken after the mutation.
func (s *SpellingService) update(id string, fn func(*models.QuizSession) error) (*models.QuizSession, error) {
	return s.store.Update(id, func(session *models.QuizSession) error {
		if session.Kind != models.QuizSpelling {
			return ErrSessionNotFound
		}
		return fn(session)
	})
}

func (s *SpellingService) view(session *models.QuizSession) *models.SpellingView {
	view := &models.SpellingView{
		ID:       session.ID,
		Position: session.Position,
		Total:    session.Total(),
		Score:    session.Score,
		Hints:    make(map[string]string),
	}

	current := session.Current()
	if current == nil {
		return view
	}

	for hint := range session.Revealed {
		if !session.Revealed[hint] {
			continue
		}
		switch hint {
		case models.HintDefinition:
			view.Hints[hint] = current.Meaning
		case models.HintPartOfSpeech:
			view.Hints[hint] = current.PartOfSpeech
		case models.HintOrigin:
			view.Hints[hint] = current.Origins
		}
	}

	if s.tiles != nil {
		if url, err := s.tiles.EnsureLetterTile(current.Word); err == nil {
			view.TileURL = url
		}
	}
	return view
}

// startSession draws the word set shared by both bee variants.
func startSession(wordRepo repository.WordRepository, kind models.QuizKind, requested, defaultWords, maxWords int) (*models.QuizSession, error) {
	count := requested
	if count <= 0 {
		count = defaultWords
	}
	if count > maxWords {
		count = maxWords
	}

	entries, err := wordRepo.Random(count)
	if err != nil {
		return nil, fmt.Errorf("failed to draw quiz words: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrDictionaryEmpty
	}

	words := make([]models.QuizWord, 0, len(entries))
	for _, entry := range entries {
		words = append(words, models.QuizWord{
			Word:          entry.Word,
			Origins:       entry.Origins,
			PartOfSpeech:  entry.PartOfSpeech,
			Pronunciation: entry.Pronunciation,
			Meaning:       entry.Meaning,
		})
	}

	return &models.QuizSession{
		ID:       uuid.NewString(),
		Kind:     kind,
		Words:    words,
		Answered: make(map[string]bool),
		Revealed: make(map[string]bool),
	}, nil
}

func clamp(value, low, high int) int {
	if high < low {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
