package service

import (
	"fmt"
	"math/rand"
	"strings"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/logger"
)

const vocabularyDistractors = 3

// VocabularyService runs the vocabulary bee: the player sees a definition
// and picks the matching word out of four choices.
type VocabularyService struct {
	wordRepo repository.WordRepository
	store    *SessionStore

	defaultWords int
	maxWords     int
}

func NewVocabularyService(wordRepo repository.WordRepository, store *SessionStore, defaultWords, maxWords int) *VocabularyService {
	if defaultWords <= 0 {
		defaultWords = 10
	}
	if maxWords < defaultWords {
		maxWords = defaultWords
	}
	return &VocabularyService{
		wordRepo:     wordRepo,
		store:        store,
		defaultWords: defaultWords,
		maxWords:     maxWords,
	}
}

func (s *VocabularyService) Start(requested int) (*models.VocabularyView, error) {
	session, err := startSession(s.wordRepo, models.QuizVocabulary, requested, s.defaultWords, s.maxWords)
	if err != nil {
		return nil, err
	}

	if err := s.refreshChoices(session); err != nil {
		return nil, err
	}

	snapshot := s.store.Put(session)
	logger.Info("Vocabulary bee started", map[string]interface{}{
		"session": snapshot.ID,
		"words":   snapshot.Total(),
	})
	return s.view(snapshot), nil
}

func (s *VocabularyService) Get(id string) (*models.VocabularyView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Submit checks a picked choice against the current word. As in the spelling
// bee, the first submission for a word is final for scoring purposes.
func (s *VocabularyService) Submit(id, choice string) (*models.SubmitResult, error) {
	var result models.SubmitResult

	_, err := s.update(id, func(session *models.QuizSession) error {
		current := session.Current()
		if current == nil {
			return ErrSessionNotFound
		}

		target := strings.ToLower(current.Word)
		correct := strings.EqualFold(strings.TrimSpace(choice), current.Word)

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
			Score:           session.Score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *VocabularyService) Next(id string) (*models.VocabularyView, error) {
	return s.move(id, 1)
}

func (s *VocabularyService) Previous(id string) (*models.VocabularyView, error) {
	return s.move(id, -1)
}

func (s *VocabularyService) Quit(id string) error {
	if _, err := s.session(id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

func (s *VocabularyService) move(id string, delta int) (*models.VocabularyView, error) {
	session, err := s.update(id, func(session *models.QuizSession) error {
		session.Position = clamp(session.Position+delta, 0, session.Total()-1)
		return s.refreshChoices(session)
	})
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// refreshChoices rebuilds the option set for the current word: the answer
// plus random distractors, shuffled. A thin dictionary may yield fewer than
// four options; the answer is always among them.
func (s *VocabularyService) refreshChoices(session *models.QuizSession) error {
	current := session.Current()
	if current == nil {
		session.Choices = nil
		return nil
	}

	distractors, err := s.wordRepo.RandomExcluding(vocabularyDistractors, current.Word)
	if err != nil {
		return fmt.Errorf("failed to draw distractors: %w", err)
	}

	choices := make([]string, 0, len(distractors)+1)
	choices = append(choices, current.Word)
	for _, entry := range distractors {
		choices = append(choices, entry.Word)
	}

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	session.Choices = choices
	return nil
}

// session returns a read-only snapshot of a vocabulary session.
func (s *VocabularyService) session(id string) (*models.QuizSession, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Kind != models.QuizVocabulary {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// update mutates a vocabulary session under the store's lock and returns a
// snapshot taken after the mutation.
func (s *VocabularyService) update(id string, fn func(*models.QuizSession) error) (*models.QuizSession, error) {
	return s.store.Update(id, func(session *models.QuizSession) error {
		if session.Kind != models.QuizVocabulary {
			return ErrSessionNotFound
		}
		return fn(session)
	})
}

func (s *VocabularyService) view(session *models.QuizSession) *models.VocabularyView {
	view := &models.VocabularyView{
		ID:       session.ID,
		Position: session.Position,
		Total:    session.Total(),
		Score:    session.Score,
		Choices:  session.Choices,
	}

	if current := session.Current(); current != nil {
		view.Meaning = current.Meaning
		view.PartOfSpeech = current.PartOfSpeech
		view.Origins = current.Origins
	}
	return view
}
