package stories

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Set is an ordered, concurrency-safe collection of stories
type Set struct {
	mu      sync.RWMutex
	stories []Story
	byID    map[string]int
}

// NewSet creates a set from stories, later stories with a duplicate ID replace earlier ones
func NewSet(stories ...Story) *Set {
	s := &Set{}
	s.Replace(stories)
	return s
}

// Replace swaps the content of the set
func (s *Set) Replace(stories []Story) {
	ordered, byID := index(stories)

	s.mu.Lock()
	s.stories, s.byID = ordered, byID
	s.mu.Unlock()
}

// Add appends stories, replacing stories with the same ID
func (s *Set) Add(stories ...Story) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stories, s.byID = index(append(slices.Clone(s.stories), stories...))
}

func index(stories []Story) ([]Story, map[string]int) {
	ordered := make([]Story, 0, len(stories))
	byID := make(map[string]int, len(stories))
	for _, story := range stories {
		if idx, exists := byID[story.ID]; exists {
			ordered[idx] = story
			continue
		}
		byID[story.ID] = len(ordered)
		ordered = append(ordered, story)
	}
	return ordered, byID
}

// All returns all stories in order
func (s *Set) All() []Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stories)
}

// Len returns the number of stories
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stories)
}

// Get returns the story with the ID
func (s *Set) Get(id string) (Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.byID[id]
	if !exists {
		return Story{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return s.stories[idx], nil
}

// First returns the first story, false if the set is empty
func (s *Set) First() (Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.stories) == 0 {
		return Story{}, false
	}
	return s.stories[0], true
}

// Group is the stories of one title
type Group struct {
	Title   string
	Stories []Story
}

// Groups returns stories grouped by title, in order of first appearance
func (s *Set) Groups() []Group {
	all := s.All()
	titles := lo.Uniq(lo.Map(all, func(story Story, _ int) string {
		return story.Title
	}))

	return lo.Map(titles, func(title string, _ int) Group {
		return Group{
			Title: title,
			Stories: lo.Filter(all, func(story Story, _ int) bool {
				return story.Title == title
			}),
		}
	})
}
