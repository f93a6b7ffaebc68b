package engine

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// Answer is one answer-store entry: a scalar value or, for checkbox
// and multiselect fields, a list of selected option values.
// Values stays un-omitted so a cleared multiselect survives the
// snapshot round trip as a multi-value entry.
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values"`
}

func (a Answer) IsMulti() bool {
	return a.Values != nil
}

// AnswerStore is the in-memory field-key to answer mapping. Every
// mutation is mirrored into the session store synchronously, so the
// snapshot is always consistent with the in-memory state.
type AnswerStore struct {
	store   SessionStore
	answers map[string]Answer
}

// NewAnswerStore creates the store, seeded from a persisted snapshot
// when one exists. A corrupted snapshot is treated as absent.
func NewAnswerStore(store SessionStore) *AnswerStore {
	s := &AnswerStore{
		store:   store,
		answers: map[string]Answer{},
	}
	if store == nil {
		return s
	}

	raw, err := store.Get(SNAPSHOT_KEY)
	if err != nil || raw == nil {
		return s
	}
	restored := map[string]Answer{}
	if err := json.Unmarshal(raw, &restored); err != nil {
		slog.Debug("ignoring unreadable answer snapshot", slog.String("error", err.Error()))
		return s
	}
	s.answers = restored
	return s
}

func (s *AnswerStore) Get(key string) (Answer, bool) {
	a, ok := s.answers[key]
	return a, ok
}

func (s *AnswerStore) Scalar(key string) string {
	return s.answers[key].Value
}

func (s *AnswerStore) Number(key string) (float64, bool) {
	v := strings.TrimSpace(s.answers[key].Value)
	if v == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func (s *AnswerStore) ValuesOf(key string) []string {
	return s.answers[key].Values
}

// SetScalar applies toggle semantics: writing the current value again
// removes the entry, anything else replaces it. An empty value always
// removes.
func (s *AnswerStore) SetScalar(key string, value string) {
	if value == "" || s.answers[key].Value == value {
		delete(s.answers, key)
	} else {
		s.answers[key] = Answer{Value: value}
	}
	s.persist()
}

func (s *AnswerStore) SetValues(key string, values []string) {
	if len(values) == 0 {
		s.answers[key] = Answer{Values: []string{}}
	} else {
		s.answers[key] = Answer{Values: values}
	}
	s.persist()
}

func (s *AnswerStore) Delete(key string) {
	delete(s.answers, key)
	s.persist()
}

func (s *AnswerStore) Len() int {
	return len(s.answers)
}

// Clear drops all answers and removes the persisted snapshot.
func (s *AnswerStore) Clear() {
	s.answers = map[string]Answer{}
	if s.store != nil {
		if err := s.store.Remove(SNAPSHOT_KEY); err != nil {
			slog.Error("failed to remove answer snapshot", slog.String("error", err.Error()))
		}
	}
}

// ScalarMap returns the scalar answers, used by the score reductions.
func (s *AnswerStore) ScalarMap() map[string]string {
	values := map[string]string{}
	for k, a := range s.answers {
		if !a.IsMulti() {
			values[k] = a.Value
		}
	}
	return values
}

// Raw returns a copy of all entries with scalars flattened to strings
// and multi-value entries to string slices.
func (s *AnswerStore) Raw() map[string]interface{} {
	raw := make(map[string]interface{}, len(s.answers))
	for k, a := range s.answers {
		if a.IsMulti() {
			values := make([]string, len(a.Values))
			copy(values, a.Values)
			raw[k] = values
		} else {
			raw[k] = a.Value
		}
	}
	return raw
}

func (s *AnswerStore) persist() {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(s.answers)
	if err != nil {
		slog.Error("failed to marshal answer snapshot", slog.String("error", err.Error()))
		return
	}
	if err := s.store.Set(SNAPSHOT_KEY, raw); err != nil {
		slog.Error("failed to persist answer snapshot", slog.String("error", err.Error()))
	}
}
