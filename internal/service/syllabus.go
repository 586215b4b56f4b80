package service

import (
	"bytes"
	"coursemaster_backend/internal/model"
	"encoding/json"
	"fmt"
	"strings"
)

// Syllabus is the lesson plan as sent by the admin UI. Older clients send
// free text with one lesson title per line, newer ones a list of lessons.
// Exactly one of LegacyText and Structured is set after decoding.
type Syllabus struct {
	LegacyText *string
	Structured []LessonInput
}

type LessonInput struct {
	Title       string                 `json:"title"`
	VideoURL    string                 `json:"videoUrl"`
	Description string                 `json:"description"`
	Order       int                    `json:"order"`
	Resources   []model.LessonResource `json:"resources"`
}

func (s *Syllabus) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		s.LegacyText = &text
	case '[':
		var lessons []LessonInput
		if err := json.Unmarshal(b, &lessons); err != nil {
			return err
		}
		if lessons == nil {
			lessons = []LessonInput{}
		}
		s.Structured = lessons
	default:
		return fmt.Errorf("syllabus must be a string or an array of lessons")
	}
	return nil
}

// Lessons normalises either form into lesson rows, numbered from 1.
func (s Syllabus) Lessons() []model.Lesson {
	lessons := make([]model.Lesson, 0)

	if s.LegacyText != nil {
		for _, line := range strings.Split(*s.LegacyText, "\n") {
			title := strings.TrimSpace(line)
			if title == "" {
				continue
			}
			lessons = append(lessons, model.Lesson{
				Title:     title,
				Order:     len(lessons) + 1,
				Resources: []model.LessonResource{},
			})
		}
		return lessons
	}

	for i, in := range s.Structured {
		n := i + 1
		l := model.Lesson{
			Title:       strings.TrimSpace(in.Title),
			VideoURL:    strings.TrimSpace(in.VideoURL),
			Description: in.Description,
			Order:       in.Order,
			Resources:   make([]model.LessonResource, 0, len(in.Resources)),
		}
		if l.Title == "" {
			l.Title = fmt.Sprintf("Lesson %d", n)
		}
		if l.Order == 0 {
			l.Order = n
		}
		for _, r := range in.Resources {
			r.URL = strings.TrimSpace(r.URL)
			if r.URL == "" {
				continue
			}
			if !r.Type.Valid() {
				r.Type = model.ResourceArticle
			}
			l.Resources = append(l.Resources, r)
		}
		lessons = append(lessons, l)
	}
	return lessons
}

func (s Syllabus) IsSet() bool {
	return s.LegacyText != nil || s.Structured != nil
}

// TagList accepts tags as a JSON array or a comma separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = TagList{}
		return nil
	}

	var raw []string
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	} else if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}

	out := make(TagList, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	*t = out
	return nil
}
