package course

import "time"

// ContentType of a lesson's content payload.
type ContentType string

const (
	ContentVideo        ContentType = "video"
	ContentDocument     ContentType = "document"
	ContentPresentation ContentType = "presentation"
	ContentLink         ContentType = "link"
	ContentQuiz         ContentType = "quiz"
	ContentAssignment   ContentType = "assignment"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Course owns an ordered sequence of Modules; each Module owns an ordered
// sequence of Lessons. IDs are unique within their parent scope. The tree is
// immutable in this system.
type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Thumbnail     string    `json:"thumbnail"`
	Instructor    string    `json:"instructor"`
	Duration      int       `json:"duration"` // minutes
	Modules       []Module  `json:"modules"`
	EnrolledUsers int       `json:"enrolled_users,omitempty"`
	AverageRating float64   `json:"average_rating,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Level         Level     `json:"level,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
	Order       int      `json:"order"`
}

type Lesson struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ContentType ContentType `json:"content_type"`
	Content     string      `json:"content"` // URL or content ID
	Duration    int         `json:"duration,omitempty"` // minutes
	Order       int         `json:"order"`
}

// TotalLessons counts lessons across all modules of the course.
func (c Course) TotalLessons() int {
	var n int
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

func (c Course) module(id string) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

func (m Module) lesson(id string) (Lesson, bool) {
	for _, l := range m.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}
