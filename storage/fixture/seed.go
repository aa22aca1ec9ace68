package fixturedb

import (
	"time"

	"github.com/kombee/portal/core/access"
	"github.com/kombee/portal/core/assessment"
	"github.com/kombee/portal/core/course"
	"github.com/kombee/portal/core/notification"
	"github.com/kombee/portal/core/progress"
	"github.com/kombee/portal/core/user"
)

// SeedPassword is the password every seeded account accepts.
const SeedPassword = "password"

func (db *DB) seed() error {
	if err := db.seedUsers(); err != nil {
		return err
	}
	db.seedCourses()
	db.seedAssessments()
	db.seedProgress()
	db.seedNotifications()
	return nil
}

func (db *DB) seedUsers() error {
	seeds := []user.User{
		{
			ID:         "user1",
			Name:       "John Smith",
			Email:      "john.smith@kombee.com",
			Role:       access.RoleEmployee,
			Department: "Engineering",
			Position:   "Software Developer",
			JoinDate:   "2023-01-15",
		},
		{
			ID:         "user2",
			Name:       "Sarah Johnson",
			Email:      "sarah.johnson@kombee.com",
			Role:       access.RoleIntern,
			Department: "Marketing",
			Position:   "Marketing Intern",
			JoinDate:   "2023-06-10",
		},
		{
			ID:         "user3",
			Name:       "Michael Chen",
			Email:      "michael.chen@kombee.com",
			Role:       access.RoleMentor,
			Department: "Engineering",
			Position:   "Senior Engineer",
			JoinDate:   "2021-03-22",
		},
		{
			ID:         "user4",
			Name:       "Priya Patel",
			Email:      "priya.patel@kombee.com",
			Role:       access.RoleHRAdmin,
			Department: "Human Resources",
			Position:   "HR Manager",
			JoinDate:   "2022-02-15",
		},
		{
			ID:         "user5",
			Name:       "David Wilson",
			Email:      "david.wilson@kombee.com",
			Role:       access.RoleTeamLead,
			Department: "Product",
			Position:   "Product Team Lead",
			JoinDate:   "2020-11-05",
		},
	}

	now := time.Now().UTC()
	for _, usr := range seeds {
		usr.IsActive = true
		usr.CreatedAt = now
		usr.UpdatedAt = now
		if err := usr.SetPassword(SeedPassword); err != nil {
			return err
		}
		u := usr
		db.user.table[u.ID] = &u
	}
	return nil
}

func (db *DB) seedCourses() {
	lessons := []course.Lesson{
		{
			ID:          "lesson1",
			Title:       "Introduction to HTML",
			Description: "Understanding the basics of HTML markup",
			ContentType: course.ContentVideo,
			Content:     "https://example.com/videos/intro-html.mp4",
			Duration:    15,
			Order:       1,
		},
		{
			ID:          "lesson2",
			Title:       "HTML Document Structure",
			Description: "Learning about DOCTYPE, head, body, and metadata",
			ContentType: course.ContentDocument,
			Content:     "https://example.com/docs/html-structure.pdf",
			Duration:    20,
			Order:       2,
		},
		{
			ID:          "lesson3",
			Title:       "HTML Forms",
			Description: "Creating interactive forms with HTML",
			ContentType: course.ContentVideo,
			Content:     "https://example.com/videos/html-forms.mp4",
			Duration:    25,
			Order:       3,
		},
		{
			ID:          "lesson4",
			Title:       "HTML5 Semantic Elements",
			Description: "Using semantic HTML for better accessibility",
			ContentType: course.ContentPresentation,
			Content:     "https://example.com/presentations/semantic-html.pptx",
			Duration:    30,
			Order:       4,
		},
	}

	modules := []course.Module{
		{
			ID:          "module1",
			Title:       "HTML Basics",
			Description: "Learn the fundamentals of HTML markup language",
			Lessons:     lessons,
			Order:       1,
		},
		{
			ID:          "module2",
			Title:       "CSS Styling",
			Description: "Master cascading style sheets for web design",
			Order:       2,
		},
		{
			ID:          "module3",
			Title:       "JavaScript Programming",
			Description: "Introduction to JavaScript concepts and DOM manipulation",
			Order:       3,
		},
	}

	courses := []course.Course{
		{
			ID:            "course1",
			Title:         "Frontend Development Fundamentals",
			Description:   "Learn the core concepts of modern frontend development including HTML, CSS, and JavaScript.",
			Instructor:    "Michael Chen",
			Duration:      480,
			Modules:       modules,
			EnrolledUsers: 42,
			AverageRating: 4.7,
			Tags:          []string{"Development", "Frontend", "Web"},
			Level:         course.LevelBeginner,
			CreatedAt:     time.Date(2023, 1, 10, 8, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2023, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:            "course2",
			Title:         "Product Management Essentials",
			Description:   "Master the fundamentals of product management, from ideation to launch and beyond.",
			Instructor:    "David Wilson",
			Duration:      360,
			EnrolledUsers: 28,
			AverageRating: 4.5,
			Tags:          []string{"Product Management", "Business", "Strategy"},
			Level:         course.LevelIntermediate,
			CreatedAt:     time.Date(2023, 2, 5, 9, 15, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2023, 4, 20, 14, 45, 0, 0, time.UTC),
		},
		{
			ID:            "course3",
			Title:         "Digital Marketing Strategy",
			Description:   "Develop comprehensive digital marketing strategies to drive business growth and customer engagement.",
			Instructor:    "Sarah Johnson",
			Duration:      300,
			EnrolledUsers: 35,
			AverageRating: 4.3,
			Tags:          []string{"Marketing", "Digital", "Strategy"},
			Level:         course.LevelIntermediate,
			CreatedAt:     time.Date(2023, 3, 12, 11, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2023, 5, 18, 16, 20, 0, 0, time.UTC),
		},
		{
			ID:            "course4",
			Title:         "HR Compliance and Best Practices",
			Description:   "Stay up-to-date with the latest HR regulations and implement best practices for organizational success.",
			Instructor:    "Priya Patel",
			Duration:      240,
			EnrolledUsers: 20,
			AverageRating: 4.8,
			Tags:          []string{"HR", "Compliance", "Management"},
			Level:         course.LevelAdvanced,
			CreatedAt:     time.Date(2023, 4, 8, 13, 45, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2023, 6, 25, 9, 10, 0, 0, time.UTC),
		},
	}

	for _, crs := range courses {
		c := crs
		db.course.table[c.ID] = &c
	}
}

func (db *DB) seedAssessments() {
	questions := []assessment.Question{
		{
			ID:   "q1",
			Text: "Which HTML tag is used for creating a hyperlink?",
			Options: []assessment.Option{
				{ID: "o1", Text: "<link>"},
				{ID: "o2", Text: "<a>"},
				{ID: "o3", Text: "<href>"},
				{ID: "o4", Text: "<url>"},
			},
			CorrectOptionID: "o2",
			Explanation:     "The <a> (anchor) tag is used to create hyperlinks in HTML documents.",
			Type:            assessment.QuestionMultipleChoice,
			Difficulty:      assessment.DifficultyEasy,
		},
		{
			ID:   "q2",
			Text: "CSS stands for Cascading Style Sheets.",
			Options: []assessment.Option{
				{ID: "o1", Text: "True"},
				{ID: "o2", Text: "False"},
			},
			CorrectOptionID: "o1",
			Explanation:     "CSS (Cascading Style Sheets) is used to style and layout web pages.",
			Type:            assessment.QuestionTrueFalse,
			Difficulty:      assessment.DifficultyEasy,
		},
		{
			ID:   "q3",
			Text: "Which property is used to change the background color in CSS?",
			Options: []assessment.Option{
				{ID: "o1", Text: "color"},
				{ID: "o2", Text: "bgcolor"},
				{ID: "o3", Text: "background-color"},
				{ID: "o4", Text: "background"},
			},
			CorrectOptionID: "o3",
			Explanation:     "The background-color property is used to set the background color of an element in CSS.",
			Type:            assessment.QuestionMultipleChoice,
			Difficulty:      assessment.DifficultyEasy,
		},
	}

	a := assessment.Assessment{
		ID:           "assessment1",
		Title:        "HTML Basics Assessment",
		Description:  "Test your knowledge of HTML fundamentals",
		Questions:    questions,
		TimeLimit:    15,
		PassingScore: 70,
		Attempts:     3,
		CourseID:     "course1",
		ModuleID:     "module1",
	}
	db.assessment.table[a.ID] = &a
}

func (db *DB) seedProgress() {
	p := progress.Progress{
		UserID:           "user1",
		CourseID:         "course1",
		CompletedLessons: []string{"lesson1", "lesson2"},
		LastAccessed:     time.Date(2023, 7, 10, 14, 30, 0, 0, time.UTC),
		AssessmentResults: []progress.AssessmentResult{
			{
				AssessmentID: "assessment1",
				Score:        80,
				Passed:       true,
				CompletedAt:  time.Date(2023, 7, 5, 10, 15, 0, 0, time.UTC),
				TimeSpent:    720,
				Answers: []progress.Answer{
					{QuestionID: "q1", SelectedOptionID: "o2", IsCorrect: true},
					{QuestionID: "q2", SelectedOptionID: "o1", IsCorrect: true},
					{QuestionID: "q3", SelectedOptionID: "o4", IsCorrect: false},
				},
			},
		},
		PercentComplete: 50,
	}
	db.progress.table[progressKey{p.UserID, p.CourseID}] = &p
}

func (db *DB) seedNotifications() {
	notifs := []notification.Notification{
		{
			ID:        "notif1",
			UserID:    "user1",
			Title:     "New Course Available",
			Message:   "Check out our new course on Advanced JavaScript Concepts!",
			Type:      notification.TypeInfo,
			CreatedAt: time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "notif2",
			UserID:    "user1",
			Title:     "Assessment Completed",
			Message:   "You scored 80% on HTML Basics Assessment. Great job!",
			IsRead:    true,
			Type:      notification.TypeSuccess,
			CreatedAt: time.Date(2023, 7, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "notif3",
			UserID:    "user1",
			Title:     "Course Deadline Approaching",
			Message:   "Remember to complete Frontend Development Fundamentals by July 15!",
			Type:      notification.TypeWarning,
			CreatedAt: time.Date(2023, 7, 8, 16, 45, 0, 0, time.UTC),
		},
	}

	for _, n := range notifs {
		notif := n
		db.notification.table[notif.ID] = &notif
		db.notification.order = append(db.notification.order, notif.ID)
	}
}
