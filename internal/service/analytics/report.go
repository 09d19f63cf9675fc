package analytics

// CourseAnalytics - аналитика студента по одному курсу
type CourseAnalytics struct {
	CourseID uint          `json:"course_id"`
	Lessons  LessonSummary `json:"lessons"`
	Time     TimeSummary   `json:"time"`
	Quizzes  QuizSummary   `json:"quizzes"`
	Streak   Streak        `json:"streak"`
}

// CourseProgress - строка списка курсов в общей аналитике
type CourseProgress struct {
	CourseID         uint   `json:"course_id"`
	Title            string `json:"title"`
	CompletedLessons int    `json:"completed_lessons"`
	TotalLessons     int    `json:"total_lessons"`
	Progress         int    `json:"progress"`
}

// OverallAnalytics - аналитика студента по всем курсам, на которые он записан
type OverallAnalytics struct {
	Courses []CourseProgress `json:"courses"`
	Lessons LessonSummary    `json:"lessons"`
	Time    TimeSummary      `json:"time"`
	Quizzes QuizSummary      `json:"quizzes"`
	Streak  Streak           `json:"streak"`
}
