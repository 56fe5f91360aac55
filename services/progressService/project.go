package progressService

import (
	"fmt"
	"time"

	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// Read-side projection: percentage figures and quiz availability flags
// computed from stored progress. Pure functions of their inputs; nothing
// here touches the database.

type QuizData struct {
	Score       int        `json:"score"`
	Attempts    int        `json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt"`
}

type FinalQuizData struct {
	Score       int        `json:"score"`
	Attempts    int        `json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt"`
	Passed      bool       `json:"passed"`
}

type SubmoduleOverview struct {
	SubmoduleID    uint   `json:"submoduleId"`
	SubmoduleTitle string `json:"submoduleTitle"`
	Completed      bool   `json:"completed"`
}

type ModuleOverview struct {
	ModuleID            uint                `json:"moduleId"`
	ModuleTitle         string              `json:"moduleTitle"`
	Completed           bool                `json:"completed"`
	QuizData            QuizData            `json:"quizData"`
	CanTakeQuiz         bool                `json:"canTakeQuiz"`
	TotalSubmodules     int                 `json:"totalSubmodules"`
	CompletedSubmodules int                 `json:"completedSubmodules"`
	ModuleProgress      string              `json:"moduleProgress"`
	Submodules          []SubmoduleOverview `json:"submodules"`
}

type CourseOverview struct {
	CourseID         uint             `json:"courseId"`
	CourseName       string           `json:"courseName"`
	Completed        bool             `json:"completed"`
	TotalModules     int              `json:"totalModules"`
	CompletedModules int              `json:"completedModules"`
	Progress         string           `json:"progress"`
	FinalQuizData    FinalQuizData    `json:"finalQuizData"`
	Modules          []ModuleOverview `json:"modules"`
}

type UserOverview struct {
	ID       uint             `json:"_id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Role     string           `json:"role"`
	Courses  []CourseOverview `json:"courses"`
}

// formatPercent renders done/total as a percentage string with two
// decimal places, "0.00%" when total is zero.
func formatPercent(done, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(done)/float64(total)*100)
}

// projectCourse computes the API view of one course's progress. titles
// come from the catalog; rows missing a title (catalog shrank) keep an
// empty one rather than being dropped.
func projectCourse(cp *progressModels.CourseProgress, crs *courseModels.Course, moduleTitles, submoduleTitles map[uint]string, at time.Time) CourseOverview {
	completedModules := 0
	for _, mp := range cp.Modules {
		if mp.Completed {
			completedModules++
		}
	}

	overview := CourseOverview{
		CourseID:         crs.ID,
		CourseName:       crs.Title,
		Completed:        cp.Completed,
		TotalModules:     len(cp.Modules),
		CompletedModules: completedModules,
		Progress:         formatPercent(completedModules, len(cp.Modules)),
		FinalQuizData: FinalQuizData{
			Score:       cp.FinalQuizScore,
			Attempts:    cp.FinalQuizAttempts,
			LastAttempt: cp.FinalQuizLastAttempt,
			Passed:      cp.FinalQuizPassed,
		},
		Modules: make([]ModuleOverview, 0, len(cp.Modules)),
	}

	for _, mp := range cp.Modules {
		completedSubmodules := 0
		submodules := make([]SubmoduleOverview, 0, len(mp.Submodules))
		for _, sp := range mp.Submodules {
			if sp.Completed {
				completedSubmodules++
			}
			submodules = append(submodules, SubmoduleOverview{
				SubmoduleID:    sp.SubmoduleID,
				SubmoduleTitle: submoduleTitles[sp.SubmoduleID],
				Completed:      sp.Completed,
			})
		}

		overview.Modules = append(overview.Modules, ModuleOverview{
			ModuleID:    mp.ModuleID,
			ModuleTitle: moduleTitles[mp.ModuleID],
			Completed:   mp.Completed,
			QuizData: QuizData{
				Score:       mp.QuizScore,
				Attempts:    mp.QuizAttempts,
				LastAttempt: mp.QuizLastAttempt,
			},
			CanTakeQuiz:         canAttempt(mp.QuizAttempts, mp.QuizLastAttempt, at),
			TotalSubmodules:     len(mp.Submodules),
			CompletedSubmodules: completedSubmodules,
			ModuleProgress:      formatPercent(completedSubmodules, len(mp.Submodules)),
			Submodules:          submodules,
		})
	}

	return overview
}
