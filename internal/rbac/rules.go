package rbac

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

const (
	PermQuestionValidate  = "question:validate"
	PermQuizCreate        = "quiz:create"
	PermQuizView          = "quiz:view"
	PermSubmissionCreate  = "submission:create"
	PermSubmissionViewOwn = "submission:view-own"
	PermSubmissionViewAll = "submission:view-all"
	PermEventsRead        = "events:read"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	RoleStudent: {
		PermQuestionValidate,
		PermQuizView,
		PermSubmissionCreate,
		PermSubmissionViewOwn,
	},
	RoleTeacher: {
		"question:*",
		PermQuizCreate,
		PermQuizView,
		PermSubmissionViewAll,
	},
	RoleAdmin: {
		"*",
	},
}
