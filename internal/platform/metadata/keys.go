package metadata

// --- SQL Keys ---
// These keys are used for the 'key' column in the 'metadata' table.
const (
	// QuestionnaireVersionKey stores the identifier of the screening
	// questionnaire currently in use. New ScreeningResult rows are stamped
	// with this value so old results stay interpretable after a revision.
	QuestionnaireVersionKey = "questionnaire_version"
)

// DefaultQuestionnaireVersion 是首次启动时写入的问卷版本。
// 七题、每题0-3分的焦虑自评量表。
const DefaultQuestionnaireVersion = "mb-anxiety-7.v1"
