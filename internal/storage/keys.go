package storage

// Key layout. Every piece of persisted state lives under one of these keys;
// the format is shared with earlier releases so existing data keeps loading.
const (
	// ProjectsKey holds the array of all project records.
	ProjectsKey = "projects-v1"

	// DefaultBoardKey is the legacy board that predates per-project boards.
	DefaultBoardKey = "kanban-board-v1"

	// ViewPrefKey and SortPrefKey hold the projects list UI preferences.
	ViewPrefKey = "projects-view"
	SortPrefKey = "projects-sort"
)

// BoardKey returns the storage key for a project's kanban board.
func BoardKey(projectID string) string {
	return "kanban-board-project-" + projectID
}

// ChatKey returns the storage key for a project's chat log.
func ChatKey(projectID string) string {
	return "project-chat-" + projectID
}

// SideChannelKey returns the key for one of a task's auxiliary record sets
// (activity, files, relations, comments).
func SideChannelKey(boardKey, taskID, channel string) string {
	return boardKey + "::task::" + taskID + "::" + channel
}

// TaskKeyPrefix returns the prefix under which all of a board's task
// side-channel keys live. Used to clear them when a board goes away.
func TaskKeyPrefix(boardKey string) string {
	return boardKey + "::task::"
}
