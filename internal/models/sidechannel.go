package models

// Actor identifies who performed a logged action.
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Initials  string `json:"initials,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ActivityEntry is one line in a task's activity log (newest first).
type ActivityEntry struct {
	ID     string `json:"id"`
	At     string `json:"at"`
	Actor  Actor  `json:"actor"`
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

// Activity entry types
const (
	ActivityView    = "view"
	ActivityEdit    = "edit"
	ActivityMove    = "move"
	ActivityComment = "comment"
	ActivityFile    = "file"
)

// FileMeta records an attached file by name only. Upload persistence is out
// of scope; the board stores metadata and nothing else.
type FileMeta struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	AddedAt string `json:"addedAt"`
	By      string `json:"by,omitempty"`
}

// Relation links a task to another task or external reference.
type Relation struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Note     string `json:"note,omitempty"`
}

// Comment is a free-text note on a task (newest first).
type Comment struct {
	ID   string `json:"id"`
	At   string `json:"at"`
	By   string `json:"by"`
	Text string `json:"text"`
}

// Message is one project chat entry (newest first).
type Message struct {
	ID   string `json:"id"`
	At   string `json:"at"`
	By   string `json:"by"`
	Text string `json:"text"`
}
