// Package panel serves a local web view of the repository: a live status
// tree, highlighted diffs, and a commit composer. Clients talk to the server
// over a websocket using typed, tagged request and event messages.
package panel

import (
	"encoding/json"
	"fmt"
	"time"

	"repolens.dev/repolens/internal/git"
)

// RequestType tags a client request
type RequestType string

const (
	// RequestStatus asks for a fresh state snapshot
	RequestStatus RequestType = "status"
	// RequestDiff asks for a rendered diff
	RequestDiff RequestType = "diff"
	// RequestStage stages the given paths
	RequestStage RequestType = "stage"
	// RequestUnstage unstages the given paths
	RequestUnstage RequestType = "unstage"
	// RequestCommit stages the selected files and commits them
	RequestCommit RequestType = "commit"
	// RequestPush pushes the current branch
	RequestPush RequestType = "push"
)

// Request is a client-to-server message. Payload shape depends on Type.
type Request struct {
	Type    RequestType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DiffPayload selects the diff to render
type DiffPayload struct {
	Path   string `json:"path,omitempty"`
	Staged bool   `json:"staged,omitempty"`
}

// PathsPayload carries file paths for stage/unstage requests
type PathsPayload struct {
	Paths []string `json:"paths"`
}

// CommitPayload carries the commit composer form
type CommitPayload struct {
	Message string   `json:"message"`
	Date    string   `json:"date,omitempty"`
	Files   []string `json:"files"`
	Push    bool     `json:"push,omitempty"`
}

// EventType tags a server-to-client message
type EventType string

const (
	// EventState carries a full repository state snapshot
	EventState EventType = "state"
	// EventDiff carries a rendered diff
	EventDiff EventType = "diff"
	// EventDone reports a completed mutation
	EventDone EventType = "done"
	// EventError carries the external tool's message verbatim
	EventError EventType = "error"
	// EventRefresh tells clients the repository changed on disk
	EventRefresh EventType = "refresh"
)

// Event is a server-to-client message
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// CommitData is one history entry in a state snapshot
type CommitData struct {
	Hash       string    `json:"hash"`
	ShortHash  string    `json:"short_hash"`
	Author     string    `json:"author"`
	AuthorDate time.Time `json:"author_date"`
	Subject    string    `json:"subject"`
}

// RenameData is a staged rename in a state snapshot
type RenameData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StateData is the full repository snapshot sent to the panel
type StateData struct {
	Branch    string       `json:"branch"`
	Tracking  string       `json:"tracking,omitempty"`
	Ahead     int          `json:"ahead,omitempty"`
	Behind    int          `json:"behind,omitempty"`
	Staged    []string     `json:"staged"`
	Modified  []string     `json:"modified"`
	Untracked []string     `json:"untracked"`
	Deleted   []string     `json:"deleted"`
	Renamed   []RenameData `json:"renamed"`
	Unpushed  []CommitData `json:"unpushed"`
}

// DiffData is a rendered diff
type DiffData struct {
	Path   string `json:"path,omitempty"`
	Staged bool   `json:"staged,omitempty"`
	HTML   string `json:"html"`
}

// DoneData reports which action finished
type DoneData struct {
	Action string `json:"action"`
}

// ErrorData carries a user-visible error message
type ErrorData struct {
	Message string `json:"message"`
}

// NewEvent builds an event with the payload marshaled into Data
func NewEvent(eventType EventType, data any) (Event, error) {
	event := Event{Type: eventType, Timestamp: time.Now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
		}
		event.Data = raw
	}
	return event, nil
}

// errorEvent wraps an error message as an EventError, falling back to a bare
// event if marshaling somehow fails.
func errorEvent(message string) Event {
	event, err := NewEvent(EventError, ErrorData{Message: message})
	if err != nil {
		return Event{Type: EventError, Timestamp: time.Now()}
	}
	return event
}

// stateData converts a status snapshot and resolver output to wire form
func stateData(status *git.Status, unpushed []git.Commit) StateData {
	state := StateData{
		Branch:    status.CurrentBranch,
		Tracking:  status.TrackingRef,
		Ahead:     status.Ahead,
		Behind:    status.Behind,
		Staged:    emptyNotNil(status.Staged),
		Modified:  emptyNotNil(status.Modified),
		Untracked: emptyNotNil(status.Untracked),
		Deleted:   emptyNotNil(status.Deleted),
		Renamed:   []RenameData{},
		Unpushed:  []CommitData{},
	}
	for _, ren := range status.Renamed {
		state.Renamed = append(state.Renamed, RenameData{From: ren.From, To: ren.To})
	}
	for _, commit := range unpushed {
		state.Unpushed = append(state.Unpushed, CommitData{
			Hash:       commit.Hash,
			ShortHash:  commit.ShortHash,
			Author:     commit.Author,
			AuthorDate: commit.AuthorDate,
			Subject:    commit.Subject,
		})
	}
	return state
}

func emptyNotNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
