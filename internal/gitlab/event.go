package gitlab

// EventKind is the closed set of webhook event kinds the ingestor recognizes.
// Anything else maps to EventUnknown and is acknowledged without a
// notification.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventMergeRequest
	EventPush
)

// Header values GitLab sends in X-Gitlab-Event.
const (
	headerMergeRequestHook = "Merge Request Hook"
	headerPushHook         = "Push Hook"
)

func KindOf(eventHeader string) EventKind {
	switch eventHeader {
	case headerMergeRequestHook:
		return EventMergeRequest
	case headerPushHook:
		return EventPush
	}
	return EventUnknown
}

func (k EventKind) String() string {
	switch k {
	case EventMergeRequest:
		return "merge_request"
	case EventPush:
		return "push"
	}
	return "unknown"
}
