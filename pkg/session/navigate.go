package session

// Routes the manager emits as navigation hints. The values mirror the
// mobile client's registered screen paths.
const (
	// RouteInitial is the post-login landing screen.
	RouteInitial = "/intialscreen"

	// RouteRoot is the unauthenticated entry screen.
	RouteRoot = "/"
)

// NavigateFunc receives navigation hints as session transitions complete.
// It is called from the goroutine running the session operation, after
// state has been updated and published. Implementations must not call
// back into the manager synchronously.
type NavigateFunc func(route string)
