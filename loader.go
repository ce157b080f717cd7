package ruffle

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// NavigationMethod selects how scripted variables travel with a load
// request.
type NavigationMethod uint8

const (
	MethodNone NavigationMethod = iota // no variables sent
	MethodGet                          // variables in the query string
	MethodPost                         // variables in the request body
)

// navigationMethodFromString maps the scripted method argument to a
// NavigationMethod. Unrecognized strings send no variables.
func navigationMethodFromString(s string) NavigationMethod {
	switch strings.ToUpper(s) {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	}
	return MethodNone
}

// FetchRequest is a fully built load request.
type FetchRequest struct {
	URL         string
	Method      NavigationMethod
	Body        []byte
	ContentType string
}

// PendingFetch is an in-flight request. Wait blocks until the response is
// available; it is only called from the task the navigator spawned, never
// from the tree-mutation thread.
type PendingFetch interface {
	Wait() ([]byte, error)
}

// Navigator is the external fetch and task-scheduling capability. Fetch
// must not block; Spawn runs the task off the tree-mutation thread.
type Navigator interface {
	Fetch(req FetchRequest) PendingFetch
	Spawn(task func())
}

// buildRequest merges the caller's local variables into a request per the
// navigation method: GET appends them to the query string, POST sends
// them urlencoded in the body, MethodNone sends none.
func buildRequest(target string, method NavigationMethod, locals map[string]Value) (FetchRequest, error) {
	req := FetchRequest{URL: target, Method: method}
	if method == MethodNone || len(locals) == 0 {
		return req, nil
	}
	vals := url.Values{}
	for k, v := range locals {
		s, err := v.CoerceToString()
		if err != nil {
			return FetchRequest{}, err
		}
		vals.Set(k, s)
	}
	encoded := vals.Encode()
	switch method {
	case MethodGet:
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		req.URL = target + sep + encoded
	case MethodPost:
		req.Body = []byte(encoded)
		req.ContentType = "application/x-www-form-urlencoded"
	}
	return req, nil
}

// LoadManager owns the continuations of in-flight loads. Fetches complete
// on navigator tasks; their effects are queued here and re-enter the
// tree-mutation thread when the stage drains them on its next update.
// There is no cancellation: a removed target suppresses the effect at
// apply time, not at submit time.
type LoadManager struct {
	mu        sync.Mutex
	completed []func()
}

// NewLoadManager creates an empty load manager.
func NewLoadManager() *LoadManager {
	return &LoadManager{}
}

func (lm *LoadManager) enqueue(apply func()) {
	lm.mu.Lock()
	lm.completed = append(lm.completed, apply)
	lm.mu.Unlock()
}

// ApplyCompleted runs the effects of completed loads. Called from the
// tree-mutation thread (the stage update).
func (lm *LoadManager) ApplyCompleted() {
	lm.mu.Lock()
	done := lm.completed
	lm.completed = nil
	lm.mu.Unlock()
	for _, apply := range done {
		apply()
	}
}

// RegisterMovieLoad returns the task that drives a movie load into the
// target clip. The continuation tolerates the clip having been removed in
// the interim, in which case it is a no-op.
func (lm *LoadManager) RegisterMovieLoad(target *Clip, fetch PendingFetch) func() {
	return func() {
		data, err := fetch.Wait()
		lm.enqueue(func() {
			if err != nil {
				logger().Warn("movie load failed", "path", target.Path(), "error", err)
				return
			}
			if target.Removed() {
				logger().Warn("movie load target removed before apply")
				return
			}
			target.unload()
			target.content = &ContentDef{
				Kind:       ContentSprite,
				FrameCount: 1,
				ByteSize:   uint32(len(data)),
			}
			target.loadedBytes = uint32(len(data))
		})
	}
}

// RegisterFormLoad returns the task that drives a variable load into the
// target object: the response is parsed as urlencoded key/value pairs and
// merged into the object's properties.
func (lm *LoadManager) RegisterFormLoad(target *Object, fetch PendingFetch) func() {
	return func() {
		data, err := fetch.Wait()
		lm.enqueue(func() {
			if err != nil {
				logger().Warn("variable load failed", "error", err)
				return
			}
			vals, err := url.ParseQuery(strings.TrimSpace(string(data)))
			if err != nil {
				logger().Warn("variable load response not urlencoded", "error", err)
				return
			}
			for k, vs := range vals {
				if len(vs) > 0 {
					target.Set(k, String(vs[len(vs)-1]))
				}
			}
		})
	}
}

// StaticFetch is a PendingFetch that resolves immediately with fixed data.
// Useful for local content and tests.
type StaticFetch struct {
	Data []byte
	Err  error
}

// Wait implements PendingFetch.
func (f StaticFetch) Wait() ([]byte, error) { return f.Data, f.Err }

// GoNavigator is a Navigator that resolves fetches through a user
// function and runs tasks on their own goroutines.
type GoNavigator struct {
	// FetchFunc resolves a request to response bytes. Called from the
	// spawned task, off the tree-mutation thread.
	FetchFunc func(req FetchRequest) ([]byte, error)
}

type goFetch struct {
	nav *GoNavigator
	req FetchRequest
}

func (f goFetch) Wait() ([]byte, error) {
	if f.nav.FetchFunc == nil {
		return nil, fmt.Errorf("no fetch function configured")
	}
	return f.nav.FetchFunc(f.req)
}

// Fetch implements Navigator.
func (n *GoNavigator) Fetch(req FetchRequest) PendingFetch {
	return goFetch{nav: n, req: req}
}

// Spawn implements Navigator.
func (n *GoNavigator) Spawn(task func()) {
	go task()
}
