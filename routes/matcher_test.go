package routes

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, paths ...string) *Matcher {
	t.Helper()

	m := &Manifest{}
	for _, p := range paths {
		m.Entries = append(m.Entries, Entry{Path: p})
	}
	matcher, err := NewMatcher(m)
	require.NoError(t, err)

	return matcher
}

func TestMatcherMatch(t *testing.T) {
	t.Run("first match wins over a more specific literal", func(t *testing.T) {
		m := newTestMatcher(t, "./routes/a/[id].tsx", "./routes/a/b.tsx")

		match, ok := m.Match("/a/b")
		require.True(t, ok)
		assert.Equal(t, "./routes/a/[id].tsx", match.Entry.Path)
		assert.Equal(t, "/a/:id", match.Template)
		assert.Equal(t, map[string]string{"id": "b"}, match.Params)
	})

	t.Run("literal wins when declared first", func(t *testing.T) {
		m := newTestMatcher(t, "./routes/a/b.tsx", "./routes/a/[id].tsx")

		match, ok := m.Match("/a/b")
		require.True(t, ok)
		assert.Equal(t, "/a/b", match.Template)
		assert.Empty(t, match.Params)
	})

	t.Run("uses override pattern", func(t *testing.T) {
		m, err := NewMatcher(&Manifest{Entries: []Entry{
			{Path: "./routes/docs/[...path].tsx", Override: "/documentation/:path+"},
		}})
		require.NoError(t, err)

		_, ok := m.Match("/docs/intro")
		assert.False(t, ok)

		match, ok := m.Match("/documentation/intro/install")
		require.True(t, ok)
		assert.Equal(t, "/documentation/:path+", match.Template)
		assert.Equal(t, map[string]string{"path": "intro/install"}, match.Params)
	})

	t.Run("special files never match", func(t *testing.T) {
		m := newTestMatcher(t, "./routes/users/_middleware.ts", "./routes/_app.tsx")

		_, ok := m.Match("/users/_middleware")
		assert.False(t, ok)
		assert.Empty(t, m.Entries())
	})

	t.Run("no match", func(t *testing.T) {
		m := newTestMatcher(t, "./routes/index.tsx")

		_, ok := m.Match("/missing")
		assert.False(t, ok)
	})
}

func TestNewMatcherInvalidOverride(t *testing.T) {
	_, err := NewMatcher(&Manifest{Entries: []Entry{
		{Path: "./routes/a.tsx", Override: "/:id/:id"},
	}})
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "./routes/a.tsx")
}

func TestMatcherParams(t *testing.T) {
	m := newTestMatcher(t,
		"./routes/index.tsx",
		"./routes/users/[id].tsx",
		"./routes/docs/[...path].tsx",
	)

	assert.Equal(t, map[string]string{"id": "34"}, m.Params("/users/34"))
	assert.Equal(t, map[string]string{"path": "a/b"}, m.Params("/docs/a/b"))
	assert.Equal(t, map[string]string{}, m.Params("/"))
	assert.Equal(t, map[string]string{}, m.Params("/nothing/here"))
}

func TestMatcherParamsOmitsEmptyCaptures(t *testing.T) {
	m, err := NewMatcher(&Manifest{Entries: []Entry{
		{Path: "./routes/list.tsx", Override: "/list/:page?"},
	}})
	require.NoError(t, err)

	params := m.Params("/list")
	_, present := params["page"]
	assert.False(t, present)
}

func TestMatcherClassify(t *testing.T) {
	m := newTestMatcher(t, "./routes/index.tsx", "./routes/[...all].tsx")

	tests := []struct {
		path     string
		expected DestinationKind
	}{
		{path: "/", expected: Route},
		{path: "/anything/at/all", expected: Route},
		{path: "/_frsh/js/main.js", expected: Internal},
		{path: "/_frsh", expected: Internal},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Classify(tt.path))
		})
	}

	t.Run("not found", func(t *testing.T) {
		only := newTestMatcher(t, "./routes/index.tsx")
		assert.Equal(t, NotFound, only.Classify("/missing"))
	})

	t.Run("nil manifest", func(t *testing.T) {
		empty, err := NewMatcher(nil)
		require.NoError(t, err)
		assert.Nil(t, empty.Manifest())
		assert.Equal(t, NotFound, empty.Classify("/"))
		assert.Equal(t, Internal, empty.Classify("/_frsh/refresh.js"))
	})
}

func TestMatcherRoute(t *testing.T) {
	m := newTestMatcher(t, "./routes/users/[id].tsx")

	assert.Equal(t, "/users/:id", m.Route("/users/1"))
	assert.Equal(t, "/", m.Route("/posts/1"))
}

func TestDestinationKindString(t *testing.T) {
	assert.Equal(t, "internal", Internal.String())
	assert.Equal(t, "route", Route.String())
	assert.Equal(t, "notFound", NotFound.String())

	text, err := Route.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "route", string(text))
}

func TestMatcherConcurrentUse(t *testing.T) {
	m := newTestMatcher(t, "./routes/users/[id].tsx", "./routes/docs/[...path].tsx")

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := strings.Repeat("x", i+1)
			match, ok := m.Match("/users/" + id)
			assert.True(t, ok)
			assert.Equal(t, id, match.Params["id"])
		}()
	}
	wg.Wait()
}
