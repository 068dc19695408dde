package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackIsComplete(t *testing.T) {
	b := Fallback()
	assert.Equal(t, "Game Developer & 3D Artist", b.About.Title)
	assert.Len(t, b.Skills, 3)
	assert.NotNil(t, b.Projects)
	assert.NotNil(t, b.Experience)
	assert.False(t, b.Empty())

	b.Skills["unity"][0].Name = "changed"
	assert.Equal(t, "Unity 3D", Fallback().Skills["unity"][0].Name, "fallback must not share state")
}

func TestHTTPSourceCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio/data", r.URL.Path)
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(Sample())
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/api/")
	now := time.Unix(1000, 0)
	src.now = func() time.Time { return now }

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Innovative Game Studios", b.Experience["work"][0].Company)

	_, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load(), "second fetch within TTL is cached")

	now = now.Add(DefaultCacheTTL + time.Second)
	_, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())

	src.ClearCache()
	_, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, hits.Load())
}

func TestHTTPSourceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrStatus)
}

type stubSource struct {
	bundle *Bundle
	err    error
	delay  time.Duration
}

func (s stubSource) Fetch(ctx context.Context) (*Bundle, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.bundle, s.err
}

func TestLoadFallsBack(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{"nil source", nil, Fallback().About.Title},
		{"error", stubSource{err: errors.New("offline")}, Fallback().About.Title},
		{"nil bundle", stubSource{}, Fallback().About.Title},
		{"timeout", stubSource{bundle: &Bundle{About: About{Title: "late"}}, delay: time.Second}, Fallback().About.Title},
		{"ok", stubSource{bundle: &Bundle{About: About{Title: "live"}}}, "live"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Load(context.Background(), tt.src, 20*time.Millisecond, nil)
			require.NotNil(t, b)
			assert.Equal(t, tt.want, b.About.Title)
			assert.NotNil(t, b.Skills)
		})
	}
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLStore(ctx, filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	defer store.Close()

	empty, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	require.NoError(t, store.Seed(ctx, Sample()))
	require.NoError(t, store.Migrate(ctx))

	b, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, Sample().About, b.About)
	assert.Equal(t, "hello@example.com", b.Contact.Email)
	require.Len(t, b.Skills["unity"], 2)
	assert.Equal(t, "Unity 3D", b.Skills["unity"][0].Name)
	assert.Equal(t, 95, b.Skills["unity"][0].Percentage)

	require.Len(t, b.Projects["unity"], 2)
	rpg := b.Projects["unity"][0]
	assert.Equal(t, "Epic Adventure RPG", rpg.Title)
	assert.True(t, rpg.Featured)
	assert.Equal(t, []string{"Unity", "C#", "HLSL"}, rpg.Technologies)
	assert.Equal(t, "completed", rpg.Status)

	work := b.Experience["work"]
	require.Len(t, work, 1)
	assert.True(t, work[0].Current)
	assert.Len(t, work[0].Achievements, 2)

	require.NoError(t, store.Seed(ctx, Fallback()))
	b, err = store.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, b.Projects, "reseeding replaces rows")
}

func TestProjectCards(t *testing.T) {
	cards := ProjectCards(Sample())
	require.Len(t, cards, 4)

	assert.True(t, cards[0].Featured)
	assert.True(t, cards[1].Featured)
	assert.GreaterOrEqual(t, cards[0].Year, cards[1].Year)
	for i := 2; i < len(cards); i++ {
		assert.False(t, cards[i].Featured)
		if i > 2 {
			assert.GreaterOrEqual(t, cards[i-1].Year, cards[i].Year)
		}
	}

	for _, c := range cards {
		assert.Equal(t, PlaceholderImage, c.Image)
		for _, l := range c.Links {
			assert.NotEmpty(t, l.URL)
			assert.NotEqual(t, "#", l.URL)
		}
		if c.Title == "Epic Adventure RPG" {
			require.Len(t, c.Links, 1)
			assert.Equal(t, "GitHub", c.Links[0].Label)
			assert.Equal(t, "unity", c.Category)
		}
	}
}

func TestSkillLevelsAndTitles(t *testing.T) {
	levels := SkillLevels(Fallback())
	assert.Equal(t, 92, levels["vr"][0].Level)
	assert.Equal(t, []string{"modeling", "unity", "vr"}, Categories(levels))

	assert.Equal(t, "Game Development", CategoryTitle("unity"))
	assert.Equal(t, "Audio", CategoryTitle("audio"))
	assert.Equal(t, "", CategoryTitle(""))
}
