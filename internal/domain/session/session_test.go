package session

import (
	"testing"
	"time"

	"github.com/goiam/console/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotFresh(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		refreshedAt time.Time
		want        bool
	}{
		{"zero stamp is stale", time.Time{}, false},
		{"just refreshed", now, true},
		{"inside window", now.Add(-4 * time.Minute), true},
		{"window boundary", now.Add(-5 * time.Minute), false},
		{"past window", now.Add(-5*time.Minute - time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{LastRefreshedAt: tt.refreshedAt}
			assert.Equal(t, tt.want, s.Fresh(now))
		})
	}
}

func TestSnapshotActiveProjectID(t *testing.T) {
	s := Snapshot{}
	assert.Equal(t, "", s.ActiveProjectID(), "no project yields empty scope, not a missing one")

	s.DefaultProject = &model.Project{ID: "p-default"}
	assert.Equal(t, "p-default", s.ActiveProjectID())

	s.SelectedProject = &model.Project{ID: "p-chosen"}
	assert.Equal(t, "p-chosen", s.ActiveProjectID(), "explicit selection wins over the default")
}

func TestSnapshotResetIsIdempotent(t *testing.T) {
	now := time.Now()
	s := Snapshot{
		ID:              "sid",
		Token:           "tok",
		ClientID:        "client",
		User:            &model.User{ID: "u1"},
		Verified:        true,
		LoadedState:     true,
		SelectedProject: &model.Project{ID: "p1"},
	}

	s.Reset(now)
	first := s
	s.Reset(now)

	assert.Equal(t, first, s)
	assert.Empty(t, s.Token)
	assert.Empty(t, s.ClientID)
	assert.Nil(t, s.User)
	assert.False(t, s.Verified)
	assert.False(t, s.LoadedState)
	assert.Equal(t, now.Add(-StalenessWindow), s.LastRefreshedAt, "stamp is backdated to force the next bootstrap")
	assert.NotNil(t, s.SelectedProject, "selected project survives logout")
}

func TestSnapshotActor(t *testing.T) {
	s := Snapshot{ID: "sid"}
	assert.Equal(t, "sid", s.Actor())

	s.User = &model.User{Email: "ops@example.com"}
	assert.Equal(t, "ops@example.com", s.Actor())
}
