package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RygelGasparTheOG/rycord/internal/models"
	"github.com/RygelGasparTheOG/rycord/internal/persist"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := models.ConfigFile{DataDir: t.TempDir(), AdminPassword: "hunter2"}
	s, err := Open(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func login(t *testing.T, s *Store, username, password string) string {
	t.Helper()
	require.NoError(t, s.Register(username, password))
	token, _, err := s.Authenticate(username, password)
	require.NoError(t, err)
	return token
}

func TestOpenCreatesDefaultChannels(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, []string{"general", "random"}, s.ListChannels())
}

func TestRegisterThenAuthenticate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("alice", "pw1"))

	token, color, err := s.Authenticate("alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, palette, color)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("alice", "pw1"))
	assert.ErrorIs(t, s.Register("alice", "pw2"), ErrUsernameTaken)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", "pw1"))

	token, _, err := s.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Empty(t, s.sessions, "a failed login must not leave a session behind")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Authenticate("nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBannedUserCannotRegisterOrLogin(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("mallory", "pw"))
	s.banned = []string{"mallory", "eve"}

	assert.ErrorIs(t, s.Register("eve", "pw"), ErrBanned)

	_, _, err := s.Authenticate("mallory", "pw")
	assert.ErrorIs(t, err, ErrBanned)
}

func TestPostMessage(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")

	err := s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"})
	require.NoError(t, err)

	messages := s.ListMessages("general")
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "alice", messages[0].Username)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, models.MessageTypeText, messages[0].Type)
	assert.NotEmpty(t, messages[0].Timestamp)

	_, err = time.Parse(time.RFC3339Nano, messages[0].Timestamp)
	assert.NoError(t, err, "timestamp must be server-assigned ISO-8601")
}

func TestPostMessageInvalidSession(t *testing.T) {
	s := newTestStore(t)

	err := s.PostMessage("bogus", "alice", "general", Draft{ID: "m1", Text: "hi"})
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPostMessageUnknownChannelIsSilentNoop(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")

	err := s.PostMessage(token, "alice", "nope", Draft{ID: "m1", Text: "hi"})
	assert.NoError(t, err)
	assert.Empty(t, s.ListMessages("nope"))
	assert.Empty(t, s.ListMessages("general"))
}

func TestPostMessageRestrictedChannel(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	s.restricted["general"] = []string{"alice"}

	err := s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"})
	assert.ErrorIs(t, err, ErrChannelRestricted)

	// the restriction is per-channel only
	require.NoError(t, s.PostMessage(token, "alice", "random", Draft{ID: "m2", Text: "hi"}))
}

func TestPostMessageBannedUser(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	s.banned = []string{"alice"}

	err := s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"})
	assert.ErrorIs(t, err, ErrBanned)
}

func TestDeleteMessage(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	require.NoError(t, s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"}))

	require.NoError(t, s.DeleteMessage(token, "general", "m1", "alice"))
	assert.Empty(t, s.ListMessages("general"))

	// second delete of the same id
	assert.ErrorIs(t, s.DeleteMessage(token, "general", "m1", "alice"), ErrMessageNotFound)
}

func TestDeleteMessageWrongAuthor(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	require.NoError(t, s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"}))

	err := s.DeleteMessage(token, "general", "m1", "bob")
	assert.ErrorIs(t, err, ErrNotMessageAuthor)
	assert.Len(t, s.ListMessages("general"), 1)
}

func TestDeleteMessageUnknownChannel(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")

	assert.ErrorIs(t, s.DeleteMessage(token, "nope", "m1", "alice"), ErrMessageNotFound)
}

func TestConcurrentPostsLoseNoMessages(t *testing.T) {
	dataDir := t.TempDir()
	s, err := Open(models.ConfigFile{DataDir: dataDir, AdminPassword: "hunter2"}, zap.NewNop().Sugar())
	require.NoError(t, err)
	token := login(t, s, "alice", "pw1")

	const posts = 50
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			draft := Draft{ID: fmt.Sprintf("m%d", n), Text: "msg"}
			assert.NoError(t, s.PostMessage(token, "alice", "general", draft))
		}(i)
	}
	wg.Wait()

	inMemory := s.ListMessages("general")
	require.Len(t, inMemory, posts)

	// the persisted document must match memory exactly
	snapshots, err := persist.NewSnapshots(dataDir)
	require.NoError(t, err)
	onDisk, err := snapshots.LoadMessages()
	require.NoError(t, err)
	assert.Equal(t, inMemory, onDisk["general"].Messages)
}

func TestRestartRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	cfg := models.ConfigFile{DataDir: dataDir, AdminPassword: "hunter2"}

	s, err := Open(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)

	token := login(t, s, "alice", "pw1")
	require.NoError(t, s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"}))

	adminToken, err := s.AdminAuthenticate("hunter2")
	require.NoError(t, err)
	require.NoError(t, s.AdminReplace(adminToken,
		[]string{"general", "random", "lounge"},
		[]string{"mallory"},
		map[string][]string{"lounge": {"bob"}},
	))
	require.NoError(t, s.Close())

	reopened, err := Open(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, []string{"general", "lounge", "random"}, reopened.ListChannels())
	assert.Equal(t, s.ListMessages("general"), reopened.ListMessages("general"))
	assert.Equal(t, []string{"mallory"}, reopened.banned)
	assert.Equal(t, map[string][]string{"lounge": {"bob"}}, reopened.restricted)
	assert.Empty(t, reopened.sessions, "sessions must not survive a restart")
	assert.Empty(t, reopened.adminSessions)

	_, _, err = reopened.Authenticate("alice", "pw1")
	assert.NoError(t, err, "users must survive a restart")
}

func TestAdminAuthenticate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AdminAuthenticate("wrong")
	assert.ErrorIs(t, err, ErrInvalidAdminPassword)

	token, err := s.AdminAuthenticate("hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAdminSnapshot(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", "pw1"))
	require.NoError(t, s.Register("bob", "pw2"))
	s.banned = []string{"mallory"}
	s.restricted["general"] = []string{"bob"}

	_, err := s.AdminSnapshot("bogus")
	assert.ErrorIs(t, err, ErrInvalidAdminSession)

	token, err := s.AdminAuthenticate("hunter2")
	require.NoError(t, err)

	data, err := s.AdminSnapshot(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"general", "random"}, data.Channels)
	assert.Equal(t, []string{"alice", "bob"}, data.Users)
	assert.Equal(t, []string{"mallory"}, data.BannedUsers)
	assert.Equal(t, map[string][]string{"general": {"bob"}}, data.RestrictedChannels)
}

func TestAdminReplaceDiffsChannels(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	require.NoError(t, s.PostMessage(token, "alice", "random", Draft{ID: "m1", Text: "bye"}))

	adminToken, err := s.AdminAuthenticate("hunter2")
	require.NoError(t, err)

	err = s.AdminReplace(adminToken, []string{"general", "lounge"}, []string{}, map[string][]string{})
	require.NoError(t, err)

	assert.Equal(t, []string{"general", "lounge"}, s.ListChannels())
	assert.Empty(t, s.ListMessages("lounge"), "new channels start empty")
	assert.Empty(t, s.ListMessages("random"), "dropped channels lose their messages")
}

func TestAdminReplaceBansTakeEffect(t *testing.T) {
	s := newTestStore(t)
	token := login(t, s, "alice", "pw1")
	require.NoError(t, s.PostMessage(token, "alice", "general", Draft{ID: "m1", Text: "hi"}))

	adminToken, err := s.AdminAuthenticate("hunter2")
	require.NoError(t, err)
	require.NoError(t, s.AdminReplace(adminToken,
		[]string{"general", "random"}, []string{"alice"}, map[string][]string{}))

	err = s.PostMessage(token, "alice", "general", Draft{ID: "m2", Text: "hi again"})
	assert.ErrorIs(t, err, ErrBanned)
}
