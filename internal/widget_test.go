package internal

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/support-widget/internal/ui"
	"github.com/iksnae/support-widget/testutil"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

func mountTest(t *testing.T, api *testutil.MockAPI, sessions SessionStore, opts Options) *Widget {
	t.Helper()
	opts.HTTPClient = api.Client()
	if opts.Scheduler == nil {
		opts.Scheduler = testutil.NewManualScheduler()
	}
	w, err := Mount(context.Background(), Settings{APIKey: "test-key", BaseURL: api.URL}, sessions, opts)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func TestMountMissingAPIKey(t *testing.T) {
	api := testutil.NewMockAPI(t)
	page := ui.NewPage()

	w, err := Mount(context.Background(), Settings{BaseURL: api.URL}, NewMemorySessionStore(""), Options{Page: page})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, w)
	assert.Empty(t, page.Roots())
	assert.Zero(t, api.ConfigCalls(), "no request may be made without a key")
}

func TestMountAppliesConfig(t *testing.T) {
	api := testutil.NewMockAPI(t)
	w := mountTest(t, api, NewMemorySessionStore(""), Options{})
	doc := w.Document()

	assert.False(t, w.Degraded())
	assert.Equal(t, 1, api.ConfigCalls())

	bubble, ok := doc.Get(ui.BubbleID)
	require.True(t, ok)
	assert.Equal(t, "#123456", bubble.Style["background-color"])
	assert.True(t, doc.HasClass(ui.WrapperID, "pos-top-left"))
	assert.True(t, doc.HasClass(ui.WindowID, ui.ClassHidden))
	assert.True(t, doc.Has(ui.InputID))

	header := doc.Snapshot().Find(ui.HeaderID)
	var title, status string
	header.Walk(func(n *ui.Node) bool {
		switch {
		case n.Tag == "h3":
			title = n.Text
		case n.HasClass("status"):
			status = n.Text
		}
		return true
	})
	assert.Equal(t, "Help", title)
	assert.Equal(t, ui.StatusOnline, status)
	assert.Equal(t, []ui.Message{{Text: "Hi", Sender: ui.SenderBot}}, w.View().Messages())
}

func TestMountDegraded(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.SetConfig(http.StatusForbidden, `{"detail":"invalid key"}`)
	w := mountTest(t, api, NewMemorySessionStore(""), Options{})
	doc := w.Document()

	assert.True(t, w.Degraded())
	assert.False(t, doc.Has(ui.InputID))
	assert.False(t, doc.Has(ui.SendID))
	assert.Equal(t, []ui.Message{{Text: OfflineWelcome, Sender: ui.SenderBot}}, w.View().Messages())
	assert.True(t, doc.HasClass(ui.WrapperID, "pos-bottom-right"))

	bubble, _ := doc.Get(ui.BubbleID)
	assert.Equal(t, "#0ea5e9", bubble.Style["background-color"])

	assert.True(t, w.Click(ui.BubbleID), "the window still toggles offline")
	assert.Equal(t, ui.WindowOpen, w.Window().State())

	_, err := w.Send("hello")
	assert.ErrorIs(t, err, ErrWidgetOffline)
	assert.Empty(t, api.ChatCalls())
}

func TestWidgetTypeAndSubmit(t *testing.T) {
	api := testutil.NewMockAPI(t)
	sessions := NewMemorySessionStore("")
	w := mountTest(t, api, sessions, Options{})

	release := api.HoldChat()
	w.Type("ping")
	require.True(t, w.Submit())

	assert.True(t, w.Busy())
	assert.True(t, w.View().LoadingVisible())
	assert.False(t, w.View().SendEnabled())
	assert.Empty(t, w.View().Input())

	// send control is disabled while the exchange runs
	w.Type("again")
	assert.False(t, w.Click(ui.SendID))

	release()
	require.Eventually(t, func() bool { return !w.Busy() }, testTimeout, testTick)

	msgs := w.View().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ui.Message{Text: "ping", Sender: ui.SenderUser}, msgs[1])
	assert.Equal(t, ui.Message{Text: "echo: ping", Sender: ui.SenderBot}, msgs[2])
	assert.True(t, w.View().SendEnabled())

	id, ok := sessions.Get()
	require.True(t, ok)
	assert.Equal(t, "sess-1", id)

	require.True(t, w.Click(ui.SendID))
	require.Eventually(t, func() bool { return len(api.ChatCalls()) == 2 && !w.Busy() }, testTimeout, testTick)
	calls := api.ChatCalls()
	require.NotNil(t, calls[1].SessionID)
	assert.Equal(t, "sess-1", *calls[1].SessionID)
	assert.Equal(t, "again", calls[1].Message)
}

func TestWidgetSubmitEmptyIsNoop(t *testing.T) {
	api := testutil.NewMockAPI(t)
	w := mountTest(t, api, NewMemorySessionStore(""), Options{})

	w.Type("   ")
	w.Submit()

	assert.Len(t, w.View().Messages(), 1)
	assert.False(t, w.Busy())
	assert.Empty(t, api.ChatCalls())
}

func TestWidgetSuggestedQuestion(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.SetConfig(http.StatusOK, testutil.FullConfigJSON)
	w := mountTest(t, api, NewMemorySessionStore(""), Options{})

	window, _ := w.Document().Get(ui.WindowID)
	assert.Equal(t, "#f8fafc", window.Style["background-color"])

	ok := w.Document().DispatchNode(func(n *ui.Node) bool {
		return n.HasClass("suggested-question") && n.Text == "What are your pricing plans?"
	}, ui.EventClick)
	require.True(t, ok)

	require.Eventually(t, func() bool { return !w.Busy() && len(w.View().Messages()) == 3 }, testTimeout, testTick)
	calls := api.ChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "What are your pricing plans?", calls[0].Message)
}

func TestWidgetChatFailure(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.OnChat(func(testutil.ChatCall) (int, string) {
		return http.StatusInternalServerError, `{"detail":"boom"}`
	})
	w := mountTest(t, api, NewMemorySessionStore(""), Options{})

	done, err := w.Send("hello")
	require.NoError(t, err)
	<-done

	msgs := w.View().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, FallbackAnswer, msgs[2].Text)
	assert.True(t, w.View().SendEnabled())
}

func TestWidgetToggleWindow(t *testing.T) {
	api := testutil.NewMockAPI(t)
	sched := testutil.NewManualScheduler()
	w := mountTest(t, api, NewMemorySessionStore(""), Options{Scheduler: sched})
	doc := w.Document()

	require.True(t, w.Click(ui.BubbleID))
	assert.False(t, doc.HasClass(ui.WindowID, ui.ClassHidden))
	assert.True(t, doc.HasClass(ui.WindowID, ui.ClassSlideUp))

	require.True(t, w.Click(ui.CloseID))
	assert.True(t, doc.HasClass(ui.WindowID, ui.ClassSlideDown))
	assert.False(t, doc.HasClass(ui.WindowID, ui.ClassHidden))

	sched.Advance(100 * time.Millisecond)
	require.True(t, w.Click(ui.BubbleID))
	sched.Advance(ui.CloseDelay)

	assert.Equal(t, ui.WindowOpen, w.Window().State())
	assert.False(t, doc.HasClass(ui.WindowID, ui.ClassHidden))
	assert.True(t, doc.HasClass(ui.WindowID, ui.ClassSlideUp))

	require.True(t, w.Click(ui.CloseID))
	sched.Advance(ui.CloseDelay)
	assert.True(t, doc.HasClass(ui.WindowID, ui.ClassHidden))
	assert.Equal(t, ui.WindowClosed, w.Window().State())
}

func TestMountSinglePerPage(t *testing.T) {
	api := testutil.NewMockAPI(t)
	page := ui.NewPage()
	mountTest(t, api, NewMemorySessionStore(""), Options{Page: page})

	_, err := Mount(context.Background(), Settings{APIKey: "test-key", BaseURL: api.URL}, NewMemorySessionStore(""), Options{
		HTTPClient: api.Client(),
		Page:       page,
	})
	assert.ErrorIs(t, err, ui.ErrRootExists)
	assert.Len(t, page.Roots(), 1)
}

func TestWidgetSessionPersistsAcrossMounts(t *testing.T) {
	api := testutil.NewMockAPI(t)
	db := testutil.CreateInMemoryDB(t)
	storage := NewStorage(db)

	first := mountTest(t, api, NewSQLiteSessionStore(storage, "https://shop.example.com"), Options{})
	done, err := first.Send("hello")
	require.NoError(t, err)
	<-done
	first.Close()

	second := mountTest(t, api, NewSQLiteSessionStore(storage, "https://shop.example.com"), Options{})
	done, err = second.Send("back again")
	require.NoError(t, err)
	<-done

	calls := api.ChatCalls()
	require.Len(t, calls, 2)
	assert.Nil(t, calls[0].SessionID)
	require.NotNil(t, calls[1].SessionID)
	assert.Equal(t, "sess-1", *calls[1].SessionID)
}

func TestWidgetStoresReturnedSession(t *testing.T) {
	api := testutil.NewMockAPI(t)
	body := string(testutil.JSONMarshal(t, map[string]string{"session_id": "abc", "answer": "42"}))
	api.OnChat(func(testutil.ChatCall) (int, string) { return http.StatusOK, body })

	sessions := NewMemorySessionStore("")
	w := mountTest(t, api, sessions, Options{})

	done, err := w.Send("ping")
	require.NoError(t, err)
	<-done

	assert.Equal(t, []ui.Message{
		{Text: "Hi", Sender: ui.SenderBot},
		{Text: "ping", Sender: ui.SenderUser},
		{Text: "42", Sender: ui.SenderBot},
	}, w.View().Messages())

	id, ok := sessions.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", id)

	calls := api.ChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ping", calls[0].Message)
	assert.Nil(t, calls[0].SessionID)
}
