package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/notify"
)

var fireAt = time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

type recorder struct {
	got []model.Notification
	err error
}

func (r *recorder) Notify(_ context.Context, n model.Notification) error {
	r.got = append(r.got, n)
	return r.err
}

func TestFromReminder(t *testing.T) {
	title := "Chemistry lab"
	withTask := notify.FromReminder(model.Reminder{ID: 4, FireAt: fireAt, Channel: model.ChannelBrowser, TaskTitle: &title}, fireAt)
	assert.Equal(t, "Reminder: Chemistry lab", withTask.Title)
	assert.Equal(t, int64(4), withTask.ReminderID)
	assert.Equal(t, model.ChannelBrowser, withTask.Channel)
	assert.Contains(t, withTask.Body, "2025-06-01T07:00:00Z")
	_, err := uuid.Parse(withTask.ID)
	require.NoError(t, err)

	standalone := notify.FromReminder(model.Reminder{ID: 5, FireAt: fireAt}, fireAt)
	assert.Equal(t, notify.GenericTitle, standalone.Title)
	assert.NotEqual(t, withTask.ID, standalone.ID)
}

func TestMulti_DeliversToAllAndJoinsErrors(t *testing.T) {
	failing := &recorder{err: errors.New("sink down")}
	ok := &recorder{}
	n := notify.FromReminder(model.Reminder{ID: 1, FireAt: fireAt}, fireAt)

	err := notify.Multi{failing, ok}.Notify(context.Background(), n)
	require.ErrorContains(t, err, "sink down")
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1)
}

func TestOnlyChannel(t *testing.T) {
	rec := &recorder{}
	sink := notify.OnlyChannel(model.ChannelBrowser, rec)
	ctx := context.Background()

	require.NoError(t, sink.Notify(ctx, model.Notification{Channel: model.ChannelInApp}))
	require.NoError(t, sink.Notify(ctx, model.Notification{Channel: model.ChannelBrowser}))
	require.Len(t, rec.got, 1)
	assert.Equal(t, model.ChannelBrowser, rec.got[0].Channel)
}

func TestLogAndConsoleSinks(t *testing.T) {
	var logBuf, consoleBuf bytes.Buffer
	n := notify.FromReminder(model.Reminder{ID: 9, FireAt: fireAt, Channel: model.ChannelInApp}, fireAt)

	require.NoError(t, notify.NewLogSink(log.New(&logBuf, "", 0)).Notify(context.Background(), n))
	assert.Contains(t, logBuf.String(), "[notify] reminder 9 (in_app): StudySync reminder")

	require.NoError(t, notify.NewConsoleSink(&consoleBuf).Notify(context.Background(), n))
	assert.Contains(t, consoleBuf.String(), "StudySync reminder")
}

func TestOutbox(t *testing.T) {
	box := notify.NewOutbox(2)
	ctx := context.Background()

	assert.Empty(t, box.Drain())

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, box.Notify(ctx, model.Notification{ReminderID: id}))
	}

	items := box.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ReminderID)
	assert.Equal(t, int64(3), items[1].ReminderID)
	assert.Empty(t, box.Drain())
}
