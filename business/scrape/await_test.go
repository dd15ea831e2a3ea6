package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"scoutIO/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwait_ReadyAfterPolling(t *testing.T) {
	client := &fakeClient{
		statuses: []ProviderStatus{{State: ProviderRunning}, {State: ProviderRunning}, {State: ProviderReady}},
		items:    []RawItem{{Name: "Kettle", Price: json.RawMessage(`12`)}},
	}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: time.Millisecond,
		Deadline:     time.Now().Add(time.Second),
	})

	require.NoError(t, out.Err)
	assert.Equal(t, domain.JobSucceeded, out.Status)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 3, client.pollCount())
}

func TestAwait_RetriesTransientStatusErrors(t *testing.T) {
	client := &fakeClient{
		statusErr: []error{errFlaky, errFlaky},
		statuses:  []ProviderStatus{{}, {}, {State: ProviderReady}},
	}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: time.Millisecond,
		Deadline:     time.Now().Add(time.Second),
	})

	assert.Equal(t, domain.JobSucceeded, out.Status)
	assert.Equal(t, 3, client.pollCount())
}

func TestAwait_ProviderFailure(t *testing.T) {
	client := &fakeClient{
		statuses: []ProviderStatus{{State: ProviderFailed, Message: "blocked by captcha"}},
	}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: time.Millisecond,
		Deadline:     time.Now().Add(time.Second),
	})

	assert.Equal(t, domain.JobFailed, out.Status)
	assert.ErrorIs(t, out.Err, ErrProviderFailed)
	assert.Contains(t, out.Err.Error(), "captcha")
}

func TestAwait_ResultFetchFailure(t *testing.T) {
	client := &fakeClient{
		statuses:  []ProviderStatus{{State: ProviderReady}},
		resultErr: errors.New("snapshot expired"),
	}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: time.Millisecond,
		Deadline:     time.Now().Add(time.Second),
	})

	assert.Equal(t, domain.JobFailed, out.Status)
	assert.Error(t, out.Err)
}

func TestAwait_DeadlineTimesOut(t *testing.T) {
	client := &fakeClient{}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: 5 * time.Millisecond,
		Deadline:     time.Now().Add(30 * time.Millisecond),
	})

	assert.Equal(t, domain.JobTimedOut, out.Status)
	assert.ErrorIs(t, out.Err, ErrDeadlineExceeded)
	assert.Greater(t, client.pollCount(), 0)
}

func TestAwait_DeadlineAlreadyPassed(t *testing.T) {
	client := &fakeClient{statuses: []ProviderStatus{{State: ProviderReady}}}

	out := Await(context.Background(), client, "snap-1", AwaitOptions{
		PollInterval: time.Millisecond,
		Deadline:     time.Now().Add(-time.Second),
	})

	assert.Equal(t, domain.JobTimedOut, out.Status)
	assert.Equal(t, 0, client.pollCount())
}

func TestAwait_CancelledByCaller(t *testing.T) {
	client := &fakeClient{}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	out := Await(ctx, client, "snap-1", AwaitOptions{
		PollInterval: 5 * time.Millisecond,
		Deadline:     time.Now().Add(time.Minute),
	})

	assert.Equal(t, domain.JobFailed, out.Status)
	assert.ErrorIs(t, out.Err, context.Canceled)
}
