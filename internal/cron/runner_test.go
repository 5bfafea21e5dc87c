package cronrunner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(zap.NewNop(), context.Background())
	_, err := r.Add("bad", "every now and then", func(context.Context) {})
	assert.Error(t, err)
}

func TestJobRunsWithBaseContext(t *testing.T) {
	type key struct{}
	base := context.WithValue(context.Background(), key{}, "base")

	r := New(zap.NewNop(), base)
	got := make(chan any, 1)
	_, err := r.Add("tick", "* * * * * *", func(ctx context.Context) {
		select {
		case got <- ctx.Value(key{}):
		default:
		}
	})
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	select {
	case v := <-got:
		assert.Equal(t, "base", v)
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestJobSkippedAfterBaseCancelled(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(zap.NewNop(), base)
	ran := make(chan struct{}, 1)
	_, err := r.Add("tick", "* * * * * *", func(context.Context) { ran <- struct{}{} })
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	select {
	case <-ran:
		t.Fatal("job ran on a cancelled base context")
	case <-time.After(1500 * time.Millisecond):
	}
}
