package tabular

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_NotReadyUntilLoaded(t *testing.T) {
	h := NewHolder()
	_, err := h.Store()
	assert.ErrorAs(t, err, &NotReadyError{})

	release := make(chan struct{})
	go h.Load(func() (*Store, error) {
		<-release
		return &Store{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	s, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s)

	s2, err := h.Store()
	require.NoError(t, err)
	assert.Same(t, s, s2)
}

func TestHolder_LoadErrorIsSticky(t *testing.T) {
	h := NewHolder()
	boom := errors.New("boom")
	_, err := h.Load(func() (*Store, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, err = h.Load(func() (*Store, error) { return &Store{}, nil })
	assert.ErrorIs(t, err, boom)

	_, err = h.Store()
	assert.ErrorIs(t, err, boom)
}
