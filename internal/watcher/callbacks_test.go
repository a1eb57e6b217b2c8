package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sftpsync/watcher/internal/model"
)

func TestDeliver_RunsFunctionsInOrder(t *testing.T) {
	d := newDeliver()
	defer d.close()

	var order []int
	done := make(chan struct{})

	for i := 0; i < 3; i++ {
		i := i
		d.send(func() {
			order = append(order, i)
			if i == 2 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestReconcileCallbacks_RoutesEventsAndErrorsThroughHost(t *testing.T) {
	var gotKind EventKind
	var gotStatus bool
	var gotErrPath string

	w := New(testConfig(), Callbacks{
		OnFileEvent: func(item model.FileItem, kind EventKind, status bool) {
			gotKind = kind
			gotStatus = status
		},
		OnError: func(path string, err error) {
			gotErrPath = path
		},
	}, nil)

	d := newDeliver()
	cb := w.reconcileCallbacks(d)

	cb.OnEvent(model.FileItem{Name: "a"}, EventUpload, true)
	cb.OnError("/a", assertableErr("nope"))

	d.close()

	require.Equal(t, EventUpload, gotKind)
	assert.True(t, gotStatus)
	assert.Equal(t, "/a", gotErrPath)
	assert.Error(t, w.GetError())
}

func TestReconcileCallbacks_SetsLastErrEvenWithoutHostHandler(t *testing.T) {
	w := New(testConfig(), Callbacks{}, nil)

	d := newDeliver()
	cb := w.reconcileCallbacks(d)

	cb.OnError("/a", assertableErr("nope"))
	d.close()

	assert.Error(t, w.GetError())
}
