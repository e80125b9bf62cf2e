package server

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopBeforeRunPreventsServing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(gin.New(), "127.0.0.1:0")

	require.NoError(t, srv.Stop(time.Second))
	assert.NoError(t, srv.Run())
}

func TestStopEndsRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(gin.New(), "127.0.0.1:0")

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	require.NoError(t, srv.Stop(time.Second))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
