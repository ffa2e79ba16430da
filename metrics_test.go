package beanstalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("put 0 0 120 5")
		s.expectData("hello")
		s.reply("INSERTED 1")
		s.expect("reserve")
		s.replyBody("RESERVED 1 5", "hello")
		s.expect("reserve-with-timeout 0")
		s.reply("TIMED_OUT")
		s.expect("delete 1")
		s.reply("DELETED")
		s.expect("peek 1")
		s.replyBody("FOUND 1 5", "hello")
		s.expect("peek 2")
		s.reply("NOT_FOUND")
		s.expect("kick 10")
		s.reply("KICKED 3")
	})
	conn := dialTest(t, addr)

	_, err := conn.Put([]byte("hello"), 0, 0, DefaultTTR)
	require.NoError(t, err)

	_, err = conn.Reserve()
	require.NoError(t, err)

	job, err := conn.ReserveWithTimeout(0)
	require.NoError(t, err)
	require.Nil(t, job)

	require.NoError(t, conn.Delete(1))

	_, err = conn.Peek(1)
	require.NoError(t, err)

	job, err = conn.Peek(2)
	require.NoError(t, err)
	require.Nil(t, job)

	_, err = conn.Kick(10)
	require.NoError(t, err)

	m := conn.Metrics()
	require.Equal(t, uint64(1), m.Puts)
	require.Equal(t, uint64(2), m.Reserves)
	require.Equal(t, uint64(1), m.ReserveHits)
	require.Equal(t, uint64(1), m.Deletes)
	require.Equal(t, uint64(2), m.Peeks)
	require.Equal(t, uint64(1), m.PeekMisses)
	require.Equal(t, uint64(1), m.Kicks)
	require.Equal(t, uint64(0), m.Errors)
}

func TestMetricsReleaseBuryTouchCounters(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("release 1 0 0")
		s.reply("RELEASED")
		s.expect("bury 2 0")
		s.reply("BURIED")
		s.expect("touch 3")
		s.reply("TOUCHED")
	})
	conn := dialTest(t, addr)

	require.NoError(t, conn.Release(1, 0, 0))
	require.NoError(t, conn.Bury(2, 0))
	require.NoError(t, conn.Touch(3))

	m := conn.Metrics()
	require.Equal(t, uint64(1), m.Releases)
	require.Equal(t, uint64(1), m.Buries)
	require.Equal(t, uint64(1), m.Touches)
}

func TestMetricsErrorCounter(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("delete 1")
		s.reply("DRAINING")
	})
	conn := dialTest(t, addr)

	err := conn.Delete(1)
	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)

	m := conn.Metrics()
	require.Equal(t, uint64(1), m.Errors)
	require.Equal(t, uint64(0), m.Deletes)
}

func TestMetricsRecognizedFailureNotAnError(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("delete 1")
		s.reply("NOT_FOUND")
	})
	conn := dialTest(t, addr)

	err := conn.Delete(1)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)

	m := conn.Metrics()
	require.Equal(t, uint64(0), m.Errors)
}
