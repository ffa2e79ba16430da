package beanstalk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const jobStatsBody = `---
id: 42
tube: default
state: reserved
pri: 1000
age: 3
delay: 0
ttr: 120
`

func TestJobDelete(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("delete 42")
		s.reply("DELETED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.Delete())
	require.False(t, job.Reserved)
}

func TestJobReleaseReadsPriority(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("stats-job 42")
		s.replyDoc(jobStatsBody)
		s.expect("release 42 1000 0")
		s.reply("RELEASED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.Release(0))
	require.False(t, job.Reserved)
}

func TestJobReleaseDefaultPriority(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("stats-job 42")
		s.replyDoc("---\nid: 42\ntube: default\n")
		s.expect("release 42 2147483648 5")
		s.reply("RELEASED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.Release(5*time.Second))
	require.False(t, job.Reserved)
}

func TestJobReleaseWith(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("release 42 7 1")
		s.reply("RELEASED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.ReleaseWith(7, time.Second))
	require.False(t, job.Reserved)
}

func TestJobBuryReadsPriority(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("stats-job 42")
		s.replyDoc(jobStatsBody)
		s.expect("bury 42 1000")
		s.reply("BURIED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.Bury())
	require.False(t, job.Reserved)
}

func TestJobTouch(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("touch 42")
		s.reply("TOUCHED")
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	require.NoError(t, job.Touch())
	require.True(t, job.Reserved)
}

func TestJobStats(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("reserve")
		s.replyBody("RESERVED 42 5", "hello")
		s.expect("stats-job 42")
		s.replyDoc(jobStatsBody)
	})
	conn := dialTest(t, addr)

	job, err := conn.Reserve()
	require.NoError(t, err)

	doc, err := job.Stats()
	require.NoError(t, err)
	require.Equal(t, DocumentMap, doc.Kind)

	state, ok := doc.Get("state")
	require.True(t, ok)
	require.Equal(t, "reserved", state)
}

func TestJobNotReservedIsNoop(t *testing.T) {
	addr := scriptedServer(t, func(s *scriptedConn) {
		s.expect("peek 42")
		s.replyBody("FOUND 42 5", "hello")
	})
	conn := dialTest(t, addr)

	job, err := conn.Peek(42)
	require.NoError(t, err)
	require.False(t, job.Reserved)

	// None of these may touch the wire for an unreserved job.
	require.NoError(t, job.Release(0))
	require.NoError(t, job.ReleaseWith(1, 0))
	require.NoError(t, job.Bury())
	require.NoError(t, job.BuryWith(1))
	require.NoError(t, job.Touch())
}
