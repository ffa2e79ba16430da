package protocol

import (
	"bytes"
	"strconv"
)

// FormatPut formats a put command. The body length is stated in the header
// line and the body follows, terminated by CRLF.
//
//	put <pri> <delay> <ttr> <bytes>\r\n<body>\r\n
func FormatPut(pri uint32, delaySeconds, ttrSeconds int64, body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(CmdPut) + 48 + len(body))
	buf.WriteString(CmdPut)
	writeUint(&buf, uint64(pri))
	writeInt(&buf, delaySeconds)
	writeInt(&buf, ttrSeconds)
	writeInt(&buf, int64(len(body)))
	buf.WriteString(CRLF)
	buf.Write(body)
	buf.WriteString(CRLF)
	return buf.Bytes()
}

// FormatReserve formats a reserve command without a server-side timeout.
func FormatReserve() []byte {
	return formatLine(CmdReserve)
}

// FormatReserveWithTimeout formats a reserve-with-timeout command. A zero
// timeout asks the server to respond immediately.
func FormatReserveWithTimeout(seconds int64) []byte {
	return formatIDLine(CmdReserveTimeout, uint64(seconds))
}

// FormatDelete formats a delete command for a job id.
func FormatDelete(id uint64) []byte {
	return formatIDLine(CmdDelete, id)
}

// FormatRelease formats a release command.
func FormatRelease(id uint64, pri uint32, delaySeconds int64) []byte {
	var buf bytes.Buffer
	buf.WriteString(CmdRelease)
	writeUint(&buf, id)
	writeUint(&buf, uint64(pri))
	writeInt(&buf, delaySeconds)
	buf.WriteString(CRLF)
	return buf.Bytes()
}

// FormatBury formats a bury command.
func FormatBury(id uint64, pri uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString(CmdBury)
	writeUint(&buf, id)
	writeUint(&buf, uint64(pri))
	buf.WriteString(CRLF)
	return buf.Bytes()
}

// FormatTouch formats a touch command for a job id.
func FormatTouch(id uint64) []byte {
	return formatIDLine(CmdTouch, id)
}

// FormatKick formats a kick command with an upper bound on the number of
// jobs to kick.
func FormatKick(bound int64) []byte {
	return formatIDLine(CmdKick, uint64(bound))
}

// FormatPeek formats a peek command for a job id.
func FormatPeek(id uint64) []byte {
	return formatIDLine(CmdPeek, id)
}

// FormatPeekReady formats a peek-ready command.
func FormatPeekReady() []byte {
	return formatLine(CmdPeekReady)
}

// FormatPeekDelayed formats a peek-delayed command.
func FormatPeekDelayed() []byte {
	return formatLine(CmdPeekDelayed)
}

// FormatPeekBuried formats a peek-buried command.
func FormatPeekBuried() []byte {
	return formatLine(CmdPeekBuried)
}

// FormatUse formats a use command. The name must already be validated with
// ValidateTubeName.
func FormatUse(name string) []byte {
	return formatNameLine(CmdUse, name)
}

// FormatWatch formats a watch command.
func FormatWatch(name string) []byte {
	return formatNameLine(CmdWatch, name)
}

// FormatIgnore formats an ignore command.
func FormatIgnore(name string) []byte {
	return formatNameLine(CmdIgnore, name)
}

// FormatStats formats a stats command.
func FormatStats() []byte {
	return formatLine(CmdStats)
}

// FormatStatsJob formats a stats-job command for a job id.
func FormatStatsJob(id uint64) []byte {
	return formatIDLine(CmdStatsJob, id)
}

// FormatStatsTube formats a stats-tube command.
func FormatStatsTube(name string) []byte {
	return formatNameLine(CmdStatsTube, name)
}

// FormatListTubes formats a list-tubes command.
func FormatListTubes() []byte {
	return formatLine(CmdListTubes)
}

// FormatListTubeUsed formats a list-tube-used command.
func FormatListTubeUsed() []byte {
	return formatLine(CmdListTubeUsed)
}

// FormatListTubesWatched formats a list-tubes-watched command.
func FormatListTubesWatched() []byte {
	return formatLine(CmdListTubesWatched)
}

// FormatPauseTube formats a pause-tube command.
func FormatPauseTube(name string, delaySeconds int64) []byte {
	var buf bytes.Buffer
	buf.WriteString(CmdPauseTube)
	buf.WriteByte(' ')
	buf.WriteString(name)
	writeInt(&buf, delaySeconds)
	buf.WriteString(CRLF)
	return buf.Bytes()
}

// FormatQuit formats a quit command.
func FormatQuit() []byte {
	return formatLine(CmdQuit)
}

func formatLine(cmd string) []byte {
	return []byte(cmd + CRLF)
}

func formatIDLine(cmd string, n uint64) []byte {
	var buf bytes.Buffer
	buf.WriteString(cmd)
	writeUint(&buf, n)
	buf.WriteString(CRLF)
	return buf.Bytes()
}

func formatNameLine(cmd, name string) []byte {
	return []byte(cmd + " " + name + CRLF)
}

func writeUint(buf *bytes.Buffer, n uint64) {
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatUint(n, 10))
}

func writeInt(buf *bytes.Buffer, n int64) {
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatInt(n, 10))
}
