package protocol

// CRLF terminates every command and response line, and every body.
const CRLF = "\r\n"

// Protocol command names.
const (
	CmdPut              = "put"
	CmdUse              = "use"
	CmdReserve          = "reserve"
	CmdReserveTimeout   = "reserve-with-timeout"
	CmdDelete           = "delete"
	CmdRelease          = "release"
	CmdBury             = "bury"
	CmdTouch            = "touch"
	CmdWatch            = "watch"
	CmdIgnore           = "ignore"
	CmdPeek             = "peek"
	CmdPeekReady        = "peek-ready"
	CmdPeekDelayed      = "peek-delayed"
	CmdPeekBuried       = "peek-buried"
	CmdKick             = "kick"
	CmdStats            = "stats"
	CmdStatsJob         = "stats-job"
	CmdStatsTube        = "stats-tube"
	CmdListTubes        = "list-tubes"
	CmdListTubeUsed     = "list-tube-used"
	CmdListTubesWatched = "list-tubes-watched"
	CmdPauseTube        = "pause-tube"
	CmdQuit             = "quit"
)

// Status is a response status token, the first word of a response line.
type Status string

// Success statuses.
const (
	StatusOK       Status = "OK"
	StatusInserted Status = "INSERTED"
	StatusBuried   Status = "BURIED"
	StatusUsing    Status = "USING"
	StatusReserved Status = "RESERVED"
	StatusDeleted  Status = "DELETED"
	StatusReleased Status = "RELEASED"
	StatusTouched  Status = "TOUCHED"
	StatusKicked   Status = "KICKED"
	StatusFound    Status = "FOUND"
	StatusWatching Status = "WATCHING"
	StatusPaused   Status = "PAUSED"
)

// Failure statuses recognized for specific commands.
const (
	StatusNotFound     Status = "NOT_FOUND"
	StatusNotIgnored   Status = "NOT_IGNORED"
	StatusJobTooBig    Status = "JOB_TOO_BIG"
	StatusDeadlineSoon Status = "DEADLINE_SOON"
	StatusTimedOut     Status = "TIMED_OUT"
)

// Error statuses the server may emit for any command. None of these appear
// in a command's expected set, so they surface as unexpected responses.
const (
	StatusOutOfMemory    Status = "OUT_OF_MEMORY"
	StatusInternalError  Status = "INTERNAL_ERROR"
	StatusBadFormat      Status = "BAD_FORMAT"
	StatusUnknownCommand Status = "UNKNOWN_COMMAND"
	StatusExpectedCRLF   Status = "EXPECTED_CRLF"
	StatusDraining       Status = "DRAINING"
)

// MaxTubeNameLength is the maximum tube name length in bytes.
const MaxTubeNameLength = 200
