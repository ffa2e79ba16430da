package beanstalk

import "time"

// Job is a job fetched from the server by Put, Reserve, or a peek. It keeps
// a non-owning reference to the connection that produced it, so its methods
// must not outlive the connection.
type Job struct {
	conn *Conn

	// ID is the server-assigned job id.
	ID uint64

	// Body is the job payload, byte-for-byte as stored on the server.
	Body []byte

	// Reserved reports whether this connection currently holds a
	// reservation on the job. It becomes false once Delete, Release, or
	// Bury succeeds.
	Reserved bool
}

// Delete removes the job from the server.
func (j *Job) Delete() error {
	if err := j.conn.Delete(j.ID); err != nil {
		return err
	}
	j.Reserved = false
	return nil
}

// Release puts the job back into the ready queue after the given delay,
// keeping its current priority as reported by the server. It does nothing
// when the job is not reserved.
func (j *Job) Release(delay time.Duration) error {
	if !j.Reserved {
		return nil
	}

	pri, err := j.priority()
	if err != nil {
		return err
	}
	return j.ReleaseWith(pri, delay)
}

// ReleaseWith puts the job back into the ready queue with an explicit
// priority. It does nothing when the job is not reserved.
func (j *Job) ReleaseWith(pri uint32, delay time.Duration) error {
	if !j.Reserved {
		return nil
	}

	if err := j.conn.Release(j.ID, pri, delay); err != nil {
		return err
	}
	j.Reserved = false
	return nil
}

// Bury moves the job into the buried state, keeping its current priority
// as reported by the server. It does nothing when the job is not reserved.
func (j *Job) Bury() error {
	if !j.Reserved {
		return nil
	}

	pri, err := j.priority()
	if err != nil {
		return err
	}
	return j.BuryWith(pri)
}

// BuryWith moves the job into the buried state with an explicit priority.
// It does nothing when the job is not reserved.
func (j *Job) BuryWith(pri uint32) error {
	if !j.Reserved {
		return nil
	}

	if err := j.conn.Bury(j.ID, pri); err != nil {
		return err
	}
	j.Reserved = false
	return nil
}

// Touch extends the reservation's time-to-run. It does nothing when the
// job is not reserved.
func (j *Job) Touch() error {
	if !j.Reserved {
		return nil
	}
	return j.conn.Touch(j.ID)
}

// Stats returns the server's statistics document for this job.
func (j *Job) Stats() (*Document, error) {
	return j.conn.StatsJob(j.ID)
}

// priority reads the job's current priority from its stats document.
// A missing or unparsable pri falls back to DefaultPriority.
func (j *Job) priority() (uint32, error) {
	doc, err := j.Stats()
	if err != nil {
		return 0, err
	}

	pri, ok := doc.Int("pri")
	if !ok || pri < 0 || pri > int64(^uint32(0)) {
		return DefaultPriority, nil
	}
	return uint32(pri), nil
}
