package tui

import (
	"time"

	"github.com/sadopc/studytrackr/internal/store"
)

// idleAfter is how long the study timer runs without a keypress before it
// pauses itself.
const idleAfter = 5 * time.Minute

type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// idleWatch remembers the last keypress and whether the timer paused itself.
type idleWatch struct {
	last    time.Time
	after   time.Duration
	tripped bool
}

func (w *idleWatch) touch(now time.Time) { w.last = now }

func (w idleWatch) expired(now time.Time) bool {
	return !w.tripped && now.Sub(w.last) > w.after
}

// timerModel is the open study session behind the dashboard. Wall time comes
// from env.now; paused spans are summed and subtracted when the session stops.
type timerModel struct {
	env *env

	state      timerState
	startedAt  time.Time
	pausedFor  time.Duration
	pauseStart time.Time

	subjectID   *int64
	subjectName string
	sessionID   int64

	watch idleWatch
}

func newTimerModel(e *env) timerModel {
	return timerModel{
		env:   e,
		watch: idleWatch{last: e.now(), after: idleAfter},
	}
}

func (t *timerModel) begin(ss *store.StudySession, subjectName string, startedAt time.Time) {
	t.state = timerRunning
	t.startedAt = startedAt
	t.pausedFor = 0
	t.subjectID = ss.SubjectID
	t.subjectName = subjectName
	t.sessionID = ss.ID
	t.watch.touch(t.env.now())
	t.watch.tripped = false
}

func (t *timerModel) start(subjectID *int64, subjectName string) (*store.StudySession, error) {
	ss, err := t.env.Store.StartSession(t.env.userID(), subjectID)
	if err != nil {
		return nil, err
	}
	t.begin(ss, subjectName, t.env.now())
	return ss, nil
}

// adopt picks up a session left running by an earlier run of the program.
func (t *timerModel) adopt(ss *store.StudySession, subjectName string) {
	t.begin(ss, subjectName, ss.StartTime)
}

// pausedTotal includes the pause in progress, if any.
func (t timerModel) pausedTotal() time.Duration {
	if t.state == timerPaused {
		return t.pausedFor + t.env.now().Sub(t.pauseStart)
	}
	return t.pausedFor
}

func (t *timerModel) stop() (*store.StudySession, error) {
	if t.state == timerStopped {
		return nil, nil
	}
	ss, err := t.env.Store.StopSession(t.env.userID(), t.sessionID, t.pausedTotal())
	if err != nil {
		return nil, err
	}
	t.state = timerStopped
	t.watch.tripped = false
	return ss, nil
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pauseStart = t.env.now()
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	now := t.env.now()
	t.pausedFor += now.Sub(t.pauseStart)
	t.state = timerRunning
	t.watch.tripped = false
	t.watch.touch(now)
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

// tick pauses a running timer nobody has touched for a while.
func (t *timerModel) tick() {
	if t.state == timerRunning && t.watch.expired(t.env.now()) {
		t.pause()
		t.watch.tripped = true
	}
}

// recordActivity notes a keypress and wakes a timer that paused itself.
func (t *timerModel) recordActivity() {
	t.watch.touch(t.env.now())
	if t.idle() {
		t.resume()
	}
}

func (t timerModel) idle() bool    { return t.watch.tripped && t.state == timerPaused }
func (t timerModel) running() bool { return t.state != timerStopped }
func (t timerModel) paused() bool  { return t.state == timerPaused }

func (t timerModel) currentElapsed() time.Duration {
	if t.state == timerStopped {
		return 0
	}
	return t.env.now().Sub(t.startedAt) - t.pausedTotal()
}
