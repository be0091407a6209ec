package service

import (
	"fmt"
	"strings"

	"swimclub_backend/internals/features/school/attendances/model"
	"swimclub_backend/internals/helpers/apperr"
)

/* =========================
   Mode (what the caller asked for)
========================= */

type Mode string

const (
	ModeToggle       Mode = ""
	ModeCheckIn      Mode = "check-in"
	ModeCheckOut     Mode = "check-out"
	ModeMarkAbsent   Mode = "mark-absent"
	ModeUndoCheckIn  Mode = "undo-checkin"
	ModeUndoCheckOut Mode = "undo-checkout"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeToggle, ModeCheckIn, ModeCheckOut, ModeMarkAbsent, ModeUndoCheckIn, ModeUndoCheckOut:
		return m, nil
	}
	return "", apperr.New(apperr.KindInvalidInput, "unknown mode %q", s)
}

// Gated reports whether the billing gate applies. Staff corrections skip it.
func (m Mode) Gated() bool {
	switch m {
	case ModeToggle, ModeCheckIn, ModeCheckOut:
		return true
	}
	return false
}

/* =========================
   State of one (enrollment, date)
========================= */

type State int

const (
	StateNone State = iota
	StateAbsent
	StateCheckedIn
	StateCheckedOut
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateAbsent:
		return "absent"
	case StateCheckedIn:
		return "checked-in"
	case StateCheckedOut:
		return "checked-out"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func StateOf(rec *model.AttendanceRecord) State {
	switch {
	case rec == nil:
		return StateNone
	case rec.AttendanceRecordCheckOutAt != nil:
		return StateCheckedOut
	case rec.AttendanceRecordCheckInAt != nil:
		return StateCheckedIn
	case rec.AttendanceRecordStatus == model.AttendanceStatusAbsent:
		return StateAbsent
	}
	return StateNone
}

/* =========================
   Transition table
========================= */

type Action string

const (
	ActionNone         Action = "none"
	ActionCheckIn      Action = "check-in"
	ActionCheckOut     Action = "check-out"
	ActionMarkAbsent   Action = "mark-absent"
	ActionUndoCheckIn  Action = "undo-checkin"
	ActionUndoCheckOut Action = "undo-checkout"
)

// Warnings are returned with a 2xx; nothing was written.
const (
	WarnAlreadyMarked = "ALREADY_MARKED"
	WarnNothingToUndo = "NOTHING_TO_UNDO"
)

type plan struct {
	action  Action
	warning string
	err     error
}

func noop(warning string) plan { return plan{action: ActionNone, warning: warning} }

func decide(mode Mode, st State) plan {
	switch mode {
	case ModeToggle:
		switch st {
		case StateNone, StateAbsent:
			return plan{action: ActionCheckIn}
		case StateCheckedIn:
			return plan{action: ActionCheckOut}
		case StateCheckedOut:
			return noop(WarnAlreadyMarked)
		}
	case ModeCheckIn:
		switch st {
		case StateNone, StateAbsent:
			return plan{action: ActionCheckIn}
		case StateCheckedIn, StateCheckedOut:
			return noop(WarnAlreadyMarked)
		}
	case ModeCheckOut:
		switch st {
		case StateNone, StateAbsent, StateCheckedIn:
			return plan{action: ActionCheckOut}
		case StateCheckedOut:
			return noop(WarnAlreadyMarked)
		}
	case ModeMarkAbsent:
		switch st {
		case StateNone, StateCheckedIn:
			return plan{action: ActionMarkAbsent}
		case StateAbsent:
			return noop(WarnAlreadyMarked)
		case StateCheckedOut:
			return plan{err: apperr.New(apperr.KindAlreadyCheckedOut, "learner already checked out, undo the check-out first")}
		}
	case ModeUndoCheckIn:
		switch st {
		case StateAbsent, StateCheckedIn, StateCheckedOut:
			return plan{action: ActionUndoCheckIn}
		case StateNone:
			return noop(WarnNothingToUndo)
		}
	case ModeUndoCheckOut:
		switch st {
		case StateCheckedOut:
			return plan{action: ActionUndoCheckOut}
		case StateNone, StateAbsent, StateCheckedIn:
			return noop(WarnNothingToUndo)
		}
	}
	return plan{err: apperr.New(apperr.KindInvalidInput, "mode %q not valid in state %s", mode, st)}
}
