package ui

import "ffpb/internal/progress"

type snapshotMsg struct {
	S progress.Snapshot
}

type logMsg struct {
	L progress.Log
}

type finishMsg struct {
	Err error
}
