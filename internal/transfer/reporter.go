package transfer

// Reporter receives the human-facing events of a run in order.
//
// A completed run produces Destination, then Copying for every candidate
// (each possibly followed by CopyFailed), then exactly one Finished. An
// aborted run produces a single Aborted carrying a *SourceNotFoundError or
// *EnvironmentError, and no Finished.
type Reporter interface {
	Destination(path string)
	Copying(name string)
	CopyFailed(name string, err error)
	Finished(copied int)
	Aborted(err error)
}

type nopReporter struct{}

func (nopReporter) Destination(string) {}
func (nopReporter) Copying(string) {}
func (nopReporter) CopyFailed(string, error) {}
func (nopReporter) Finished(int) {}
func (nopReporter) Aborted(error) {}
