// /internal/radio/result.go
package radio

// Code classifies the outcome of a playback command. Expected rejections
// (busy, precondition failures) are codes, not errors, so callers inspect
// them instead of matching on thrown failures.
type Code int

const (
	CodeOK Code = iota
	// CodeBusy: the guild already holds an open voice connection of any
	// kind, so a connect-initiating command was rejected.
	CodeBusy
	// CodeNoVoiceChannel: the caller is not in a voice channel.
	CodeNoVoiceChannel
	// CodeCallerPresent: skip was invoked from inside the session's own
	// voice channel.
	CodeCallerPresent
	// CodeNothingPlaying: no active playback to operate on.
	CodeNothingPlaying
	// CodeNotPaused: resume requested while not paused.
	CodeNotPaused
	// CodeFailed: the operation was attempted and failed; Err carries the
	// cause.
	CodeFailed
)

// Result is the outcome of a playback command.
type Result struct {
	Code  Code
	Track string
	Err   error
}

func (r Result) OK() bool { return r.Code == CodeOK }

func ok(track string) Result  { return Result{Code: CodeOK, Track: track} }
func reject(code Code) Result { return Result{Code: code} }
func failed(err error) Result { return Result{Code: CodeFailed, Err: err} }
